package logger

import (
	"context"
	"log/slog"
)

// FromContextKey returns an extractor that logs ctx.Value(key) under attr.
// Empty strings and nil values are skipped.
func FromContextKey(key any, attr string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		switch v := ctx.Value(key).(type) {
		case nil:
			return slog.Attr{}, false
		case string:
			if v == "" {
				return slog.Attr{}, false
			}
			return slog.String(attr, v), true
		default:
			return slog.Any(attr, v), true
		}
	}
}

// Static returns an extractor that always adds the same attribute.
func Static(key string, value any) ContextExtractor {
	return func(context.Context) (slog.Attr, bool) {
		return slog.Any(key, value), true
	}
}
