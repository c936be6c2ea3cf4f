package logger

import (
	"context"
	"errors"
	"log/slog"
)

type namedHandler struct {
	name    string
	handler slog.Handler
}

// multiHandler forwards every record to all enabled handlers.
// A failing handler does not stop delivery to the rest.
type multiHandler struct {
	handlers []namedHandler
}

func newMultiHandler(handlers ...namedHandler) slog.Handler {
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, nh := range h.handlers {
		if nh.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, nh := range h.handlers {
		if !nh.handler.Enabled(ctx, rec.Level) {
			continue
		}
		if err := nh.handler.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, &Error{Handler: nh.name, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *multiHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	handlers := make([]namedHandler, len(h.handlers))
	for i, nh := range h.handlers {
		handlers[i] = namedHandler{name: nh.name, handler: fn(nh.handler)}
	}
	return newMultiHandler(handlers...)
}
