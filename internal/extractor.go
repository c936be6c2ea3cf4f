package internal

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/waypoint/pkg/lang"
	"github.com/dmitrymomot/waypoint/pkg/logger"
)

// ExtractorSource reads one candidate value from a request.
type ExtractorSource = func(Context) (string, bool)

// Extractor tries sources in order and returns the first non-empty value.
// The dispatcher uses one to find the client country.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns ("", false) when every source misses.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// source adapts a getter to an ExtractorSource that misses on "".
func source(get func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := get(c)
		return v, v != ""
	}
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return source(func(c Context) string { return c.Header(name) })
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return source(func(c Context) string { return c.Query(name) })
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return source(func(c Context) string {
		v, _ := c.Cookie(name)
		return v
	})
}

// FromParam reads a URL parameter of a declared route.
func FromParam(name string) ExtractorSource {
	return source(func(c Context) string { return c.Param(name) })
}

// FromForm reads a form field.
func FromForm(name string) ExtractorSource {
	return source(func(c Context) string { return c.Form(name) })
}

// FromNamed reads a "key:value" path segment. It works outside dispatch.
func FromNamed(key string) ExtractorSource {
	return source(func(c Context) string {
		v, _ := ParseParams(c.Request().URL.Path).Value(key)
		return v
	})
}

// FromAcceptLanguageCountry reads the region of the first regional tag of
// the Accept-Language header.
func FromAcceptLanguageCountry() ExtractorSource {
	return source(func(c Context) string { return lang.Country(c.Header("Accept-Language")) })
}

// FromRequestedLanguage reads the language found in the URL of a
// dispatched request.
func FromRequestedLanguage() ExtractorSource {
	return source(func(c Context) string { return c.RequestedLanguage() })
}

// RouteExtractor returns a ContextExtractor that adds the resolved route to
// log entries of dispatched requests.
func RouteExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		t, ok := TargetFromContext(ctx)
		if !ok || t.Redirect != "" {
			return slog.Attr{}, false
		}
		attrs := []any{
			slog.String("path", t.Route),
			slog.String("module", t.Module),
			slog.String("controller", t.Controller),
			slog.String("action", t.Action),
			slog.String("language", t.Language),
		}
		if t.Locale != "" {
			attrs = append(attrs, slog.String("locale", t.Locale))
		}
		return slog.Group("route", attrs...), true
	}
}
