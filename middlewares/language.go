package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/lang"
	"github.com/dmitrymomot/waypoint/pkg/logger"
)

type languageKey struct{}

// DefaultLanguageCookie is the cookie read and written by Language.
const DefaultLanguageCookie = "lang"

// LanguageConfig configures the Language middleware.
type LanguageConfig struct {
	Extractor    internal.Extractor
	CookieName   string
	CookieMaxAge int
	Persist      bool
	extractorSet bool
}

// LanguageOption configures LanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithLanguageExtractor replaces the default source chain.
func WithLanguageExtractor(ext internal.Extractor) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithLanguageCookie sets the cookie name used by the default chain.
func WithLanguageCookie(name string) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.CookieName = name
	}
}

// WithLanguagePersist stores the resolved language in the cookie.
func WithLanguagePersist(maxAge int) LanguageOption {
	return func(cfg *LanguageConfig) {
		cfg.Persist = true
		cfg.CookieMaxAge = maxAge
	}
}

// FromRouteLanguage returns a source that reads the language the dispatcher
// resolves the request in. It misses when language redirection is off.
func FromRouteLanguage(p *internal.Policy) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		if p.Redirect == internal.RedirectNone {
			return "", false
		}
		b := internal.BuildRoute(internal.InputFromRequest(c.Request()), p)
		return b.Language, b.Language != ""
	}
}

// FromAcceptLanguage returns a source that matches the Accept-Language
// header against the available languages.
func FromAcceptLanguage(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return lang.ParseAcceptLanguage(header, available), true
	}
}

// Language returns middleware that resolves the language of the response.
// The default chain tries the URL language, then the cookie, then the
// Accept-Language header; values outside the configured languages are ignored
// and app.language is the fallback. The result is stored in the context and
// sent as Content-Language.
func Language(d *internal.Dispatcher, opts ...LanguageOption) internal.Middleware {
	cfg := &LanguageConfig{CookieName: DefaultLanguageCookie}
	for _, opt := range opts {
		opt(cfg)
	}

	p := d.Policy()
	available := p.Languages.Languages()
	if len(available) == 0 {
		available = []string{p.Language}
	}

	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			FromRouteLanguage(p),
			internal.FromCookie(cfg.CookieName),
			FromAcceptLanguage(available),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			code, ok := cfg.Extractor.Extract(c)
			if !ok || !slices.Contains(available, code) {
				code = p.Language
			}

			c.Set(languageKey{}, code)
			if rw := c.ResponseWriter(); rw != nil {
				rw.OnBeforeWrite(func() {
					if rw.Header().Get("Content-Language") == "" {
						rw.Header().Set("Content-Language", code)
					}
				})
			}
			if cfg.Persist {
				if current, err := c.Cookie(cfg.CookieName); err != nil || current != code {
					http.SetCookie(c.Response(), &http.Cookie{
						Name:     cfg.CookieName,
						Value:    code,
						Path:     "/",
						MaxAge:   cfg.CookieMaxAge,
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			return next(c)
		}
	}
}

// GetLanguage returns the language resolved by Language, or "".
func GetLanguage(c internal.Context) string {
	if v, ok := c.Get(languageKey{}).(string); ok {
		return v
	}
	return ""
}

// LanguageExtractor adds "language" to log entries.
func LanguageExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(languageKey{}).(string); ok && v != "" {
			return slog.String("language", v), true
		}
		return slog.Attr{}, false
	}
}
