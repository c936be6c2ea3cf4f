package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

// Option configures the application.
type Option func(*App)

// WithBaseDomain configures the base domain for c.Subdomain().
// Defaults to the dispatcher's core.domain.
func WithBaseDomain(domain string) Option {
	return func(a *App) {
		a.baseDomain = domain
	}
}

// WithDispatcher routes every request that no declared route matched
// through d.
//
// Example:
//
//	d, err := waypoint.NewDispatcher(store, waypoint.WithRegistry(registry))
//	app := waypoint.New(
//	    waypoint.WithDispatcher(d),
//	)
func WithDispatcher(d *Dispatcher) Option {
	return func(a *App) {
		a.dispatcher = d
	}
}

// WithMiddleware adds global middleware. The first one runs outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers whose declared routes win over dispatch.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles serves subDir of fsys under pattern, ahead of the
// dispatcher. Directory listings answer 404.
//
//	//go:embed public
//	var assets embed.FS
//
//	waypoint.WithStaticFiles("/static/", assets, "public")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}
		a.staticRoutes = append(a.staticRoutes, staticRoute{staticHandler(sub), pattern})
	}
}

func staticHandler(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Cache-Control", "public, max-age=3600")
		h.Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

// WithErrorHandler replaces the default error rendering. It receives errors
// from declared handlers, middleware and dispatched actions alike, including
// ErrControllerNotFound for routes no controller serves.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets the 404 handler. With a dispatcher wired it only
// runs for requests the catch-all does not take.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets the 405 handler for declared routes.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks mounts /health/live and /health/ready. With a dispatcher
// wired, readiness includes a "controllers" check unless one is supplied.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(healthChecks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger builds a JSON logger tagged with component. Extractors add
// request-scoped attributes such as the request id or the dispatched route.
//
//	waypoint.New(
//	    waypoint.WithLogger("web", middlewares.RequestIDExtractor(), waypoint.RouteExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets the logger, e.g. one from logger.NewWithSentry.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
