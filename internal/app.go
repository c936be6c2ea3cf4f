package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App is the HTTP front controller. Declared routes, static files and
// health endpoints are served by chi; everything else goes to the
// dispatcher. App is immutable after New.
type App struct {
	router                  chi.Router
	dispatcher              *Dispatcher
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	baseDomain              string
	middlewares             []Middleware
	handlers                []Handler
	staticRoutes            []staticRoute
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
//
// Example:
//
//	app := waypoint.New(
//	    waypoint.WithLogger("web", waypoint.RouteExtractor()),
//	    waypoint.WithMiddleware(middlewares.Recover()),
//	    waypoint.WithDispatcher(dispatcher),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.baseDomain == "" && a.dispatcher != nil {
		a.baseDomain = a.dispatcher.policy.Domain
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for multi-domain composition.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Dispatcher returns the configured dispatcher, or nil.
func (a *App) Dispatcher() *Dispatcher {
	return a.dispatcher
}

// Run starts a single-domain HTTP server and blocks until shutdown.
//
//	err := app.Run(":8080", waypoint.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	if a.dispatcher != nil {
		a.router.Use(seedRouteState)
	}
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		checks := a.healthConfig.checks
		if a.dispatcher != nil {
			if _, ok := checks["controllers"]; !ok {
				checks["controllers"] = ControllersCheck(a.dispatcher)
			}
		}
		a.router.Get(a.healthConfig.livenessPath, livenessHandler())
		a.router.Get(a.healthConfig.readinessPath, readinessHandler(checks, a.logger))
	}

	r := &routerAdapter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}

	// Declared routes win over the catch-all.
	if a.dispatcher != nil {
		a.router.Handle("/*", a.serve(a.dispatcher.Dispatch))
	}
	if a.notFoundHandler != nil {
		a.router.NotFound(a.serve(a.notFoundHandler).ServeHTTP)
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.serve(a.methodNotAllowedHandler).ServeHTTP)
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		_ = a.errorHandler(c, err)
		return
	}
	if he := AsHTTPError(err); he != nil {
		http.Error(c.Response(), he.Message, he.Code)
		return
	}
	if errors.Is(err, ErrControllerNotFound) {
		http.Error(c.Response(), http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	a.logger.ErrorContext(c, "unhandled error", slog.Any("error", err))
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
