package internal

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/hostrouter"
)

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	shutdownHooks   []func(context.Context) error
	domains         map[string]*App
	fallback        *App
	baseCtx         context.Context
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{
		domains:         make(map[string]*App),
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Address sets the listen address. Defaults to ":8080".
func Address(addr string) RunOption {
	return func(c *runConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Logger sets the server logger. A nil logger is ignored.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds both the HTTP drain and the shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers a cleanup function. Hooks run in registration order.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// Domain maps a host pattern to an App.
// Patterns: "admin.example.com" (exact) or "*.example.com" (wildcard).
func Domain(pattern string, app *App) RunOption {
	return func(c *runConfig) {
		if pattern != "" && app != nil {
			c.domains[pattern] = app
		}
	}
}

// Site maps the core.domain of the app's dispatcher and every subdomain of it
// to app, so subdomain routes reach the dispatcher. Apps without a dispatcher
// or a configured domain are ignored.
//
//	waypoint.Run(waypoint.Site(siteApp), waypoint.Domain("api.example.com", apiApp))
func Site(app *App) RunOption {
	return func(c *runConfig) {
		if app == nil || app.dispatcher == nil {
			return
		}
		domain := hostrouter.NormalizeHost(app.dispatcher.Policy().Domain)
		if domain == "" {
			return
		}
		c.domains[domain] = app
		c.domains["*."+domain] = app
	}
}

// Fallback sets the App serving hosts no domain matches. Without domains it
// serves every request.
func Fallback(app *App) RunOption {
	return func(c *runConfig) {
		if app != nil {
			c.fallback = app
		}
	}
}

// WithContext sets the base context for signal handling. Defaults to
// context.Background().
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
