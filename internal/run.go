package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/waypoint/pkg/hostrouter"
)

// Run starts a multi-domain HTTP server and blocks until shutdown.
// Each App serves the hosts matching its pattern; one dispatcher per App
// lets every domain carry its own routing configuration.
//
// Example:
//
//	err := waypoint.Run(
//	    waypoint.Domain("admin.example.com", adminApp),
//	    waypoint.Domain("*.example.com", siteApp),
//	    waypoint.Address(":8080"),
//	    waypoint.Logger(log),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	var handler http.Handler
	switch {
	case len(cfg.domains) > 0:
		routes := make(hostrouter.Routes, len(cfg.domains))
		for pattern, app := range cfg.domains {
			routes[pattern] = app.Router()
		}
		var fallback http.Handler
		if cfg.fallback != nil {
			fallback = cfg.fallback.Router()
		}
		handler = hostrouter.New(routes, fallback)
	case cfg.fallback != nil:
		handler = cfg.fallback.Router()
	default:
		return errors.New("waypoint.Run: no domains or fallback configured")
	}

	return runServer(runtimeConfig{
		handler:         handler,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}
