package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultHealthTimeout = 5 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// CheckFunc is a readiness check.
type CheckFunc func(ctx context.Context) error

type healthChecks map[string]CheckFunc

type healthConfig struct {
	checks        healthChecks
	livenessPath  string
	readinessPath string
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath moves the liveness endpoint from "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath moves the readiness endpoint from "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check. A check named
// "controllers" replaces the built-in one.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(healthChecks)
		}
		c.checks[name] = fn
	}
}

// ControllersCheck fails while a controller file of the module tree has no
// registered factory. The App adds it as the "controllers" check.
func ControllersCheck(d *Dispatcher) CheckFunc {
	return func(context.Context) error {
		var errs []error
		for _, module := range append([]string{""}, d.modules.Modules()...) {
			for _, name := range d.modules.Controllers(module) {
				if _, ok := d.registry.Lookup(module, name); !ok {
					errs = append(errs, fmt.Errorf("%w: %s", ErrControllerNotRegistered, joinModule(module, name)))
				}
			}
		}
		return errors.Join(errs...)
	}
}

type healthResponse struct {
	Checks map[string]healthCheck `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, r, &healthResponse{Status: statusHealthy})
	}
}

func readinessHandler(checks healthChecks, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, r, runChecks(r.Context(), checks, defaultHealthTimeout, logger))
	}
}

// runChecks runs every check concurrently under one timeout. A failing
// check never cancels the others.
func runChecks(ctx context.Context, checks healthChecks, timeout time.Duration, logger *slog.Logger) *healthResponse {
	resp := &healthResponse{Status: statusHealthy}
	if len(checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	resp.Checks = make(map[string]healthCheck, len(checks))
	for name, check := range checks {
		g.Go(func() error {
			err := check(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				resp.Checks[name] = healthCheck{Status: statusHealthy}
				return nil
			}
			resp.Checks[name] = healthCheck{Status: statusUnhealthy, Error: err.Error()}
			resp.Status = statusUnhealthy
			logger.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
			return nil
		})
	}
	_ = g.Wait()
	return resp
}

// writeHealth renders resp as JSON when asked for (?format=json or an
// Accept header), otherwise as plain text.
func writeHealth(w http.ResponseWriter, r *http.Request, resp *healthResponse) {
	code := http.StatusOK
	if resp.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.WriteHeader(code)
	if code == http.StatusOK {
		_, _ = io.WriteString(w, "OK")
		return
	}
	_, _ = io.WriteString(w, http.StatusText(code))
}
