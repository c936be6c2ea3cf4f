package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/waypoint/internal"
)

// DefaultStackSize caps the captured stack trace in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures Recover.
type RecoverConfig struct {
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize caps the captured stack trace.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack skips stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover turns panics in declared route handlers and outer middleware into
// *waypoint.PanicError for the error handler. Dispatched actions are
// recovered by the dispatcher, so their panics arrive here as plain errors.
// http.ErrAbortHandler is re-raised for net/http to abort the response.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}
				pe := &internal.PanicError{Value: r, Stack: cfg.stack()}
				c.LogError("panic recovered", panicAttrs(c, pe)...)
				err = pe
			}()

			return next(c)
		}
	}
}

func (cfg *RecoverConfig) stack() []byte {
	if cfg.DisablePrintStack || cfg.StackSize <= 0 {
		return nil
	}
	buf := make([]byte, cfg.StackSize)
	return buf[:runtime.Stack(buf, false)]
}

// panicAttrs describes the panic and, once dispatched, the route it hit.
func panicAttrs(c internal.Context, pe *internal.PanicError) []any {
	attrs := []any{
		slog.Any("panic", pe.Value),
		slog.String("path", c.Request().URL.Path),
	}
	if t := c.Target(); t != nil && t.Redirect == "" {
		attrs = append(attrs,
			slog.String("module", t.Module),
			slog.String("controller", t.Controller),
			slog.String("action", t.Action),
		)
	}
	if pe.Stack != nil {
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}
	return attrs
}
