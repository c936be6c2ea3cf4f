package middlewares_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/middlewares"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	panicErr := errors.New("error panic")

	tests := []struct {
		name      string
		value     any
		opts      []middlewares.RecoverOption
		wantStack bool
	}{
		{name: "string panic", value: "test panic", wantStack: true},
		{name: "error panic", value: panicErr, wantStack: true},
		{name: "int panic", value: 42, wantStack: true},
		{name: "stack disabled", value: "quiet", opts: []middlewares.RecoverOption{middlewares.WithRecoverDisablePrintStack()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got error
			w := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(internal.Context) error {
				panic(tt.value)
			}, &got, middlewares.Recover(tt.opts...))

			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.True(t, internal.IsPanicError(got))

			var pe *internal.PanicError
			require.ErrorAs(t, got, &pe)
			require.Equal(t, tt.value, pe.Value)
			if tt.wantStack {
				require.NotEmpty(t, pe.Stack)
			} else {
				require.Nil(t, pe.Stack)
			}
		})
	}
}

func TestRecoverPassesThrough(t *testing.T) {
	t.Parallel()

	w := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), ok, nil, middlewares.Recover())
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())

	var got error
	sentinel := errors.New("plain")
	serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(internal.Context) error {
		return sentinel
	}, &got, middlewares.Recover())
	require.ErrorIs(t, got, sentinel)
	require.False(t, internal.IsPanicError(got))
}

func TestRecoverStackSize(t *testing.T) {
	t.Parallel()

	var got error
	serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(internal.Context) error {
		panic("small")
	}, &got, middlewares.Recover(middlewares.WithRecoverStackSize(64)))

	var pe *internal.PanicError
	require.ErrorAs(t, got, &pe)
	require.LessOrEqual(t, len(pe.Stack), 64)
	require.NotEmpty(t, pe.Stack)
}

func TestRecoverReraisesAbort(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(internal.Context) error {
			panic(http.ErrAbortHandler)
		}, nil, middlewares.Recover())
	})
}

func TestRecoverLogsDispatchedRoute(t *testing.T) {
	t.Parallel()

	store, err := config.Parse([]byte("core:\n  controllers:\n    default: Users\n"))
	require.NoError(t, err)
	registry := internal.NewRegistry().Register("Users", func() internal.Controller {
		c := &internal.BaseController{}
		c.Handle("index", func(c internal.Context, _ ...string) error {
			return c.String(http.StatusOK, "users")
		})
		return c
	})
	d, err := internal.NewDispatcher(store, internal.WithRegistry(registry))
	require.NoError(t, err)

	var logs bytes.Buffer
	panicsAfterDispatch := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			_ = next(c)
			panic("audit failed")
		}
	}
	app := internal.New(
		internal.WithCustomLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		internal.WithDispatcher(d),
		internal.WithMiddleware(middlewares.Recover(), panicsAfterDispatch),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, "users", w.Body.String())
	require.Contains(t, logs.String(), `"panic":"audit failed"`)
	require.Contains(t, logs.String(), `"controller":"Users"`)
	require.Contains(t, logs.String(), `"action":"index"`)
}
