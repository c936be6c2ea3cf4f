package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

type routeHandler struct {
	path string
	h    internal.HandlerFunc
}

func (rh routeHandler) Routes(r internal.Router) {
	r.GET(rh.path, rh.h)
}

// serve runs req through an app with one declared GET route at "/" behind mw.
// Errors reaching the app are stored in *errp when errp is not nil.
func serve(t *testing.T, req *http.Request, h internal.HandlerFunc, errp *error, mw ...internal.Middleware) *httptest.ResponseRecorder {
	t.Helper()

	opts := []internal.Option{
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routeHandler{path: "/", h: h}),
	}
	if errp != nil {
		opts = append(opts, internal.WithErrorHandler(func(c internal.Context, err error) error {
			*errp = err
			return c.String(http.StatusInternalServerError, "error")
		}))
	}

	w := httptest.NewRecorder()
	internal.New(opts...).ServeHTTP(w, req)
	return w
}

func ok(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newDispatcher(t *testing.T, doc string) *internal.Dispatcher {
	t.Helper()

	store, err := config.Parse([]byte(doc))
	require.NoError(t, err)
	d, err := internal.NewDispatcher(store, internal.WithRegistry(internal.NewRegistry()))
	require.NoError(t, err)
	return d
}
