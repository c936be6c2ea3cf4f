package internal_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
)

// runInAction runs fn inside a dispatched "report/show" action and returns
// what it wrote.
func runInAction(t *testing.T, target string, fn func(c internal.Context) string, opts ...internal.Option) string {
	t.Helper()

	registry := internal.NewRegistry().
		Register("Index", pageFactory("index")).
		Register("Report", func() internal.Controller {
			c := &pageController{}
			c.Handle("index", echoAction)
			c.Handle("show", func(c internal.Context, _ ...string) error {
				return c.String(http.StatusOK, fn(c))
			})
			return c
		})
	d, err := internal.NewDispatcher(parseStore(t, dispatchDoc), internal.WithRegistry(registry))
	require.NoError(t, err)

	w := serve(t, d, httptest.NewRequest(http.MethodGet, target, nil), opts...)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestArg(t *testing.T) {
	t.Parallel()

	const target = "/report/show/42/draft/1.5/true"

	tests := []struct {
		name string
		fn   func(c internal.Context) any
		want string
	}{
		{"int", func(c internal.Context) any { return internal.Arg[int](c, 0) }, "42"},
		{"int64", func(c internal.Context) any { return internal.Arg[int64](c, 0) }, "42"},
		{"string", func(c internal.Context) any { return internal.Arg[string](c, 1) }, "draft"},
		{"float", func(c internal.Context) any { return internal.Arg[float64](c, 2) }, "1.5"},
		{"bool", func(c internal.Context) any { return internal.Arg[bool](c, 3) }, "true"},
		{"unparseable", func(c internal.Context) any { return internal.Arg[int](c, 1) }, "0"},
		{"out of range", func(c internal.Context) any { return internal.Arg[int](c, 9) }, "0"},
		{"negative index", func(c internal.Context) any { return internal.Arg[int](c, -1) }, "0"},
		{"default kept", func(c internal.Context) any { return internal.ArgDefault(c, 0, 1) }, "42"},
		{"default on bad value", func(c internal.Context) any { return internal.ArgDefault(c, 1, 1) }, "1"},
		{"default on missing", func(c internal.Context) any { return internal.ArgDefault(c, 7, 5) }, "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := runInAction(t, target, func(c internal.Context) string {
				return fmt.Sprint(tt.fn(c))
			})
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNamedParam(t *testing.T) {
	t.Parallel()

	got := runInAction(t, "/report/show/page:3/sort:name", func(c internal.Context) string {
		return fmt.Sprintf("%d|%s|%d",
			internal.NamedParam[int](c, "page"),
			internal.NamedParam[string](c, "sort"),
			internal.NamedParam[int](c, "missing"),
		)
	})
	require.Equal(t, "3|name|0", got)
}

func TestQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		fn    func(c internal.Context) any
		want  string
	}{
		{"int", "page=3", func(c internal.Context) any { return internal.Query[int](c, "page") }, "3"},
		{"negative int", "page=-2", func(c internal.Context) any { return internal.Query[int](c, "page") }, "-2"},
		{"float", "ratio=0.25", func(c internal.Context) any { return internal.Query[float64](c, "ratio") }, "0.25"},
		{"bool", "draft=1", func(c internal.Context) any { return internal.Query[bool](c, "draft") }, "true"},
		{"string", "q=hello+world", func(c internal.Context) any { return internal.Query[string](c, "q") }, "hello world"},
		{"missing", "", func(c internal.Context) any { return internal.Query[int](c, "page") }, "0"},
		{"unparseable", "page=abc", func(c internal.Context) any { return internal.Query[int](c, "page") }, "0"},
		{"default kept", "page=4", func(c internal.Context) any { return internal.QueryDefault(c, "page", 1) }, "4"},
		{"default on empty", "page=", func(c internal.Context) any { return internal.QueryDefault(c, "page", 1) }, "1"},
		{"default on bad value", "page=abc", func(c internal.Context) any { return internal.QueryDefault(c, "page", 1) }, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target := "/report/show"
			if tt.query != "" {
				target += "?" + tt.query
			}
			got := runInAction(t, target, func(c internal.Context) string {
				return fmt.Sprint(tt.fn(c))
			})
			require.Equal(t, tt.want, got)
		})
	}
}

type itemHandler struct{}

func (itemHandler) Routes(r internal.Router) {
	r.GET("/items/{id}", func(c internal.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("%d|%t",
			internal.Param[int](c, "id"),
			internal.Param[bool](c, "missing"),
		))
	})
}

func TestParam(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(itemHandler{}))

	for path, want := range map[string]string{"/items/12": "12|false", "/items/abc": "0|false"} {
		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, want, w.Body.String(), path)
	}
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type tenantKey struct{}
	type tenant struct{ Slug string }

	withTenant := internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(tenantKey{}, tenant{Slug: "acme"})
			return next(c)
		}
	})

	got := runInAction(t, "/report/show", func(c internal.Context) string {
		type missingKey struct{}
		return fmt.Sprintf("%s|%q|%d",
			internal.ContextValue[tenant](c, tenantKey{}).Slug,
			internal.ContextValue[string](c, tenantKey{}),
			internal.ContextValue[int](c, missingKey{}),
		)
	}, withTenant)
	require.Equal(t, `acme|""|0`, got)
}
