package internal_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

const routeMapDoc = `
  route_map:
    es:
      users: usuarios
      users/list: usuarios/listar
`

func newURLs(t *testing.T, doc string) *internal.URLs {
	t.Helper()

	p := mustPolicy(t, doc)
	return internal.NewURLs(p, internal.NewTranslator(p.Routes, p.Language, 0))
}

func TestURLsBuild(t *testing.T) {
	t.Parallel()

	relative := newURLs(t, "routes:"+routeMapDoc)
	param := newURLs(t, "core:\n  domain: example.com\nroutes:\n  language_redirect: param"+routeMapDoc)
	subdomain := newURLs(t, "core:\n  domain: Example.com\n  scheme: https\nroutes:\n  language_redirect: subdomain\n"+
		"  subdomain_map:\n    admin: admin\n"+routeMapDoc)

	tests := []struct {
		name string
		urls *internal.URLs
		in   internal.BuildInput
		want string
	}{
		{
			name: "root",
			urls: relative,
			want: "/",
		},
		{
			name: "dash cased names",
			urls: relative,
			in:   internal.BuildInput{Controller: "userPanel", Action: "showAll"},
			want: "/user-panel/show-all",
		},
		{
			name: "module path",
			urls: relative,
			in:   internal.BuildInput{Module: "admin/reports", Controller: "sales"},
			want: "/admin/reports/sales",
		},
		{
			name: "params and query",
			urls: relative,
			in: internal.BuildInput{
				Controller: "users",
				Action:     "show",
				Params:     config.OrderedMapOf("0", 5, "sort", "name"),
				Query:      map[string]string{"b": "2", "a": "1"},
			},
			want: "/users/show/5/sort:name/?a=1&b=2",
		},
		{
			name: "translated without language placement",
			urls: relative,
			in:   internal.BuildInput{Language: "es", Controller: "users", Action: "list"},
			want: "/usuarios/listar",
		},
		{
			name: "language parameter",
			urls: param,
			in:   internal.BuildInput{Language: "es", Controller: "users"},
			want: "http://example.com/es/usuarios",
		},
		{
			name: "language parameter defaults to the app language",
			urls: param,
			in:   internal.BuildInput{Controller: "users", Action: "list"},
			want: "http://example.com/en/users/list",
		},
		{
			name: "module and language subdomains",
			urls: subdomain,
			in:   internal.BuildInput{Language: "es", Module: "admin", Controller: "users", Action: "edit"},
			want: "https://admin.es.example.com/usuarios/edit",
		},
		{
			name: "language subdomain root",
			urls: subdomain,
			in:   internal.BuildInput{Language: "es"},
			want: "https://es.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.urls.Build(tt.in))
		})
	}
}

func TestURLsTranslate(t *testing.T) {
	t.Parallel()

	relative := newURLs(t, "routes:"+routeMapDoc)
	param := newURLs(t, "routes:\n  language_redirect: param"+routeMapDoc)
	subdomain := newURLs(t, "core:\n  domain: example.com\nroutes:\n  language_redirect: subdomain"+routeMapDoc)

	require.Equal(t, "/usuarios/listar", relative.Translate("/users/list", "es"))
	require.Equal(t, "/users/list", relative.Translate("/users/list", ""))
	require.Equal(t, "http://other.com/users", relative.Translate("http://other.com/users", "es"))
	require.Equal(t, "/es/usuarios", param.Translate("/users", "es"))
	require.Equal(t, "/en", param.Translate("/", ""))
	require.Equal(t, "http://es.example.com/usuarios/listar", subdomain.Translate("/users/list", "es"))
}

func TestURLsFromParts(t *testing.T) {
	t.Parallel()

	u := newURLs(t, "core:\n  domain: example.com\n  scheme: https\n")

	require.Equal(t, "https://example.com/a/b/?x=1", u.FromParts("", "", "/a/b/", "x=1"))
	require.Equal(t, "http://other.com", u.FromParts("http", "other.com", "", nil))
	require.Equal(t, "https://api.example.com/v1", u.FromSubdomain([]string{"api"}, config.OrderedMapOf("0", "v1"), nil))
	require.Equal(t, "https://example.com/?q=go", u.FromSubdomain(nil, nil, "q=go"))
}

func TestURLsWithQuery(t *testing.T) {
	t.Parallel()

	u := newURLs(t, "")
	current, err := url.Parse("/users?page=1&sort=name")
	require.NoError(t, err)

	require.Equal(t, "/users?page=2&sort=name", u.WithQuery(current, map[string]string{"page": "2"}, true))
	require.Equal(t, "/users?page=2", u.WithQuery(current, map[string]string{"page": "2"}, false))
	require.Equal(t, "/users", u.WithQuery(current, nil, false))
}

func TestFromParams(t *testing.T) {
	t.Parallel()

	require.Empty(t, internal.FromParams(nil, nil))
	require.Equal(t, "/a%20b/tag:go%2Fweb", internal.FromParams(config.OrderedMapOf("0", "a b", "tag", "go/web"), nil))
	require.Equal(t, "/5/?page=2", internal.FromParams(config.OrderedMapOf("1", 5), "?page=2"))
}

func TestQueryString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query any
		want  string
	}{
		{name: "nil", query: nil, want: ""},
		{name: "string", query: "?a=1", want: "a=1"},
		{name: "values", query: url.Values{"b": {"2"}, "a": {"1"}}, want: "a=1&b=2"},
		{name: "string map", query: map[string]string{"q": "a b", "lang": "es"}, want: "lang=es&q=a+b"},
		{name: "any map", query: map[string]any{"n": 1, "s": "x"}, want: "n=1&s=x"},
		{name: "ordered map", query: config.OrderedMapOf("z", 1, "a", 2), want: "z=1&a=2"},
		{name: "scalar", query: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, internal.QueryString(tt.query))
		})
	}
}
