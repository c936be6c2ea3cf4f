package internal_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
)

const languagesDoc = `
i18n:
  language_map:
    es: [ES, MX, AR]
    en: []
`

func mustPolicy(t *testing.T, doc string) *internal.Policy {
	t.Helper()

	p, err := internal.NewPolicy(parseStore(t, doc))
	require.NoError(t, err)
	return p
}

func TestBuildRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      string
		in       internal.Input
		segments []string
		language string
		redirect string
	}{
		{
			name:     "plain path",
			in:       internal.Input{Path: "/users/list/page:2"},
			segments: []string{"users", "list"},
		},
		{
			name:     "start index skips leading segments",
			doc:      "routes:\n  start_index: 1\n",
			in:       internal.Input{Path: "/app/users/list"},
			segments: []string{"users", "list"},
		},
		{
			name:     "start index beyond the path",
			doc:      "routes:\n  start_index: 3\n",
			in:       internal.Input{Path: "/app"},
			segments: nil,
		},
		{
			name:     "language prefix",
			doc:      "routes:\n  language_redirect: param\n" + languagesDoc,
			in:       internal.Input{Path: "/es/users/list"},
			segments: []string{"users", "list"},
			language: "es",
		},
		{
			name:     "unknown language prefix redirects by country",
			doc:      "routes:\n  language_redirect: param\n" + languagesDoc,
			in:       internal.Input{Path: "/users/list", Country: "MX"},
			language: "es",
			redirect: "/es",
		},
		{
			name:     "country from Accept-Language",
			doc:      "routes:\n  language_redirect: param\n" + languagesDoc,
			in:       internal.Input{Path: "/users", AcceptLanguage: "es-AR,es;q=0.9"},
			language: "es",
			redirect: "/es",
		},
		{
			name:     "default country",
			doc:      "routes:\n  language_redirect: param\n" + languagesDoc,
			in:       internal.Input{Path: "/users"},
			language: "en",
			redirect: "/en",
		},
		{
			name:     "root path does not redirect",
			doc:      "routes:\n  language_redirect: param\n" + languagesDoc,
			in:       internal.Input{Path: "/", Country: "ES"},
			language: "es",
		},
		{
			name:     "start index applies before the language",
			doc:      "routes:\n  start_index: 1\n  language_redirect: param\n" + languagesDoc,
			in:       internal.Input{Path: "/app/es/users"},
			segments: []string{"users"},
			language: "es",
		},
		{
			name:     "language subdomain",
			doc:      "core:\n  domain: example.com\nroutes:\n  language_redirect: subdomain\n" + languagesDoc,
			in:       internal.Input{Path: "/users", Host: "es.example.com"},
			segments: []string{"users"},
			language: "es",
		},
		{
			name:     "unknown language subdomain falls back without redirect",
			doc:      "core:\n  domain: example.com\nroutes:\n  language_redirect: subdomain\n" + languagesDoc,
			in:       internal.Input{Path: "/users", Host: "www.example.com", Country: "AR"},
			segments: []string{"users"},
			language: "es",
		},
		{
			name: "module subdomain with language subdomain",
			doc: "core:\n  domain: example.com\nroutes:\n  language_redirect: subdomain\n" +
				"  subdomain_map:\n    admin: admin\n" + languagesDoc,
			in:       internal.Input{Path: "/users", Host: "admin.en.example.com"},
			segments: []string{"admin", "users"},
			language: "en",
		},
		{
			name:     "module subdomain",
			doc:      "core:\n  domain: example.com\nroutes:\n  subdomain_map:\n    api.v1: api/v1\n",
			in:       internal.Input{Path: "/users", Host: "api.v1.example.com"},
			segments: []string{"api", "v1", "users"},
		},
		{
			name:     "alias rewrites the lowercased route",
			doc:      "routes:\n  aliases:\n    '^profile/(\\d+)$': 'users/show/$1'\n",
			in:       internal.Input{Path: "/Profile/42/tab:info"},
			segments: []string{"users", "show", "42"},
		},
		{
			name:     "first matching alias wins",
			doc:      "routes:\n  aliases:\n    - pattern: '^a$'\n      replace: first\n    - pattern: '^a$'\n      replace: second\n",
			in:       internal.Input{Path: "/a"},
			segments: []string{"first"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := internal.BuildRoute(tt.in, mustPolicy(t, tt.doc))
			require.Equal(t, tt.redirect, b.Redirect)
			require.Equal(t, tt.language, b.Language)
			if tt.redirect == "" {
				require.Equal(t, tt.segments, b.Segments)
			}
		})
	}
}

func TestBuildRouteKeepsParams(t *testing.T) {
	t.Parallel()

	b := internal.BuildRoute(internal.Input{Path: "/Users/Show/5/tab:info"}, mustPolicy(t, ""))
	require.Equal(t, []string{"Users", "Show", "5"}, b.Segments)
	v, ok := b.Params.Value("tab")
	require.True(t, ok)
	require.Equal(t, "info", v)
}

func TestInputFromRequest(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/users/list?page=2", nil)
		r.Host = "WWW.Example.com:8080"
		r.Header.Set("Accept-Language", "es-MX")

		in := internal.InputFromRequest(r)
		require.Equal(t, "/users/list", in.Path)
		require.Equal(t, "www.example.com", in.Host)
		require.Equal(t, "http", in.Scheme)
		require.Equal(t, "es-MX", in.AcceptLanguage)
		require.Empty(t, in.Country)
	})

	t.Run("tls", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.TLS = &tls.ConnectionState{}
		require.Equal(t, "https", internal.InputFromRequest(r).Scheme)
	})

	t.Run("forwarded proto", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-Proto", "HTTPS, http")
		require.Equal(t, "https", internal.InputFromRequest(r).Scheme)
	})
}
