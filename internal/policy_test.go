package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

func parseStore(t *testing.T, doc string) *config.Store {
	t.Helper()

	store, err := config.Parse([]byte(doc))
	require.NoError(t, err)
	return store
}

func TestNewPolicyDefaults(t *testing.T) {
	t.Parallel()

	p, err := internal.NewPolicy(nil)
	require.NoError(t, err)
	require.Equal(t, "http", p.Scheme)
	require.Equal(t, "en", p.Language)
	require.Equal(t, "US", p.DefaultCountry)
	require.Equal(t, internal.RedirectNone, p.Redirect)
	require.True(t, p.ThrowExceptions)
	require.False(t, p.LogExceptions)
	require.Equal(t, "Index", p.Defaults.For(""))
	require.Equal(t, "Index", p.Defaults.For("admin"))
}

func TestNewPolicy(t *testing.T) {
	t.Parallel()

	store := parseStore(t, `
core:
  domain: Example.com
  scheme: https
  controllers:
    default: Home
app:
  language: ES
routes:
  start_index: 1
  language_redirect: param
  throw_exceptions: false
  subdomain_map:
    Admin: admin
    api.v1: /api/v1/
  route_map:
    es:
      users: usuarios
      users/list: usuarios/listar
i18n:
  default_country: gb
  locales: [en_US, es_ES]
  language_map:
    es: [ES, MX]
    en: []
logs:
  log_exceptions: true
`)

	p, err := internal.NewPolicy(store)
	require.NoError(t, err)

	require.Equal(t, "example.com", p.Domain)
	require.Equal(t, "https", p.Scheme)
	require.Equal(t, "es", p.Language)
	require.Equal(t, 1, p.StartIndex)
	require.Equal(t, internal.RedirectParam, p.Redirect)
	require.False(t, p.ThrowExceptions)
	require.True(t, p.LogExceptions)
	require.Equal(t, "GB", p.DefaultCountry)
	require.Equal(t, []string{"en_US", "es_ES"}, p.Locales)
	require.Equal(t, "Home", p.Defaults.For("anything"))

	require.Equal(t, []internal.SubdomainRoute{
		{Labels: "admin", Module: "admin"},
		{Labels: "api.v1", Module: "api/v1"},
	}, p.Subdomains)

	module, ok := p.Module([]string{"api", "v1"})
	require.True(t, ok)
	require.Equal(t, "api/v1", module)
	_, ok = p.Module([]string{"www"})
	require.False(t, ok)

	labels, ok := p.SubdomainFor("/api/v1")
	require.True(t, ok)
	require.Equal(t, "api.v1", labels)

	require.Equal(t, internal.AliasTable{
		{Canonical: "users", Localized: "usuarios"},
		{Canonical: "users/list", Localized: "usuarios/listar"},
	}, p.Routes["es"])

	require.True(t, p.Languages.Has("es"))
	require.Equal(t, "es", p.Languages.ByCountry("MX", "en"))
	require.Equal(t, "en", p.Languages.ByCountry("DE", "es"))
}

func TestNewPolicyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown redirect mode", doc: "routes:\n  language_redirect: cookie\n"},
		{name: "subdomain languages without domain", doc: "routes:\n  language_redirect: subdomain\n"},
		{name: "negative start index", doc: "routes:\n  start_index: -1\n"},
		{name: "invalid locale", doc: "i18n:\n  locales: [english]\n"},
		{name: "invalid alias pattern", doc: "routes:\n  aliases:\n    '([a-z': x\n"},
		{name: "alias list item is not a mapping", doc: "routes:\n  aliases:\n    - foo\n"},
		{name: "aliases scalar", doc: "routes:\n  aliases: foo\n"},
		{name: "route map table is not a mapping", doc: "routes:\n  route_map:\n    es: usuarios\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := internal.NewPolicy(parseStore(t, tt.doc))
			require.ErrorIs(t, err, internal.ErrInvalidConfig)
		})
	}
}

func TestPolicyAliases(t *testing.T) {
	t.Parallel()

	t.Run("mapping form", func(t *testing.T) {
		t.Parallel()

		p, err := internal.NewPolicy(parseStore(t, `
routes:
  aliases:
    '^profile/(\d+)$': 'users/show/$1'
    '^p/(.*)$': 'pages/$1'
`))
		require.NoError(t, err)
		require.Len(t, p.Aliases, 2)

		out, ok := p.Aliases[0].Apply("profile/42")
		require.True(t, ok)
		require.Equal(t, "users/show/42", out)

		out, ok = p.Aliases[0].Apply("users/42")
		require.False(t, ok)
		require.Equal(t, "users/42", out)
	})

	t.Run("list form", func(t *testing.T) {
		t.Parallel()

		p, err := internal.NewPolicy(parseStore(t, `
routes:
  aliases:
    - pattern: '^about$'
      replace: pages/about
`))
		require.NoError(t, err)
		require.Len(t, p.Aliases, 1)

		out, ok := p.Aliases[0].Apply("about")
		require.True(t, ok)
		require.Equal(t, "pages/about", out)
	})
}

func TestDefaultControllers(t *testing.T) {
	t.Parallel()

	p, err := internal.NewPolicy(parseStore(t, `
core:
  controllers:
    default:
      admin: Dashboard
      reports: Summary
      "": Home
`))
	require.NoError(t, err)

	tests := []struct {
		module string
		want   string
	}{
		{module: "", want: "Home"},
		{module: "admin", want: "Dashboard"},
		{module: "admin/reports", want: "Summary"},
		{module: "shop", want: "Home"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, p.Defaults.For(tt.module), tt.module)
	}

	t.Run("first entry without root key", func(t *testing.T) {
		t.Parallel()

		p, err := internal.NewPolicy(parseStore(t, `
core:
  controllers:
    default:
      admin: Dashboard
      shop: Catalog
`))
		require.NoError(t, err)
		require.Equal(t, "Dashboard", p.Defaults.For(""))
		require.Equal(t, "Catalog", p.Defaults.For("shop"))
		require.Equal(t, "Dashboard", p.Defaults.For("blog"))
	})
}
