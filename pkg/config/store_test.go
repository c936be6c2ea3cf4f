package config_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/config"
)

const sampleDoc = `
core:
  controllers.dir: ./controllers
  controllers.default:
    "": Index
    admin: Dashboard
  domain: example.com
app:
  language: en
routes:
  start_index: 1
  language_redirect: param
  aliases:
    - pattern: "^es/(.*)"
      replace: "admin/panel/$1"
    - pattern: "^old/(.*)"
      replace: "new/$1"
  subdomain_map:
    blog.admin: blog/admin
    shop: shop
i18n:
  language_map:
    es: [ES, AR]
    pt: [BR, PT]
    en: ~
`

func TestParse(t *testing.T) {
	t.Parallel()

	store, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	t.Run("dotted keys inside nested mapping", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "./controllers", store.String("core.controllers.dir"))
		require.Equal(t, "example.com", store.String("core.domain"))
	})

	t.Run("scalars keep yaml types", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, 1, store.Get("routes.start_index"))
		require.Equal(t, 1, store.Int("routes.start_index"))
		require.Equal(t, "param", store.String("routes.language_redirect"))
	})

	t.Run("mapping order is preserved", func(t *testing.T) {
		t.Parallel()
		m := store.Map("i18n.language_map")
		require.NotNil(t, m)
		require.Equal(t, []string{"es", "pt", "en"}, m.Keys())

		en, ok := m.Get("en")
		require.True(t, ok)
		require.Nil(t, en)

		require.Equal(t, []string{"blog.admin", "shop"}, store.Map("routes.subdomain_map").Keys())
	})

	t.Run("empty key in mapping", func(t *testing.T) {
		t.Parallel()
		m := store.Map("core.controllers.default")
		require.Equal(t, []string{"", "admin"}, m.Keys())
	})

	t.Run("sequences of mappings", func(t *testing.T) {
		t.Parallel()
		seq, ok := store.Get("routes.aliases").([]any)
		require.True(t, ok)
		require.Len(t, seq, 2)
		first, ok := seq[0].(*config.OrderedMap)
		require.True(t, ok)
		v, _ := first.Get("pattern")
		require.Equal(t, "^es/(.*)", v)
	})

	t.Run("missing keys", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, store.Get("routes.nope"))
		require.False(t, store.Has("core.controllers.nope"))
		require.Equal(t, "", store.String("nope"))
		require.Equal(t, 0, store.Int("nope"))
		require.Nil(t, store.Map("nope"))
	})

	t.Run("key of value", func(t *testing.T) {
		t.Parallel()
		k, ok := store.Map("routes.subdomain_map").KeyOf("blog/admin")
		require.True(t, ok)
		require.Equal(t, "blog.admin", k)

		_, ok = store.Map("routes.subdomain_map").KeyOf("missing")
		require.False(t, ok)
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse([]byte("a: [unclosed"))
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("root is not a mapping", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse([]byte("- a\n- b\n"))
		require.ErrorIs(t, err, config.ErrNotMapping)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		store, err := config.Parse([]byte("  \n"))
		require.NoError(t, err)
		require.Equal(t, 0, store.Root().Len())
	})
}

func TestEnvAndDefaults(t *testing.T) {
	t.Parallel()

	env := map[string]string{"WAYPOINT_ROUTES_START_INDEX": "3"}
	store, err := config.Parse([]byte(sampleDoc),
		config.WithEnvPrefix("waypoint_"),
		config.WithLookupEnv(func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		}),
		config.WithDefaults(map[string]any{
			"routes.throw_exceptions": true,
			"routes.start_index":      9,
		}),
	)
	require.NoError(t, err)

	require.Equal(t, 3, store.Int("routes.start_index"))
	require.True(t, store.Bool("routes.throw_exceptions"))
	require.Equal(t, "en", store.String("app.language"))
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"config/app.yaml": &fstest.MapFile{Data: []byte(sampleDoc)},
	}

	store, err := config.LoadFS(fsys, "config/app.yaml")
	require.NoError(t, err)
	require.Equal(t, "en", store.String("app.language"))

	_, err = config.LoadFS(fsys, "missing.yaml")
	require.Error(t, err)

	store, err = config.Load(strings.NewReader("a:\n  b: c\n"))
	require.NoError(t, err)
	require.Equal(t, "c", store.String("a.b"))
}

func TestConverters(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"ES", "AR"}, config.ToStrings([]any{"ES", "AR"}))
	require.Equal(t, []string{"x"}, config.ToStrings("x"))
	require.Nil(t, config.ToStrings(nil))

	n, ok := config.ToInt("12")
	require.True(t, ok)
	require.Equal(t, 12, n)

	_, ok = config.ToInt("x")
	require.False(t, ok)

	b, ok := config.ToBool("true")
	require.True(t, ok)
	require.True(t, b)

	m := config.OrderedMapOf("b", 1, "a", 2, "b", 3)
	require.Equal(t, []string{"b", "a"}, m.Keys())
	v, _ := m.Get("b")
	require.Equal(t, 3, v)
}
