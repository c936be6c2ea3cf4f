package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
)

func TestParseParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		positional []string
		named      map[string]string
		route      string
		str        string
	}{
		{
			name:       "positional and named",
			raw:        "/Users/List/page:2/sort:name",
			positional: []string{"Users", "List"},
			named:      map[string]string{"page": "2", "sort": "name"},
			route:      "users/list",
			str:        "/Users/List/page:2/sort:name",
		},
		{
			name:       "query is ignored",
			raw:        "/users/show/5?tab=info",
			positional: []string{"users", "show", "5"},
			route:      "users/show/5",
			str:        "/users/show/5",
		},
		{
			name:       "empty segments are dropped",
			raw:        "//users///list/",
			positional: []string{"users", "list"},
			route:      "users/list",
			str:        "/users/list",
		},
		{
			name:       "leading colon stays positional",
			raw:        "/:draft/users",
			positional: []string{":draft", "users"},
			route:      ":draft/users",
			str:        "/:draft/users",
		},
		{
			name:  "value is cut at the second colon",
			raw:   "/at:12:30",
			named: map[string]string{"at": "12"},
			str:   "/at:12",
		},
		{
			name: "root",
			raw:  "/",
			str:  "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := internal.ParseParams(tt.raw)
			require.Equal(t, tt.positional, p.Positional)
			require.Equal(t, len(tt.named), p.Named.Len())
			for k, want := range tt.named {
				got, ok := p.Value(k)
				require.True(t, ok, k)
				require.Equal(t, want, got)
			}
			require.Equal(t, tt.route, p.Route())
			require.Equal(t, tt.str, p.String())
		})
	}
}

func TestParamsGet(t *testing.T) {
	t.Parallel()

	p := internal.ParseParams("/users/show/5")
	require.Equal(t, "users", p.Get(0))
	require.Equal(t, "5", p.Get(2))
	require.Empty(t, p.Get(3))
	require.Empty(t, p.Get(-1))

	_, ok := p.Value("page")
	require.False(t, ok)
}

func TestParamsAll(t *testing.T) {
	t.Parallel()

	p := internal.ParseParams("/page:2/users/sort:name")
	require.Equal(t, []string{"users", "page:2", "sort:name"}, p.All())
}
