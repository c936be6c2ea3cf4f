package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/middlewares"
)

const languagesDoc = `
app:
  language: en
i18n:
  language_map:
    es: [ES, MX]
    de: [DE]
    en: []
`

const paramLanguagesDoc = `
app:
  language: en
routes:
  language_redirect: param
i18n:
  language_map:
    es: [ES, MX]
    en: []
`

func TestLanguage(t *testing.T) {
	t.Parallel()

	plain := newDispatcher(t, languagesDoc)
	param := newDispatcher(t, paramLanguagesDoc)

	tests := []struct {
		name       string
		dispatcher *internal.Dispatcher
		path       string
		cookie     string
		accept     string
		want       string
	}{
		{name: "fallback", dispatcher: plain, path: "/", want: "en"},
		{name: "accept language", dispatcher: plain, path: "/", accept: "de-DE,de;q=0.9", want: "de"},
		{name: "cookie beats header", dispatcher: plain, path: "/", cookie: "es", accept: "de", want: "es"},
		{name: "unknown cookie uses the fallback", dispatcher: plain, path: "/", cookie: "fr", want: "en"},
		{name: "url language", dispatcher: param, path: "/es", cookie: "en", want: "es"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewares.DefaultLanguageCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			var seen string
			w := httptest.NewRecorder()
			app := internal.New(
				internal.WithMiddleware(middlewares.Language(tt.dispatcher)),
				internal.WithHandlers(routeHandler{path: tt.path, h: func(c internal.Context) error {
					seen = middlewares.GetLanguage(c)
					return ok(c)
				}}),
			)
			app.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.want, seen)
			require.Equal(t, tt.want, w.Header().Get("Content-Language"))
		})
	}
}

func TestLanguageKeepsExplicitContentLanguage(t *testing.T) {
	t.Parallel()

	w := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
		c.SetHeader("Content-Language", "pt")
		return ok(c)
	}, nil, middlewares.Language(newDispatcher(t, languagesDoc)))

	require.Equal(t, "pt", w.Header().Get("Content-Language"))
}

func TestLanguagePersist(t *testing.T) {
	t.Parallel()

	d := newDispatcher(t, languagesDoc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es-MX")
	w := serve(t, req, ok, nil, middlewares.Language(d,
		middlewares.WithLanguageCookie("locale"),
		middlewares.WithLanguagePersist(3600),
	))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "locale", cookies[0].Name)
	require.Equal(t, "es", cookies[0].Value)
	require.Equal(t, 3600, cookies[0].MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "locale", Value: "es"})
	w = serve(t, req, ok, nil, middlewares.Language(d,
		middlewares.WithLanguageCookie("locale"),
		middlewares.WithLanguagePersist(3600),
	))
	require.Empty(t, w.Result().Cookies())
}

func TestLanguageCustomExtractor(t *testing.T) {
	t.Parallel()

	mw := middlewares.Language(newDispatcher(t, languagesDoc), middlewares.WithLanguageExtractor(
		internal.NewExtractor(internal.FromQuery("hl")),
	))

	var seen string
	serve(t, httptest.NewRequest(http.MethodGet, "/?hl=de", nil), func(c internal.Context) error {
		seen = middlewares.GetLanguage(c)
		attr, found := middlewares.LanguageExtractor()(c)
		require.True(t, found)
		require.Equal(t, "de", attr.Value.String())
		return ok(c)
	}, nil, mw)
	require.Equal(t, "de", seen)
}

func TestGetLanguageWithoutMiddleware(t *testing.T) {
	t.Parallel()

	serve(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c internal.Context) error {
		require.Empty(t, middlewares.GetLanguage(c))
		return ok(c)
	}, nil)
}
