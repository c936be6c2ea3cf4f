package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/waypoint/pkg/config"
	"github.com/dmitrymomot/waypoint/pkg/hostrouter"
)

// Context provides request/response access, routing state and helpers.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns a URL parameter of an explicitly declared route.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// Domain returns the normalized host of the request.
	Domain() string

	// Subdomain returns the part of the host in front of the base domain.
	Subdomain() string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to url with the given status code.
	Redirect(code int, url string) error

	// Error creates an HTTPError without writing a response.
	// Return it from the handler to trigger the error handler.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written returns true if a response has already been written.
	Written() bool

	// ResponseWriter returns the wrapped writer.
	ResponseWriter() *ResponseWriter

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get retrieves a value from the request context, or nil.
	Get(key any) any

	// Target returns the routing result of a dispatched request, or nil.
	Target() *Target

	// Route returns the canonical route string, e.g. "/admin/users/list".
	Route() string

	// Module returns the module path of the controller, "" for the root.
	Module() string

	// ControllerName returns the resolved controller name.
	ControllerName() string

	// Action returns the resolved action name.
	Action() string

	// Args returns the positional arguments passed to the action.
	Args() []string

	// Arg returns the positional argument at index, or "".
	Arg(index int) string

	// Named returns a "key:value" path parameter, or "".
	Named(key string) string

	// RequestedLanguage returns the language found in the URL, if any.
	RequestedLanguage() string

	// Language returns the language the route was resolved in.
	Language() string

	// Locale returns the configured locale serving the request, e.g. "es_AR".
	Locale() string

	// URL builds a URL with the dispatcher's URL builder. An empty
	// Language means the language of the current request.
	URL(in BuildInput) string

	// Forward redirects to action of the current controller with args
	// as positional parameters. The request's named parameters and query
	// are kept. Without action and args it redirects to the controller.
	Forward(action string, args ...string) error

	// RedirectRoute translates a "/controller/action" route into the
	// current language and redirects to it.
	RedirectRoute(code int, route string) error
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	baseDomain     string
}

// newContext creates a new context with the response wrapper.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw := NewResponseWriter(w)
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		baseDomain:     app.baseDomain,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Domain() string {
	return hostrouter.Domain(c.request)
}

func (c *requestContext) Subdomain() string {
	if c.baseDomain == "" {
		return ""
	}
	return hostrouter.Subdomain(c.request.Host, c.baseDomain)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Target() *Target {
	t, _ := TargetFromContext(c.request.Context())
	return t
}

func (c *requestContext) Route() string {
	if t := c.Target(); t != nil {
		return t.Route
	}
	return ""
}

func (c *requestContext) Module() string {
	if t := c.Target(); t != nil {
		return t.Module
	}
	return ""
}

func (c *requestContext) ControllerName() string {
	if t := c.Target(); t != nil {
		return t.Controller
	}
	return ""
}

func (c *requestContext) Action() string {
	if t := c.Target(); t != nil {
		return t.Action
	}
	return ""
}

func (c *requestContext) Args() []string {
	if t := c.Target(); t != nil {
		return slices.Clone(t.Args)
	}
	return nil
}

func (c *requestContext) Arg(index int) string {
	t := c.Target()
	if t == nil || index < 0 || index >= len(t.Args) {
		return ""
	}
	return t.Args[index]
}

func (c *requestContext) Named(key string) string {
	t := c.Target()
	if t == nil {
		return ""
	}
	v, _ := t.Named.Get(key)
	return config.ToString(v)
}

func (c *requestContext) RequestedLanguage() string {
	if t := c.Target(); t != nil {
		return t.Requested
	}
	return ""
}

func (c *requestContext) Language() string {
	if t := c.Target(); t != nil {
		return t.Language
	}
	return ""
}

func (c *requestContext) Locale() string {
	if t := c.Target(); t != nil {
		return t.Locale
	}
	return ""
}

func (c *requestContext) URL(in BuildInput) string {
	st := routeStateOf(c.request.Context())
	if st == nil || st.urls == nil {
		return ""
	}
	if in.Language == "" {
		in.Language = c.RequestedLanguage()
	}
	return st.urls.Build(in)
}

func (c *requestContext) Forward(action string, args ...string) error {
	t := c.Target()
	if t == nil {
		return ErrNotDispatched
	}
	in := BuildInput{Module: t.Module, Controller: t.Controller}
	if action != "" || len(args) > 0 {
		in.Action = action
		in.Params = forwardParams(args, t.Named)
		in.Query = c.request.URL.RawQuery
	}
	return c.Redirect(http.StatusFound, c.URL(in))
}

func (c *requestContext) RedirectRoute(code int, route string) error {
	st := routeStateOf(c.request.Context())
	if st == nil || st.urls == nil {
		return ErrNotDispatched
	}
	return c.Redirect(code, st.urls.Translate(route, c.RequestedLanguage()))
}

// forwardParams lists args under integer keys followed by the named params.
func forwardParams(args []string, named *config.OrderedMap) *config.OrderedMap {
	params := config.NewOrderedMap()
	for i, a := range args {
		params.Set(strconv.Itoa(i), a)
	}
	for k, v := range named.All() {
		params.Set(k, v)
	}
	return params
}
