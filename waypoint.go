package waypoint

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/config"
	"github.com/dmitrymomot/waypoint/pkg/logger"
)

// Type aliases - public API
type (
	// App is the HTTP front controller.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access, routing state and helpers.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// CheckFunc is a readiness check.
	CheckFunc = internal.CheckFunc

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with write hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError is an error carrying an HTTP status.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// PanicError is a panic recovered during dispatch.
	PanicError = internal.PanicError

	// LoggerError marks failures of the logging pipeline; dispatch does not log them.
	LoggerError = internal.LoggerError

	// Extractor tries sources in order and returns the first value found.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from a request.
	ExtractorSource = internal.ExtractorSource
)

// Routing types
type (
	// Dispatcher routes requests to controller actions.
	Dispatcher = internal.Dispatcher

	// DispatcherOption configures a Dispatcher.
	DispatcherOption = internal.DispatcherOption

	// Target is the outcome of routing one request.
	Target = internal.Target

	// Controller is what the dispatcher drives for a resolved route.
	Controller = internal.Controller

	// BaseController is an action table to embed in controllers.
	BaseController = internal.BaseController

	// ActionFunc handles one controller action.
	ActionFunc = internal.ActionFunc

	// ControllerFactory creates a controller for one dispatch.
	ControllerFactory = internal.ControllerFactory

	// Registry maps controller keys to factories.
	Registry = internal.Registry

	// ModuleTree holds the module directories and their controllers.
	ModuleTree = internal.ModuleTree

	// Policy is the routing configuration.
	Policy = internal.Policy

	// Alias rewrites a route prefix before it is split.
	Alias = internal.Alias

	// SubdomainRoute maps host labels to a module path.
	SubdomainRoute = internal.SubdomainRoute

	// DefaultControllers resolves the default controller of a module.
	DefaultControllers = internal.DefaultControllers

	// RedirectMode selects where the language lives in a URL.
	RedirectMode = internal.RedirectMode

	// Params is a parsed request path.
	Params = internal.Params

	// Input is the part of a request the route builder reads.
	Input = internal.Input

	// Built is the outcome of BuildRoute.
	Built = internal.Built

	// Translator converts routes between canonical and localized forms.
	Translator = internal.Translator

	// Direction selects which side of an alias pair is matched.
	Direction = internal.Direction

	// AliasPair links a canonical route prefix to its localized form.
	AliasPair = internal.AliasPair

	// AliasTable is the ordered list of alias pairs of one language.
	AliasTable = internal.AliasTable

	// URLs builds localized URLs.
	URLs = internal.URLs

	// BuildInput describes a URL to build.
	BuildInput = internal.BuildInput

	// RouteListener observes the route before and after dispatch.
	RouteListener = internal.RouteListener

	// ModuleListener observes each module entered.
	ModuleListener = internal.ModuleListener

	// ControllerListener observes the controller about to run.
	ControllerListener = internal.ControllerListener
)

// Redirect modes.
const (
	RedirectNone      = internal.RedirectNone
	RedirectParam     = internal.RedirectParam
	RedirectSubdomain = internal.RedirectSubdomain
)

// Translation directions.
const (
	Inbound  = internal.Inbound
	Outbound = internal.Outbound
)

// DefaultActionName is the action used when a request names none.
const DefaultActionName = internal.DefaultActionName

// DefaultTranslationCacheSize bounds the translation memo.
const DefaultTranslationCacheSize = internal.DefaultTranslationCacheSize

// Configuration keys read by NewPolicy.
const (
	KeyControllersDir    = internal.KeyControllersDir
	KeyDefaultController = internal.KeyDefaultController
	KeyDomain            = internal.KeyDomain
	KeyScheme            = internal.KeyScheme
	KeyLanguage          = internal.KeyLanguage
	KeyStartIndex        = internal.KeyStartIndex
	KeyLanguageRedirect  = internal.KeyLanguageRedirect
	KeySubdomainMap      = internal.KeySubdomainMap
	KeyAliases           = internal.KeyAliases
	KeyRouteMap          = internal.KeyRouteMap
	KeyThrowExceptions   = internal.KeyThrowExceptions
	KeyLanguageMap       = internal.KeyLanguageMap
	KeyLocales           = internal.KeyLocales
	KeyDefaultCountry    = internal.KeyDefaultCountry
	KeyLogExceptions     = internal.KeyLogExceptions
)

// Errors
var (
	ErrInvalidConfig           = internal.ErrInvalidConfig
	ErrInvalidControllersDir   = internal.ErrInvalidControllersDir
	ErrControllerNotFound      = internal.ErrControllerNotFound
	ErrControllerNotRegistered = internal.ErrControllerNotRegistered
	ErrInvalidController       = internal.ErrInvalidController
	ErrNotDispatched           = internal.ErrNotDispatched
)

// New creates a new application with the given options.
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run starts a multi-domain HTTP server and blocks until shutdown.
//
//	waypoint.Run(
//	    waypoint.Domain("api.example.com", apiApp),
//	    waypoint.Fallback(siteApp),
//	    waypoint.Address(":8080"),
//	)
func Run(opts ...RunOption) error {
	return internal.Run(opts...)
}

// WithDispatcher routes every request without a declared route through d.
func WithDispatcher(d *Dispatcher) Option {
	return internal.WithDispatcher(d)
}

// WithMiddleware adds global middleware to the application.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare explicit routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
// It only runs when no dispatcher is configured.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithBaseDomain sets the domain Context.Subdomain is computed against.
// Defaults to core.domain of the dispatcher.
func WithBaseDomain(domain string) Option {
	return internal.WithBaseDomain(domain)
}

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// ControllersCheck fails while a controller of the module tree has no factory.
func ControllersCheck(d *Dispatcher) CheckFunc {
	return internal.ControllersCheck(d)
}

// Address sets the server listen address.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the logger for server lifecycle events.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function called during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// Domain maps a host pattern to an App for multi-domain routing.
func Domain(pattern string, app *App) RunOption {
	return internal.Domain(pattern, app)
}

// Site maps the dispatcher's core.domain and its subdomains to app.
func Site(app *App) RunOption {
	return internal.Site(app)
}

// Fallback sets the App for requests matching no domain.
func Fallback(app *App) RunOption {
	return internal.Fallback(app)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// NewDispatcher builds a dispatcher from the routing configuration in store.
func NewDispatcher(store *config.Store, opts ...DispatcherOption) (*Dispatcher, error) {
	return internal.NewDispatcher(store, opts...)
}

// WithRegistry sets the controller registry.
func WithRegistry(r *Registry) DispatcherOption {
	return internal.WithRegistry(r)
}

// WithControllersFS scans fsys for modules and controllers.
func WithControllersFS(fsys fs.FS) DispatcherOption {
	return internal.WithControllersFS(fsys)
}

// WithControllersDir overrides core.controllers.dir.
func WithControllersDir(dir string) DispatcherOption {
	return internal.WithControllersDir(dir)
}

// WithModuleTree sets a prebuilt module tree.
func WithModuleTree(t *ModuleTree) DispatcherOption {
	return internal.WithModuleTree(t)
}

// WithCountryExtractor replaces the sources used to find the client country.
func WithCountryExtractor(sources ...ExtractorSource) DispatcherOption {
	return internal.WithCountryExtractor(sources...)
}

// WithTranslationCacheSize bounds the route translation memo.
func WithTranslationCacheSize(n int) DispatcherOption {
	return internal.WithTranslationCacheSize(n)
}

// WithThrowErrors overrides routes.throw_exceptions.
func WithThrowErrors(throw bool) DispatcherOption {
	return internal.WithThrowErrors(throw)
}

// WithLogErrors overrides logs.log_exceptions.
func WithLogErrors(log bool) DispatcherOption {
	return internal.WithLogErrors(log)
}

// WithDispatchLogger sets the logger for dispatch failures.
func WithDispatchLogger(l *slog.Logger) DispatcherOption {
	return internal.WithDispatchLogger(l)
}

// OnBeforeDispatch runs fn before the controller is loaded.
func OnBeforeDispatch(fn RouteListener) DispatcherOption {
	return internal.OnBeforeDispatch(fn)
}

// OnAfterDispatch runs fn after the action returned without error.
func OnAfterDispatch(fn RouteListener) DispatcherOption {
	return internal.OnAfterDispatch(fn)
}

// OnModuleLoad runs fn for every module entered, outermost first.
func OnModuleLoad(fn ModuleListener) DispatcherOption {
	return internal.OnModuleLoad(fn)
}

// OnModuleLoaded runs fn whenever the given module is entered.
func OnModuleLoaded(module string, fn func(Context) error) DispatcherOption {
	return internal.OnModuleLoaded(module, fn)
}

// OnControllerLoad runs fn after the controller is created.
func OnControllerLoad(fn ControllerListener) DispatcherOption {
	return internal.OnControllerLoad(fn)
}

// NewRegistry creates an empty controller registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// NewModuleTree creates an empty module tree.
func NewModuleTree() *ModuleTree {
	return internal.NewModuleTree()
}

// ModuleTreeFromFS scans fsys for modules and controller files.
func ModuleTreeFromFS(fsys fs.FS) (*ModuleTree, error) {
	return internal.ModuleTreeFromFS(fsys)
}

// ModuleTreeFromDir scans a controllers directory on disk.
func ModuleTreeFromDir(dir string) (*ModuleTree, error) {
	return internal.ModuleTreeFromDir(dir)
}

// ModuleTreeFromRegistry derives the module tree from registered keys.
func ModuleTreeFromRegistry(r *Registry) *ModuleTree {
	return internal.ModuleTreeFromRegistry(r)
}

// NewPolicy reads the routing configuration from store.
func NewPolicy(store *config.Store) (*Policy, error) {
	return internal.NewPolicy(store)
}

// NewTranslator creates a Translator over per-language alias tables.
func NewTranslator(tables map[string]AliasTable, fallback string, cacheSize int) *Translator {
	return internal.NewTranslator(tables, fallback, cacheSize)
}

// NewURLs creates a URL builder.
func NewURLs(p *Policy, t *Translator) *URLs {
	return internal.NewURLs(p, t)
}

// ParseParams splits a request path into positional and named parameters.
func ParseParams(raw string) Params {
	return internal.ParseParams(raw)
}

// BuildRoute turns a request into route segments according to policy.
func BuildRoute(in Input, p *Policy) Built {
	return internal.BuildRoute(in, p)
}

// InputFromRequest builds an Input from r.
func InputFromRequest(r *http.Request) Input {
	return internal.InputFromRequest(r)
}

// TargetFromContext returns the Target of a dispatched request.
func TargetFromContext(ctx context.Context) (*Target, bool) {
	return internal.TargetFromContext(ctx)
}

// ControllerName turns a URL segment into a controller name.
func ControllerName(segment string) string {
	return internal.ControllerName(segment)
}

// ActionName turns a URL segment into an action name.
func ActionName(segment string) string {
	return internal.ActionName(segment)
}

// FromParams renders params as path segments followed by the query.
func FromParams(params *config.OrderedMap, query any) string {
	return internal.FromParams(params, query)
}

// QueryString encodes a query value.
func QueryString(query any) string {
	return internal.QueryString(query)
}

// RouteExtractor adds the resolved route to log entries.
func RouteExtractor() ContextExtractor {
	return internal.RouteExtractor()
}

// NewExtractor creates an Extractor that tries sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource { return internal.FromQuery(name) }

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }

// FromParam reads a declared route parameter.
func FromParam(name string) ExtractorSource { return internal.FromParam(name) }

// FromForm reads a form value.
func FromForm(name string) ExtractorSource { return internal.FromForm(name) }

// FromNamed reads a "key:value" path parameter.
func FromNamed(key string) ExtractorSource { return internal.FromNamed(key) }

// FromAcceptLanguageCountry reads the region of the Accept-Language header.
func FromAcceptLanguageCountry() ExtractorSource { return internal.FromAcceptLanguageCountry() }

// FromRequestedLanguage reads the language found in the URL.
func FromRequestedLanguage() ExtractorSource { return internal.FromRequestedLanguage() }

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// ErrBadRequest creates a 400 HTTPError.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 HTTPError.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal creates a 500 HTTPError.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithDetail adds a detail to an HTTPError.
func WithDetail(detail string) HTTPErrorOption { return internal.WithDetail(detail) }

// WithRequestID adds a request ID to an HTTPError.
func WithRequestID(id string) HTTPErrorOption { return internal.WithRequestID(id) }

// WithError wraps an underlying error in an HTTPError.
func WithError(err error) HTTPErrorOption { return internal.WithError(err) }

// IsHTTPError reports whether err is or wraps an HTTPError.
func IsHTTPError(err error) bool { return internal.IsHTTPError(err) }

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }

// IsPanicError reports whether err is or wraps a PanicError.
func IsPanicError(err error) bool { return internal.IsPanicError(err) }

// ContextValue returns the value stored under key, or the zero T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param returns a typed URL parameter of a declared route.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns a typed query parameter.
func Query[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns a typed query parameter or defaultValue.
func QueryDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// Arg returns the action argument at index converted to T.
func Arg[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, index int) T {
	return internal.Arg[T](c, index)
}

// ArgDefault returns the action argument at index, or defaultValue.
func ArgDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, index int, defaultValue T) T {
	return internal.ArgDefault(c, index, defaultValue)
}

// NamedParam returns a "key:value" path parameter converted to T.
func NamedParam[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, key string) T {
	return internal.NamedParam[T](c, key)
}
