package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/config"
	"github.com/dmitrymomot/waypoint/pkg/lang"
)

// Target is the outcome of routing one request.
type Target struct {
	// Route is "/" followed by the lowercased translated segments, or "".
	Route string
	// Requested is the language found in the URL, if any.
	Requested string
	// Language is the language routes were translated with.
	Language string
	// Locale is the i18n.locales entry serving the request, or "" when no
	// locales are configured.
	Locale string
	// Modules are the module directories walked, outermost first.
	Modules []string
	// Module is Modules joined by "/".
	Module string
	// Controller is the controller name, e.g. "Users".
	Controller string
	// RawController is the path segment that named the controller.
	// Empty when the module default was used.
	RawController string
	// Action is the formatted action name.
	Action string
	// RawAction is the path segment that named the action.
	RawAction string
	// Args are the positional segments passed to the action.
	Args []string
	// Named are the "key:value" path segments.
	Named *config.OrderedMap
	// ControllerError is set when the requested controller was missing and
	// the module default controller handles the request.
	ControllerError bool
	// ActionError is set when the controller has no such action.
	ActionError bool
	// Redirect is set when the request must be redirected instead.
	Redirect string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRegistry sets the controller registry.
func WithRegistry(r *Registry) DispatcherOption {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithControllersFS scans fsys for modules and controller files instead of
// the configured controllers directory.
func WithControllersFS(fsys fs.FS) DispatcherOption {
	return func(d *Dispatcher) {
		d.controllersFS = fsys
	}
}

// WithControllersDir overrides the configured controllers directory.
func WithControllersDir(dir string) DispatcherOption {
	return func(d *Dispatcher) {
		d.controllersDir = dir
	}
}

// WithModuleTree sets a prebuilt module tree.
func WithModuleTree(t *ModuleTree) DispatcherOption {
	return func(d *Dispatcher) {
		d.modules = t
	}
}

// WithCountryExtractor replaces the sources used to find the client country.
// Defaults: CF-IPCountry and X-Country-Code headers.
func WithCountryExtractor(sources ...ExtractorSource) DispatcherOption {
	return func(d *Dispatcher) {
		d.country = NewExtractor(sources...)
	}
}

// WithTranslationCacheSize bounds the route translation memo.
// Zero or less disables it.
func WithTranslationCacheSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.cacheSize = n
	}
}

// WithThrowErrors overrides routes.throw_exceptions. When false, dispatch
// errors are swallowed after logging.
func WithThrowErrors(throw bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.throwErrors = &throw
	}
}

// WithLogErrors overrides logs.log_exceptions.
func WithLogErrors(log bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.logErrors = &log
	}
}

// WithDispatchLogger sets the logger for dispatch failures.
// Defaults to the request Context's logger.
func WithDispatchLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// Dispatcher routes requests to controller actions and builds URLs back.
// It is immutable after NewDispatcher and safe for concurrent use.
type Dispatcher struct {
	policy     *Policy
	translator *Translator
	urls       *URLs
	modules    *ModuleTree
	registry   *Registry
	events     listeners
	country    Extractor
	logger     *slog.Logger

	controllersFS  fs.FS
	controllersDir string
	cacheSize      int
	throwErrors    *bool
	logErrors      *bool
}

// NewDispatcher builds a dispatcher from the routing configuration in store.
//
// Example:
//
//	store, _ := config.LoadFile("config.yaml")
//	d, err := waypoint.NewDispatcher(store,
//	    waypoint.WithRegistry(registry),
//	    waypoint.OnBeforeDispatch(audit),
//	)
func NewDispatcher(store *config.Store, opts ...DispatcherOption) (*Dispatcher, error) {
	policy, err := NewPolicy(store)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		policy:         policy,
		registry:       NewRegistry(),
		controllersDir: policy.ControllersDir,
		cacheSize:      DefaultTranslationCacheSize,
		country: NewExtractor(
			FromHeader("CF-IPCountry"),
			FromHeader("X-Country-Code"),
		),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.throwErrors == nil {
		d.throwErrors = &policy.ThrowExceptions
	}
	if d.logErrors == nil {
		d.logErrors = &policy.LogExceptions
	}

	if d.modules == nil {
		switch {
		case d.controllersFS != nil:
			d.modules, err = ModuleTreeFromFS(d.controllersFS)
		case d.controllersDir != "":
			d.modules, err = ModuleTreeFromDir(d.controllersDir)
		default:
			d.modules = ModuleTreeFromRegistry(d.registry)
		}
		if err != nil {
			return nil, err
		}
	}

	d.translator = NewTranslator(policy.Routes, policy.Language, d.cacheSize)
	d.urls = NewURLs(policy, d.translator)
	return d, nil
}

// Policy returns the routing configuration.
func (d *Dispatcher) Policy() *Policy { return d.policy }

// URLs returns the URL builder sharing this dispatcher's configuration.
func (d *Dispatcher) URLs() *URLs { return d.urls }

// Modules returns the module tree.
func (d *Dispatcher) Modules() *ModuleTree { return d.modules }

// Translator returns the route translator.
func (d *Dispatcher) Translator() *Translator { return d.translator }

// Resolve runs the routing pipeline for in without listeners or invoking
// the action. The controller is created to resolve its actions.
func (d *Dispatcher) Resolve(in Input) (*Target, error) {
	built := BuildRoute(in, d.policy)
	if built.Redirect != "" {
		return &Target{Redirect: built.Redirect, Requested: built.Language}, nil
	}

	t, rest, err := d.resolveController(built, in)
	if err != nil {
		return t, err
	}
	ctrl, err := d.instantiate(t)
	if err != nil {
		return t, err
	}
	selectAction(t, ctrl, rest)
	return t, nil
}

// Dispatch routes the request of c and runs the selected action.
// A Context is dispatched at most once; later calls return nil.
func (d *Dispatcher) Dispatch(c Context) (err error) {
	st := routeStateOf(c)
	if st == nil {
		st = &routeState{}
		c.Set(routeStateKey{}, st)
	}
	if st.dispatched {
		return nil
	}
	st.dispatched = true
	st.urls = d.urls

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
		if err != nil {
			err = d.fail(c, st.target, err)
		}
	}()

	in := InputFromRequest(c.Request())
	if country, ok := d.country.Extract(c); ok {
		in.Country = country
	}

	built := BuildRoute(in, d.policy)
	if built.Redirect != "" {
		st.target = &Target{Redirect: built.Redirect, Requested: built.Language}
		return c.Redirect(http.StatusFound, built.Redirect)
	}

	t, rest, err := d.resolveController(built, in)
	st.target = t
	if err != nil {
		return err
	}

	if err := d.events.beforeDispatch(c, t.Route); err != nil {
		return err
	}

	factory, err := d.lookup(t)
	if err != nil {
		return err
	}

	for i := range t.Modules {
		if err := d.events.moduleLoad(c, strings.Join(t.Modules[:i+1], "/")); err != nil {
			return err
		}
	}

	ctrl, err := d.create(t, factory)
	if err != nil {
		return err
	}
	if err := d.events.controllerLoad(c, ctrl); err != nil {
		return err
	}

	selectAction(t, ctrl, rest)
	if err := invoke(c, t, ctrl); err != nil {
		return err
	}

	return d.events.afterDispatch(c, t.Route)
}

// Handler adapts the dispatcher to a HandlerFunc.
func (d *Dispatcher) Handler() HandlerFunc {
	return d.Dispatch
}

// resolveController translates the route, walks the module tree and picks
// the controller. It returns the segments left for the action.
func (d *Dispatcher) resolveController(b Built, in Input) (*Target, []string, error) {
	t := &Target{
		Requested: b.Language,
		Language:  b.Language,
		Named:     b.Params.Named,
	}
	if t.Language == "" {
		t.Language = d.policy.Language
	}
	t.Locale = d.locale(t.Language, in)

	// Subdomain prefixes name modules directly; only the path is localized.
	segments := append(slices.Clone(b.Prefix), d.translator.TranslateSegments(b.Path(), Inbound, t.Language)...)
	if len(segments) > 0 {
		t.Route = "/" + strings.ToLower(strings.Join(segments, "/"))
	}

	rest := segments
	next := func() (candidate string, fromDefault bool) {
		if len(rest) == 0 {
			return d.policy.Defaults.For(t.Module), true
		}
		candidate, rest = rest[0], rest[1:]
		return candidate, false
	}

	// A default controller naming a module directory enters that module too.
	candidate, fromDefault := next()
	for d.modules.IsModule(joinModule(t.Module, strings.ToLower(candidate))) {
		t.Modules = append(t.Modules, strings.ToLower(candidate))
		t.Module = strings.Join(t.Modules, "/")
		candidate, fromDefault = next()
	}

	t.Controller = candidate
	if !fromDefault {
		t.RawController = candidate
		t.Controller = ControllerName(candidate)
	}

	if !d.modules.HasController(t.Module, t.Controller) {
		fallback := d.policy.Defaults.For(t.Module)
		if fallback == t.Controller || !d.modules.HasController(t.Module, fallback) {
			return t, rest, fmt.Errorf("%w: %q in module %q", ErrControllerNotFound, t.Controller, t.Module)
		}
		t.Controller = fallback
		t.ControllerError = true
	}
	return t, rest, nil
}

// locale picks the configured locale for the request. With a language
// redirect mode the route language is combined with the client country;
// otherwise the Accept-Language header decides.
func (d *Dispatcher) locale(language string, in Input) string {
	p := d.policy
	if len(p.Locales) == 0 {
		return ""
	}
	if p.Redirect == RedirectNone {
		return lang.MatchLocale(in.AcceptLanguage, p.Locales)
	}
	info, err := lang.ResolveLocale(language, clientCountry(in, p), p.Locales)
	if err != nil {
		return ""
	}
	return info.Locale
}

func (d *Dispatcher) lookup(t *Target) (ControllerFactory, error) {
	f, ok := d.registry.Lookup(t.Module, t.Controller)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrControllerNotRegistered, joinModule(t.Module, t.Controller))
	}
	return f, nil
}

func (d *Dispatcher) instantiate(t *Target) (Controller, error) {
	f, err := d.lookup(t)
	if err != nil {
		return nil, err
	}
	return d.create(t, f)
}

func (d *Dispatcher) create(t *Target, f ControllerFactory) (Controller, error) {
	ctrl := f()
	if ctrl == nil {
		return nil, fmt.Errorf("%w: %s: factory returned nil", ErrInvalidController, joinModule(t.Module, t.Controller))
	}
	if _, ok := ctrl.Action(ctrl.DefaultAction()); !ok {
		return nil, fmt.Errorf("%w: %s: default action %q not found",
			ErrInvalidController, joinModule(t.Module, t.Controller), ctrl.DefaultAction())
	}
	return ctrl, nil
}

// selectAction picks the action from the remaining segments. A numeric
// first segment is an argument of the default action.
func selectAction(t *Target, ctrl Controller, rest []string) {
	t.Args = rest
	if t.ControllerError {
		return
	}
	if len(rest) == 0 || isNumeric(rest[0]) {
		t.Action = ctrl.DefaultAction()
	} else {
		t.RawAction = rest[0]
		t.Action = ActionName(rest[0])
		t.Args = rest[1:]
	}
	_, ok := ctrl.Action(t.Action)
	t.ActionError = !ok
}

func invoke(c Context, t *Target, ctrl Controller) error {
	if t.ControllerError {
		return ctrl.ControllerError(c, t.RawController, t.Args)
	}
	fn, ok := ctrl.Action(t.Action)
	if !ok {
		return ctrl.ActionError(c, t.RawAction, t.Args)
	}
	return fn(c, t.Args...)
}

func (d *Dispatcher) fail(c Context, t *Target, err error) error {
	var le *LoggerError
	if *d.logErrors && !errors.As(err, &le) {
		l := d.logger
		if l == nil {
			l = c.Logger()
		}
		attrs := []any{slog.Any("error", err)}
		if t != nil {
			attrs = append(attrs,
				slog.String("route", t.Route),
				slog.String("module", t.Module),
				slog.String("controller", t.Controller),
			)
		}
		var pe *PanicError
		if errors.As(err, &pe) {
			attrs = append(attrs, slog.String("stack", string(pe.Stack)))
		}
		l.ErrorContext(c, "dispatch failed", attrs...)
	}
	if *d.throwErrors {
		return err
	}
	return nil
}

// routeStateKey stores the per-request *routeState in the request context.
type routeStateKey struct{}

type routeState struct {
	dispatched bool
	target     *Target
	urls       *URLs
}

// seedRouteState shares one routeState between the dispatcher and the
// middleware wrapping it, so outer middleware sees the Target after next
// returns.
func seedRouteState(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if routeStateOf(r.Context()) == nil {
			r = r.WithContext(context.WithValue(r.Context(), routeStateKey{}, &routeState{}))
		}
		next.ServeHTTP(w, r)
	})
}

func routeStateOf(ctx interface{ Value(any) any }) *routeState {
	st, _ := ctx.Value(routeStateKey{}).(*routeState)
	return st
}

// TargetFromContext returns the Target of a dispatched request.
func TargetFromContext(ctx context.Context) (*Target, bool) {
	st := routeStateOf(ctx)
	if st == nil || st.target == nil {
		return nil, false
	}
	return st.target, true
}
