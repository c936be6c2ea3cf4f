package internal

// RouteListener observes the route string before and after dispatch.
type RouteListener func(c Context, route string) error

// ModuleListener observes each module entered on the way to a controller.
type ModuleListener func(c Context, module string) error

// ControllerListener observes the controller about to run.
type ControllerListener func(c Context, controller Controller) error

// listeners are fixed at construction and run synchronously in
// registration order. The first error aborts the dispatch.
type listeners struct {
	before     []RouteListener
	after      []RouteListener
	module     []ModuleListener
	controller []ControllerListener
	perModule  map[string][]func(Context) error
}

func (l *listeners) beforeDispatch(c Context, route string) error {
	return runRoute(l.before, c, route)
}

func (l *listeners) afterDispatch(c Context, route string) error {
	return runRoute(l.after, c, route)
}

func (l *listeners) moduleLoad(c Context, module string) error {
	for _, fn := range l.module {
		if err := fn(c, module); err != nil {
			return err
		}
	}
	for _, fn := range l.perModule[module] {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func (l *listeners) controllerLoad(c Context, ctrl Controller) error {
	for _, fn := range l.controller {
		if err := fn(c, ctrl); err != nil {
			return err
		}
	}
	return nil
}

func runRoute(fns []RouteListener, c Context, route string) error {
	for _, fn := range fns {
		if err := fn(c, route); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeDispatch runs fn with the route string before the controller is
// loaded.
func OnBeforeDispatch(fn RouteListener) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.events.before = append(d.events.before, fn)
		}
	}
}

// OnAfterDispatch runs fn with the route string after the action returned
// without error.
func OnAfterDispatch(fn RouteListener) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.events.after = append(d.events.after, fn)
		}
	}
}

// OnModuleLoad runs fn for every module path entered, outermost first.
// For "admin/reports" it sees "admin" then "admin/reports".
func OnModuleLoad(fn ModuleListener) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.events.module = append(d.events.module, fn)
		}
	}
}

// OnModuleLoaded runs fn whenever the given module path is entered.
func OnModuleLoaded(module string, fn func(Context) error) DispatcherOption {
	return func(d *Dispatcher) {
		if fn == nil {
			return
		}
		if d.events.perModule == nil {
			d.events.perModule = make(map[string][]func(Context) error)
		}
		module = joinModule(module)
		d.events.perModule[module] = append(d.events.perModule[module], fn)
	}
}

// OnControllerLoad runs fn after the controller is created and before the
// action is resolved.
func OnControllerLoad(fn ControllerListener) DispatcherOption {
	return func(d *Dispatcher) {
		if fn != nil {
			d.events.controller = append(d.events.controller, fn)
		}
	}
}
