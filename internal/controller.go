package internal

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultActionName is the action used when a request names none. It is
// "index" rather than "default" so a bare controller URL and an explicit
// "/users/index" reach the same method, and "default" stays free as an
// ordinary action name.
const DefaultActionName = "index"

// ActionFunc handles one controller action. args are the positional path
// segments left after the controller and action names.
type ActionFunc func(c Context, args ...string) error

// Controller is what the dispatcher drives for a resolved route.
//
// Example:
//
//	type Users struct {
//	    waypoint.BaseController
//	    repo *Repo
//	}
//
//	func NewUsers(repo *Repo) waypoint.ControllerFactory {
//	    return func() waypoint.Controller {
//	        u := &Users{repo: repo}
//	        u.Handle("index", u.index)
//	        u.Handle("show", u.show)
//	        return u
//	    }
//	}
type Controller interface {
	// Action returns the handler for a formatted action name.
	Action(name string) (ActionFunc, bool)

	// DefaultAction names the action used when the request names none.
	DefaultAction() string

	// ActionError runs when the requested action does not exist.
	// action is the raw path segment.
	ActionError(c Context, action string, args []string) error

	// ControllerError runs on the module's default controller when the
	// requested controller does not exist. controller is the raw path segment.
	ControllerError(c Context, controller string, args []string) error
}

// BaseController is an action table to embed in controllers.
// Action names match case-insensitively.
type BaseController struct {
	actions       map[string]ActionFunc
	names         []string
	defaultAction string
}

// Handle registers fn under the action name.
// It panics on an empty name or a nil handler.
func (b *BaseController) Handle(name string, fn ActionFunc) {
	if name == "" || fn == nil {
		panic(fmt.Sprintf("waypoint: invalid action %q", name))
	}
	if b.actions == nil {
		b.actions = make(map[string]ActionFunc)
	}
	key := strings.ToLower(name)
	if _, exists := b.actions[key]; !exists {
		b.names = append(b.names, name)
	}
	b.actions[key] = fn
}

// SetDefaultAction replaces the default "index" action.
func (b *BaseController) SetDefaultAction(name string) {
	b.defaultAction = name
}

// Action implements Controller.
func (b *BaseController) Action(name string) (ActionFunc, bool) {
	fn, ok := b.actions[strings.ToLower(name)]
	return fn, ok
}

// Actions returns the registered action names in registration order.
func (b *BaseController) Actions() []string {
	return slices.Clone(b.names)
}

// DefaultAction implements Controller.
func (b *BaseController) DefaultAction() string {
	if b.defaultAction == "" {
		return DefaultActionName
	}
	return b.defaultAction
}

// ActionError redirects to the controller, keeping args.
func (b *BaseController) ActionError(c Context, _ string, args []string) error {
	return c.Forward("", args...)
}

// ControllerError redirects to the module's default controller, keeping args.
func (b *BaseController) ControllerError(c Context, _ string, args []string) error {
	return c.Forward("", args...)
}
