package internal

import (
	"fmt"
	"slices"
	"strings"
)

// ControllerFactory creates a fresh controller for one dispatch.
type ControllerFactory func() Controller

// Registry maps controller keys to factories. A key is the module path and
// the controller name joined by "/", e.g. "admin/Users" or "Index".
// Register everything before handing the registry to a dispatcher.
type Registry struct {
	factories map[string]ControllerFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ControllerFactory)}
}

// Register adds a factory under key. A trailing "Controller" suffix on the
// name is dropped. It panics on an empty key, a nil factory or a duplicate.
func (r *Registry) Register(key string, f ControllerFactory) *Registry {
	module, name := splitControllerKey(key)
	if name == "" {
		panic("waypoint: empty controller key")
	}
	if f == nil {
		panic(fmt.Sprintf("waypoint: nil factory for controller %q", key))
	}
	key = joinModule(module, name)
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("waypoint: controller %q registered twice", key))
	}
	r.factories[key] = f
	return r
}

// Lookup returns the factory of the controller name inside module.
func (r *Registry) Lookup(module, name string) (ControllerFactory, bool) {
	f, ok := r.factories[joinModule(module, name)]
	return f, ok
}

// Keys returns the registered keys in lexical order.
func (r *Registry) Keys() []string {
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// splitControllerKey splits "admin/users/ProfileController" into
// ("admin/users", "Profile").
func splitControllerKey(key string) (module, name string) {
	key = strings.Trim(key, "/")
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		module, name = key[:i], key[i+1:]
	} else {
		name = key
	}
	if trimmed, ok := strings.CutSuffix(name, "Controller"); ok && trimmed != "" {
		name = trimmed
	}
	return joinModule(module), name
}
