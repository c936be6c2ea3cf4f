package commands

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

// workspace is the routing setup loaded from the flags.
type workspace struct {
	store      *config.Store
	policy     *waypoint.Policy
	tree       *waypoint.ModuleTree
	dispatcher *waypoint.Dispatcher
}

func (o *options) load(extra ...waypoint.DispatcherOption) (*workspace, error) {
	var storeOpts []config.Option
	if o.envPrefix != "" {
		storeOpts = append(storeOpts, config.WithEnvPrefix(o.envPrefix))
	}
	store, err := config.LoadFile(o.configPath, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	policy, err := waypoint.NewPolicy(store)
	if err != nil {
		return nil, err
	}

	tree := waypoint.NewModuleTree()
	dir := o.controllersDir
	if dir == "" {
		dir = policy.ControllersDir
	}
	if dir != "" {
		if tree, err = waypoint.ModuleTreeFromDir(dir); err != nil {
			return nil, err
		}
	}

	actions := make(map[string][]string, len(o.register))
	for _, entry := range o.register {
		key, list, _ := strings.Cut(entry, "=")
		module, name := splitKey(key)
		if name == "" {
			return nil, fmt.Errorf("register %q: empty controller name", entry)
		}
		name = waypoint.ControllerName(name)
		tree.AddController(module, name)
		if list != "" {
			actions[joinKey(module, name)] = strings.Split(list, ",")
		}
	}
	for _, module := range append([]string{""}, tree.Modules()...) {
		tree.AddController(module, policy.Defaults.For(module))
	}

	registry := waypoint.NewRegistry()
	for _, module := range append([]string{""}, tree.Modules()...) {
		for _, name := range tree.Controllers(module) {
			key := joinKey(module, name)
			registry.Register(key, inspectorFactory(actions[key]))
		}
	}

	opts := append([]waypoint.DispatcherOption{
		waypoint.WithModuleTree(tree),
		waypoint.WithRegistry(registry),
	}, extra...)
	d, err := waypoint.NewDispatcher(store, opts...)
	if err != nil {
		return nil, err
	}

	return &workspace{store: store, policy: policy, tree: tree, dispatcher: d}, nil
}

func splitKey(key string) (module, name string) {
	key = strings.Trim(key, "/")
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[:i], key[i+1:]
	}
	return "", key
}

func joinKey(module, name string) string {
	if module == "" {
		return name
	}
	return module + "/" + name
}

// inspector stands in for a real controller: it answers with the resolved
// target. With no action list every action exists.
type inspector struct {
	actions []string
}

func inspectorFactory(actions []string) waypoint.ControllerFactory {
	normalized := make([]string, 0, len(actions))
	for _, a := range actions {
		if a = strings.TrimSpace(a); a != "" {
			normalized = append(normalized, strings.ToLower(waypoint.ActionName(a)))
		}
	}
	if len(normalized) > 0 && !slices.Contains(normalized, waypoint.DefaultActionName) {
		normalized = append(normalized, waypoint.DefaultActionName)
	}
	return func() waypoint.Controller {
		return &inspector{actions: normalized}
	}
}

func (i *inspector) Action(name string) (waypoint.ActionFunc, bool) {
	if len(i.actions) == 0 || slices.Contains(i.actions, strings.ToLower(name)) {
		return inspect, true
	}
	return nil, false
}

func (i *inspector) DefaultAction() string {
	return waypoint.DefaultActionName
}

func (i *inspector) ActionError(c waypoint.Context, _ string, _ []string) error {
	return inspectStatus(c, http.StatusNotFound)
}

func (i *inspector) ControllerError(c waypoint.Context, _ string, _ []string) error {
	return inspectStatus(c, http.StatusNotFound)
}

func inspect(c waypoint.Context, _ ...string) error {
	return inspectStatus(c, http.StatusOK)
}

func inspectStatus(c waypoint.Context, code int) error {
	return c.JSON(code, newTargetOutput(c.Target()))
}
