package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"
)

var controllerFile = regexp.MustCompile(`^(.+)Controller(\..+)?$`)

type moduleNode struct {
	children    map[string]*moduleNode
	controllers map[string]struct{}
}

func newModuleNode() *moduleNode {
	return &moduleNode{
		children:    make(map[string]*moduleNode),
		controllers: make(map[string]struct{}),
	}
}

// ModuleTree is the tree of module directories and the controllers each one
// holds. The root module is "". It is built once and only read afterwards.
type ModuleTree struct {
	root *moduleNode
}

// NewModuleTree creates an empty tree containing only the root module.
func NewModuleTree() *ModuleTree {
	return &ModuleTree{root: newModuleNode()}
}

// ModuleTreeFromFS scans fsys: every directory is a module and every file
// named "<Name>Controller" with an optional extension is a controller.
func ModuleTreeFromFS(fsys fs.FS) (*ModuleTree, error) {
	t := NewModuleTree()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			t.AddModule(p)
			return nil
		}
		m := controllerFile.FindStringSubmatch(d.Name())
		if m == nil {
			return nil
		}
		module := path.Dir(p)
		if module == "." {
			module = ""
		}
		t.AddController(module, m[1])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidControllersDir, err)
	}
	return t, nil
}

// ModuleTreeFromDir scans the controllers directory at dir.
func ModuleTreeFromDir(dir string) (*ModuleTree, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Join(ErrInvalidControllersDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidControllersDir, dir)
	}
	return ModuleTreeFromFS(os.DirFS(dir))
}

// ModuleTreeFromRegistry derives the tree from registered controller keys.
func ModuleTreeFromRegistry(r *Registry) *ModuleTree {
	t := NewModuleTree()
	for _, key := range r.Keys() {
		module, name := splitControllerKey(key)
		t.AddController(module, name)
	}
	return t
}

// AddModule adds module and all of its parents.
func (t *ModuleTree) AddModule(module string) {
	t.node(module, true)
}

// AddController records controller name inside module, creating the module.
func (t *ModuleTree) AddController(module, name string) {
	t.node(module, true).controllers[name] = struct{}{}
}

// IsModule reports whether module is a module directory. The root is not.
func (t *ModuleTree) IsModule(module string) bool {
	if module == "" {
		return false
	}
	return t.node(module, false) != nil
}

// HasController reports whether module holds the controller name.
func (t *ModuleTree) HasController(module, name string) bool {
	n := t.node(module, false)
	if n == nil {
		return false
	}
	_, ok := n.controllers[name]
	return ok
}

// Modules returns every module path in lexical order, root excluded.
func (t *ModuleTree) Modules() []string {
	var out []string
	var walk func(prefix string, n *moduleNode)
	walk = func(prefix string, n *moduleNode) {
		for name, child := range n.children {
			p := joinModule(prefix, name)
			out = append(out, p)
			walk(p, child)
		}
	}
	walk("", t.root)
	slices.Sort(out)
	return out
}

// Controllers returns the controllers of module in lexical order.
func (t *ModuleTree) Controllers(module string) []string {
	n := t.node(module, false)
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.controllers))
	for name := range n.controllers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (t *ModuleTree) node(module string, create bool) *moduleNode {
	n := t.root
	for _, name := range splitRoute(module) {
		child, ok := n.children[name]
		if !ok {
			if !create {
				return nil
			}
			child = newModuleNode()
			n.children[name] = child
		}
		n = child
	}
	return n
}

func joinModule(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}
