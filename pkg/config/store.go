package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store is a read-only configuration tree.
// It is immutable after creation and safe for concurrent use.
type Store struct {
	root      *OrderedMap
	defaults  map[string]any
	lookupEnv func(string) (string, bool)
	envPrefix string
}

// Option configures a Store during construction.
type Option func(*Store)

// WithEnvPrefix enables environment overrides for scalar lookups.
// The key "routes.start_index" maps to PREFIX_ROUTES_START_INDEX.
func WithEnvPrefix(prefix string) Option {
	return func(s *Store) {
		s.envPrefix = strings.TrimSuffix(strings.ToUpper(prefix), "_")
	}
}

// WithLookupEnv replaces os.LookupEnv as the environment source.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *Store) {
		if fn != nil {
			s.lookupEnv = fn
		}
	}
}

// WithDefaults registers values returned when a key is absent from the document.
// Keys are full dotted paths.
func WithDefaults(defaults map[string]any) Option {
	return func(s *Store) {
		for k, v := range defaults {
			s.defaults[k] = v
		}
	}
}

// New creates a Store from an already built tree.
// A nil root produces an empty store.
func New(root *OrderedMap, opts ...Option) *Store {
	if root == nil {
		root = NewOrderedMap()
	}
	s := &Store{
		root:      root,
		defaults:  make(map[string]any),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse decodes a YAML document into a Store.
func Parse(data []byte, opts ...Option) (*Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(nil, opts...), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	v, err := convertNode(&doc)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*OrderedMap)
	if !ok {
		if v == nil {
			return New(nil, opts...), nil
		}
		return nil, ErrNotMapping
	}
	return New(root, opts...), nil
}

// Load reads a YAML document from r.
func Load(r io.Reader, opts ...Option) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: reading document: %w", err)
	}
	return Parse(data, opts...)
}

// LoadFile reads a YAML document from the filesystem.
func LoadFile(path string, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	return Parse(data, opts...)
}

// LoadFS reads a YAML document from an fs.FS.
func LoadFS(fsys fs.FS, name string, opts ...Option) (*Store, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", name, err)
	}
	return Parse(data, opts...)
}

// Get returns the value stored under a dotted key, or nil.
func (s *Store) Get(key string) any {
	v, _ := s.Lookup(key)
	return v
}

// Lookup returns the value stored under a dotted key and whether it was found.
// Environment overrides take precedence, then the document, then defaults.
func (s *Store) Lookup(key string) (any, bool) {
	if v, ok := s.fromEnv(key); ok {
		return v, true
	}
	if v, ok := lookupPath(s.root, strings.Split(key, ".")); ok {
		return v, true
	}
	v, ok := s.defaults[key]
	return v, ok
}

// Has reports whether key resolves to a value.
func (s *Store) Has(key string) bool {
	_, ok := s.Lookup(key)
	return ok
}

// String returns the value under key formatted as a string.
// Nil and missing values produce "".
func (s *Store) String(key string) string {
	return ToString(s.Get(key))
}

// Int returns the value under key as an int, or 0.
func (s *Store) Int(key string) int {
	n, _ := ToInt(s.Get(key))
	return n
}

// Bool returns the value under key as a bool, or false.
func (s *Store) Bool(key string) bool {
	b, _ := ToBool(s.Get(key))
	return b
}

// Strings returns the value under key as a string slice.
// A scalar value becomes a single element slice.
func (s *Store) Strings(key string) []string {
	return ToStrings(s.Get(key))
}

// Map returns the mapping under key, or nil.
func (s *Store) Map(key string) *OrderedMap {
	m, _ := s.Get(key).(*OrderedMap)
	return m
}

// Root returns the top level mapping.
func (s *Store) Root() *OrderedMap {
	return s.root
}

func (s *Store) fromEnv(key string) (any, bool) {
	if s.envPrefix == "" {
		return nil, false
	}
	name := s.envPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	raw, ok := s.lookupEnv(name)
	if !ok {
		return nil, false
	}
	return raw, true
}

// lookupPath walks the tree matching the longest dotted key at each level.
func lookupPath(m *OrderedMap, parts []string) (any, bool) {
	for i := len(parts); i > 0; i-- {
		v, ok := m.Get(strings.Join(parts[:i], "."))
		if !ok {
			continue
		}
		if i == len(parts) {
			return v, true
		}
		child, isMap := v.(*OrderedMap)
		if !isMap {
			continue
		}
		if found, ok := lookupPath(child, parts[i:]); ok {
			return found, true
		}
	}
	return nil, false
}

func convertNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertNode(n.Content[0])
	case yaml.AliasNode:
		return convertNode(n.Alias)
	case yaml.MappingNode:
		m := NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, errors.Join(ErrInvalidConfig, err)
			}
			v, err := convertNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := convertNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Join(ErrInvalidConfig, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: unsupported node kind %d", ErrInvalidConfig, n.Kind)
}

// ToString formats a scalar config value.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// ToInt converts a scalar config value to an int.
func ToInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}

// ToBool converts a scalar config value to a bool.
func ToBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case int:
		return t != 0, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	}
	return false, false
}

// ToStrings converts a sequence or scalar config value to a string slice.
func ToStrings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, ToString(item))
		}
		return out
	case *OrderedMap:
		out := make([]string, 0, t.Len())
		for _, item := range t.All() {
			out = append(out, ToString(item))
		}
		return out
	default:
		return []string{ToString(t)}
	}
}
