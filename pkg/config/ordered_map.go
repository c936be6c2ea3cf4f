package config

import (
	"fmt"
	"iter"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Setting an existing key replaces its value but keeps its position.
type OrderedMap struct {
	values map[string]any
	keys   []string
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// OrderedMapOf builds an OrderedMap from alternating key/value arguments.
// It panics on an odd argument count or a non-string key.
//
//	m := config.OrderedMapOf("en", nil, "es", []any{"ES", "AR"})
func OrderedMapOf(kv ...any) *OrderedMap {
	if len(kv)%2 != 0 {
		panic("config: OrderedMapOf requires key/value pairs")
	}
	m := NewOrderedMap()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("config: OrderedMapOf key %v is not a string", kv[i]))
		}
		m.Set(key, kv[i+1])
	}
	return m
}

// Set stores value under key.
func (m *OrderedMap) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates entries in insertion order.
func (m *OrderedMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// KeyOf returns the first key whose value is the string s.
func (m *OrderedMap) KeyOf(s string) (string, bool) {
	for k, v := range m.All() {
		if str, ok := v.(string); ok && str == s {
			return k, true
		}
	}
	return "", false
}
