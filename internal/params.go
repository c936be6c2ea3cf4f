package internal

import (
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/config"
)

// Params holds the segments of a request path.
// Positional segments keep their order; named segments ("key:value") are
// removed from the positional list and kept in first-seen key order.
type Params struct {
	Positional []string
	Named      *config.OrderedMap
}

// ParseParams splits a raw request path into positional and named segments.
// Anything after the first "?" is ignored and empty segments are dropped.
// A segment is named only when its first ":" is past index 0, so ":x" stays
// positional. The value is the text between the first and second ":".
func ParseParams(raw string) Params {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}

	p := Params{Named: config.NewOrderedMap()}
	for seg := range strings.SplitSeq(raw, "/") {
		if seg == "" {
			continue
		}
		if i := strings.IndexByte(seg, ':'); i > 0 {
			value := seg[i+1:]
			if j := strings.IndexByte(value, ':'); j >= 0 {
				value = value[:j]
			}
			p.Named.Set(seg[:i], value)
			continue
		}
		p.Positional = append(p.Positional, seg)
	}
	return p
}

// Get returns the positional segment at index, or "" when out of range.
func (p Params) Get(index int) string {
	if index < 0 || index >= len(p.Positional) {
		return ""
	}
	return p.Positional[index]
}

// Value returns a named segment.
func (p Params) Value(key string) (string, bool) {
	v, ok := p.Named.Get(key)
	if !ok {
		return "", false
	}
	return config.ToString(v), true
}

// Route returns the lowercased positional segments joined by "/".
func (p Params) Route() string {
	return strings.ToLower(strings.Join(p.Positional, "/"))
}

// All returns positional segments followed by named ones as "key:value".
func (p Params) All() []string {
	out := make([]string, 0, len(p.Positional)+p.Named.Len())
	out = append(out, p.Positional...)
	for k, v := range p.Named.All() {
		out = append(out, k+":"+config.ToString(v))
	}
	return out
}

// String rebuilds the path, always starting with "/".
func (p Params) String() string {
	return "/" + strings.Join(p.All(), "/")
}
