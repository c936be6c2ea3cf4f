package hostrouter

import (
	"net/http"
	"strings"
)

// Routes maps host patterns to handlers.
// Exact: "api.example.com". Wildcard: "*.example.com".
type Routes map[string]http.Handler

// Router dispatches requests on the Host header.
type Router struct {
	exact    map[string]http.Handler
	wildcard map[string]http.Handler
	fallback http.Handler
}

// New creates a host router. Requests matching no pattern go to fallback,
// or receive 404 when fallback is nil.
func New(routes Routes, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}
	r := &Router{
		exact:    make(map[string]http.Handler),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}
	for pattern, h := range routes {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "" || h == nil:
			continue
		case strings.HasPrefix(pattern, "*."):
			r.wildcard[pattern[2:]] = h
		default:
			r.exact[pattern] = h
		}
	}
	return r
}

// Match returns the handler serving host. Exact patterns win over
// wildcards, and the closest wildcard wins over broader ones.
func (r *Router) Match(host string) http.Handler {
	host = NormalizeHost(host)
	if h, ok := r.exact[host]; ok {
		return h
	}
	for rest := host; ; {
		_, parent, ok := strings.Cut(rest, ".")
		if !ok {
			break
		}
		if h, ok := r.wildcard[parent]; ok {
			return h
		}
		rest = parent
	}
	return r.fallback
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Match(req.Host).ServeHTTP(w, req)
}
