package internal

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/config"
)

// BuildInput describes a URL to build.
type BuildInput struct {
	// Language defaults to app.language.
	Language string
	// Module is a module path such as "admin" or "admin/reports".
	Module string
	// Controller and Action are dash-cased: "userPanel" becomes "user-panel".
	Controller string
	Action     string
	// Params are appended as path segments. Integer keys produce "/value",
	// other keys "/key:value".
	Params *config.OrderedMap
	// Query is a query string, url.Values, *config.OrderedMap or a
	// string-keyed map.
	Query any
}

// URLs builds localized URLs. It is the inverse of the dispatcher.
type URLs struct {
	policy     *Policy
	translator *Translator
}

// NewURLs creates a URL builder over policy.
func NewURLs(p *Policy, t *Translator) *URLs {
	return &URLs{policy: p, translator: t}
}

// Build returns the URL reaching the given module, controller and action.
// Modules bound to a subdomain become host labels; others become leading
// path segments. The route is translated to the language and the language
// is placed according to the redirect mode. Without a configured domain the
// URL is host relative.
//
//	u.Build(waypoint.BuildInput{Language: "es", Controller: "users", Action: "showAll"})
//	// http://example.com/es/usuarios/mostrar-todos
func (u *URLs) Build(in BuildInput) string {
	language := in.Language
	if language == "" {
		language = u.policy.Language
	}

	var labels, parts []string
	if in.Module != "" {
		if sub, ok := u.policy.SubdomainFor(in.Module); ok {
			labels = append(labels, sub)
		} else {
			parts = append(parts, splitRoute(in.Module)...)
		}
	}
	if in.Controller != "" {
		parts = append(parts, dashName(in.Controller))
	}
	if in.Action != "" {
		parts = append(parts, dashName(in.Action))
	}

	route := u.translator.Translate(strings.Join(parts, "/"), Outbound, language)
	switch u.policy.Redirect {
	case RedirectSubdomain:
		labels = append(labels, language)
	case RedirectParam:
		route = joinModule(language, route)
	}

	out := strings.TrimRight("/"+route, "/") + FromParams(in.Params, in.Query)
	if u.policy.Domain != "" {
		out = u.base(labels) + out
	}
	if out == "" {
		return "/"
	}
	return out
}

// Translate localizes a host relative route such as "/users/list".
// Anything not starting with "/" is returned untouched.
func (u *URLs) Translate(route, language string) string {
	if !strings.HasPrefix(route, "/") {
		return route
	}
	if language == "" {
		language = u.policy.Language
	}

	route = u.translator.Translate(strings.TrimLeft(route, "/"), Outbound, language)
	switch u.policy.Redirect {
	case RedirectParam:
		return "/" + joinModule(language, route)
	case RedirectSubdomain:
		return u.base([]string{language}) + strings.TrimRight("/"+route, "/")
	}
	return "/" + route
}

// FromParts joins a scheme, domain, path and query.
func (u *URLs) FromParts(scheme, domain, path string, query any) string {
	if scheme == "" {
		scheme = u.policy.Scheme
	}
	if domain == "" {
		domain = u.policy.Domain
	}
	out := scheme + "://" + domain
	if path = strings.Trim(path, "/"); path != "" {
		out += "/" + path
	}
	return out + FromParams(nil, query)
}

// FromSubdomain builds a URL on the given host labels of the base domain.
func (u *URLs) FromSubdomain(labels []string, params *config.OrderedMap, query any) string {
	return u.base(labels) + FromParams(params, query)
}

// WithQuery returns current with params set in its query. With merge the
// existing query is kept and params override it; otherwise it is replaced.
func (u *URLs) WithQuery(current *url.URL, params map[string]string, merge bool) string {
	q := url.Values{}
	if merge {
		q = current.Query()
	}
	for k, v := range params {
		q.Set(k, v)
	}
	out := current.EscapedPath()
	if out == "" {
		out = "/"
	}
	if encoded := q.Encode(); encoded != "" {
		out += "?" + encoded
	}
	return out
}

func (u *URLs) base(labels []string) string {
	host := u.policy.Domain
	if len(labels) > 0 {
		host = strings.Join(labels, ".") + "." + host
	}
	return u.policy.Scheme + "://" + host
}

// FromParams renders params as path segments followed by the query.
//
//	FromParams(config.OrderedMapOf("0", "5", "sort", "name"), "page=2")
//	// "/5/sort:name/?page=2"
func FromParams(params *config.OrderedMap, query any) string {
	var b strings.Builder
	for k, v := range params.All() {
		b.WriteByte('/')
		if _, err := strconv.Atoi(k); err == nil {
			b.WriteString(url.PathEscape(config.ToString(v)))
			continue
		}
		b.WriteString(url.PathEscape(k))
		b.WriteByte(':')
		b.WriteString(url.PathEscape(config.ToString(v)))
	}
	if qs := QueryString(query); qs != "" {
		b.WriteString("/?")
		b.WriteString(qs)
	}
	return b.String()
}

// QueryString encodes query. Go maps are encoded in sorted key order,
// ordered maps in their own order.
func QueryString(query any) string {
	switch q := query.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimPrefix(q, "?")
	case url.Values:
		return q.Encode()
	case map[string]string:
		return encodePairs(slices.Sorted(maps.Keys(q)), func(k string) string { return q[k] })
	case map[string]any:
		return encodePairs(slices.Sorted(maps.Keys(q)), func(k string) string { return config.ToString(q[k]) })
	case *config.OrderedMap:
		return encodePairs(q.Keys(), func(k string) string {
			v, _ := q.Get(k)
			return config.ToString(v)
		})
	default:
		return url.QueryEscape(fmt.Sprint(q))
	}
}

func encodePairs(keys []string, value func(string) string) string {
	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value(k)))
	}
	return b.String()
}
