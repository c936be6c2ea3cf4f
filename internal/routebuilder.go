package internal

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/hostrouter"
	"github.com/dmitrymomot/waypoint/pkg/lang"
)

// Built is the outcome of BuildRoute.
type Built struct {
	// Params holds the parsed request path.
	Params Params
	// Segments is the route with any subdomain module prefix applied.
	Segments []string
	// Prefix is the leading part of Segments taken from a subdomain_map
	// entry. It is never translated.
	Prefix []string
	// Language is set only when a language redirect mode is configured.
	Language string
	// Redirect is a location the client must be sent to instead of
	// dispatching. Empty when dispatch should proceed.
	Redirect string
}

// BuildRoute turns a request into route segments according to policy:
// subdomain modules, aliases, start index and the language prefix.
func BuildRoute(in Input, p *Policy) Built {
	params := ParseParams(in.Path)
	b := Built{Params: params}

	var prefix []string
	var candidate string
	if p.detectLabels() {
		labels := hostrouter.SubdomainLabels(in.Host, p.Domain)
		if p.Redirect == RedirectSubdomain && len(labels) > 0 {
			candidate = labels[len(labels)-1]
			labels = labels[:len(labels)-1]
		}
		if module, ok := p.Module(labels); ok {
			prefix = splitRoute(module)
		}
	}

	segments := slices.Clone(params.Positional)
	if len(p.Aliases) > 0 {
		route := params.Route()
		for _, a := range p.Aliases {
			if out, ok := a.Apply(route); ok {
				route = out
				break
			}
		}
		segments = splitRoute(strings.TrimLeft(route, `/\`))
	}

	if p.StartIndex > 0 {
		segments = segments[min(p.StartIndex, len(segments)):]
	}

	if p.Redirect == RedirectParam && len(segments) > 0 {
		candidate = segments[0]
		segments = segments[1:]
	}

	if p.Redirect != RedirectNone {
		b.Language = candidate
		if !p.Languages.Has(candidate) {
			b.Language = p.Languages.ByCountry(clientCountry(in, p), p.Language)
			if p.Redirect == RedirectParam && len(params.Positional) > 0 {
				b.Redirect = "/" + b.Language
				return b
			}
		}
	}

	b.Prefix = prefix
	b.Segments = append(slices.Clone(prefix), segments...)
	return b
}

func clientCountry(in Input, p *Policy) string {
	if in.Country != "" {
		return in.Country
	}
	if c := lang.Country(in.AcceptLanguage); c != "" {
		return c
	}
	return p.DefaultCountry
}

// Path returns Segments without the subdomain prefix.
func (b Built) Path() []string {
	return b.Segments[len(b.Prefix):]
}
