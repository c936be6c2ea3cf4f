package internal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/config"
	"github.com/dmitrymomot/waypoint/pkg/lang"
)

// RedirectMode selects where the language lives in a URL.
type RedirectMode string

const (
	// RedirectNone disables language detection and redirects.
	RedirectNone RedirectMode = ""
	// RedirectParam expects the language as the first path segment.
	RedirectParam RedirectMode = "param"
	// RedirectSubdomain expects the language as the host label next to the
	// base domain.
	RedirectSubdomain RedirectMode = "subdomain"
)

// Configuration keys read by NewPolicy.
const (
	KeyControllersDir     = "core.controllers.dir"
	KeyDefaultController  = "core.controllers.default"
	KeyDomain             = "core.domain"
	KeyScheme             = "core.scheme"
	KeyLanguage           = "app.language"
	KeyStartIndex         = "routes.start_index"
	KeyLanguageRedirect   = "routes.language_redirect"
	KeySubdomainMap       = "routes.subdomain_map"
	KeyAliases            = "routes.aliases"
	KeyRouteMap           = "routes.route_map"
	KeyThrowExceptions    = "routes.throw_exceptions"
	KeyLanguageMap        = "i18n.language_map"
	KeyLocales            = "i18n.locales"
	KeyDefaultCountry     = "i18n.default_country"
	KeyLogExceptions      = "logs.log_exceptions"
	defaultScheme         = "http"
	defaultCountry        = "US"
	defaultControllerName = "Index"
)

// Alias rewrites the lowercased positional route before it is split into
// segments. Replace uses regexp.Expand syntax ("$1", "${name}").
type Alias struct {
	Pattern *regexp.Regexp
	Replace string
}

// Apply returns the rewritten route and whether the pattern matched.
func (a Alias) Apply(route string) (string, bool) {
	if !a.Pattern.MatchString(route) {
		return route, false
	}
	return a.Pattern.ReplaceAllString(route, a.Replace), true
}

// SubdomainRoute maps a dotted host label sequence to a module path.
type SubdomainRoute struct {
	Labels string
	Module string
}

// DefaultControllers resolves the default controller of a module.
// A single name applies everywhere; otherwise the root entry is keyed by ""
// or is the first entry.
type DefaultControllers struct {
	all     string
	modules *config.OrderedMap
}

// For returns the default controller of module ("" is the root).
// Nested modules try their full path, then their last element, then the root.
func (d DefaultControllers) For(module string) string {
	if d.all != "" {
		return d.all
	}
	if d.modules.Len() == 0 {
		return defaultControllerName
	}
	if module != "" {
		if v, ok := d.modules.Get(module); ok {
			return config.ToString(v)
		}
		if i := strings.LastIndexByte(module, '/'); i >= 0 {
			if v, ok := d.modules.Get(module[i+1:]); ok {
				return config.ToString(v)
			}
		}
	}
	if v, ok := d.modules.Get(""); ok {
		return config.ToString(v)
	}
	first := d.modules.Keys()[0]
	v, _ := d.modules.Get(first)
	return config.ToString(v)
}

// Policy is the immutable routing configuration shared by the route builder,
// the dispatcher and the URL builder.
type Policy struct {
	ControllersDir  string
	Defaults        DefaultControllers
	Domain          string
	Scheme          string
	Language        string
	StartIndex      int
	Redirect        RedirectMode
	Subdomains      []SubdomainRoute
	Aliases         []Alias
	Routes          map[string]AliasTable
	Languages       lang.Map
	Locales         []string
	DefaultCountry  string
	LogExceptions   bool
	ThrowExceptions bool
}

// NewPolicy reads the routing configuration from store.
func NewPolicy(store *config.Store) (*Policy, error) {
	if store == nil {
		store = config.New(nil)
	}

	p := &Policy{
		ControllersDir:  store.String(KeyControllersDir),
		Domain:          strings.ToLower(strings.TrimSpace(store.String(KeyDomain))),
		Scheme:          store.String(KeyScheme),
		Language:        strings.ToLower(store.String(KeyLanguage)),
		StartIndex:      store.Int(KeyStartIndex),
		Redirect:        RedirectMode(strings.ToLower(store.String(KeyLanguageRedirect))),
		Locales:         store.Strings(KeyLocales),
		DefaultCountry:  strings.ToUpper(store.String(KeyDefaultCountry)),
		LogExceptions:   store.Bool(KeyLogExceptions),
		ThrowExceptions: true,
	}
	if p.Scheme == "" {
		p.Scheme = defaultScheme
	}
	if p.Language == "" {
		p.Language = lang.DefaultLanguage
	}
	if p.DefaultCountry == "" {
		p.DefaultCountry = defaultCountry
	}
	if p.StartIndex < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, KeyStartIndex)
	}
	if v, ok := store.Lookup(KeyThrowExceptions); ok {
		if b, ok := config.ToBool(v); ok {
			p.ThrowExceptions = b
		}
	}

	switch p.Redirect {
	case RedirectNone, RedirectParam:
	case RedirectSubdomain:
		if p.Domain == "" {
			return nil, fmt.Errorf("%w: %s subdomain requires %s", ErrInvalidConfig, KeyLanguageRedirect, KeyDomain)
		}
	default:
		return nil, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, KeyLanguageRedirect, p.Redirect)
	}

	switch v := store.Get(KeyDefaultController).(type) {
	case nil:
	case *config.OrderedMap:
		p.Defaults.modules = v
	default:
		p.Defaults.all = config.ToString(v)
	}

	for labels, module := range store.Map(KeySubdomainMap).All() {
		p.Subdomains = append(p.Subdomains, SubdomainRoute{
			Labels: strings.ToLower(labels),
			Module: strings.Trim(config.ToString(module), "/"),
		})
	}

	aliases, err := parseAliases(store.Get(KeyAliases))
	if err != nil {
		return nil, err
	}
	p.Aliases = aliases

	p.Routes = make(map[string]AliasTable)
	for language, table := range store.Map(KeyRouteMap).All() {
		pairs, ok := table.(*config.OrderedMap)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s must be a mapping", ErrInvalidConfig, KeyRouteMap, language)
		}
		t := make(AliasTable, 0, pairs.Len())
		for canonical, localized := range pairs.All() {
			t = append(t, AliasPair{Canonical: canonical, Localized: config.ToString(localized)})
		}
		p.Routes[strings.ToLower(language)] = t
	}

	var entries []lang.Entry
	for code, countries := range store.Map(KeyLanguageMap).All() {
		e := lang.Entry{Language: code, Countries: config.ToStrings(countries)}
		e.Global = len(e.Countries) == 0
		entries = append(entries, e)
	}
	languages, err := lang.NewMap(entries...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	p.Languages = languages

	for _, l := range p.Locales {
		if _, err := lang.ParseLocale(l); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyLocales, err)
		}
	}

	return p, nil
}

// parseAliases accepts either a list of {pattern, replace} mappings or a
// mapping of pattern to replacement. Order is preserved in both forms.
func parseAliases(v any) ([]Alias, error) {
	var out []Alias
	add := func(pattern, replace string) error {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("%w: alias %q: %w", ErrInvalidConfig, pattern, err)
		}
		out = append(out, Alias{Pattern: re, Replace: replace})
		return nil
	}

	switch t := v.(type) {
	case nil:
	case *config.OrderedMap:
		for pattern, replace := range t.All() {
			if err := add(pattern, config.ToString(replace)); err != nil {
				return nil, err
			}
		}
	case []any:
		for i, item := range t {
			m, ok := item.(*config.OrderedMap)
			if !ok {
				return nil, fmt.Errorf("%w: alias #%d must be a mapping", ErrInvalidConfig, i)
			}
			pattern, _ := m.Get("pattern")
			replace, _ := m.Get("replace")
			if err := add(config.ToString(pattern), config.ToString(replace)); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s must be a list or a mapping", ErrInvalidConfig, KeyAliases)
	}
	return out, nil
}

// Module returns the module path mapped to the given host labels.
func (p *Policy) Module(labels []string) (string, bool) {
	key := strings.Join(labels, ".")
	for _, s := range p.Subdomains {
		if s.Labels == key {
			return s.Module, true
		}
	}
	return "", false
}

// SubdomainFor returns the host labels mapped to module, the inverse of Module.
func (p *Policy) SubdomainFor(module string) (string, bool) {
	module = strings.Trim(module, "/")
	for _, s := range p.Subdomains {
		if s.Module == module {
			return s.Labels, true
		}
	}
	return "", false
}

// detectLabels reports whether the route builder needs host labels.
func (p *Policy) detectLabels() bool {
	return len(p.Subdomains) > 0 || p.Redirect != RedirectNone
}
