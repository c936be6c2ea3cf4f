package lang

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultLanguage is used when neither the map nor the caller supplies one.
const DefaultLanguage = "en"

// Entry binds a language code to the countries that use it.
// A Global entry matches any country not claimed by another entry.
type Entry struct {
	Language  string
	Countries []string
	Global    bool
}

// Map is an ordered, immutable language table.
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap builds a Map from entries in priority order.
// Language codes are lowercased and country codes uppercased.
func NewMap(entries ...Entry) (Map, error) {
	m := Map{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		code := strings.ToLower(strings.TrimSpace(e.Language))
		if code == "" {
			return Map{}, ErrEmptyLanguage
		}
		if _, ok := m.index[code]; ok {
			return Map{}, fmt.Errorf("%w: %q", ErrDuplicateEntry, code)
		}
		countries := make([]string, 0, len(e.Countries))
		for _, c := range e.Countries {
			countries = append(countries, strings.ToUpper(strings.TrimSpace(c)))
		}
		m.index[code] = len(m.entries)
		m.entries = append(m.entries, Entry{
			Language:  code,
			Countries: countries,
			Global:    e.Global,
		})
	}
	return m, nil
}

// Len returns the number of languages.
func (m Map) Len() int {
	return len(m.entries)
}

// Has reports whether code is a configured language. Matching is case-sensitive
// on the lowercase form, the same way route segments are compared.
func (m Map) Has(code string) bool {
	_, ok := m.index[code]
	return ok
}

// Languages returns the language codes in configured order.
func (m Map) Languages() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Language)
	}
	return out
}

// Entries returns a copy of the configured entries.
func (m Map) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		e.Countries = slices.Clone(e.Countries)
		out[i] = e
	}
	return out
}

// ByCountry returns the language spoken in country.
// The first entry listing the country wins. Otherwise the first global entry
// is used, then fallback, then DefaultLanguage.
func (m Map) ByCountry(country, fallback string) string {
	country = strings.ToUpper(strings.TrimSpace(country))

	global := ""
	for _, e := range m.entries {
		if e.Global {
			if global == "" {
				global = e.Language
			}
			continue
		}
		if country != "" && slices.Contains(e.Countries, country) {
			return e.Language
		}
	}

	switch {
	case global != "":
		return global
	case fallback != "":
		return fallback
	default:
		return DefaultLanguage
	}
}
