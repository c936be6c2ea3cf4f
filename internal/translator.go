package internal

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/cache"
)

// Direction selects which side of an alias pair is matched.
type Direction int

const (
	// Inbound maps a localized route to its canonical form.
	Inbound Direction = iota
	// Outbound maps a canonical route to its localized form.
	Outbound
)

func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

// AliasPair links a canonical route prefix to its localized form.
type AliasPair struct {
	Canonical string
	Localized string
}

// AliasTable is the ordered list of alias pairs of one language.
type AliasTable []AliasPair

// DefaultTranslationCacheSize bounds the translation memo.
const DefaultTranslationCacheSize = 1024

// Translator converts routes between their canonical and localized forms.
// It is safe for concurrent use.
type Translator struct {
	tables   map[string]AliasTable
	fallback string
	memo     *cache.Memory[string]
}

// NewTranslator creates a Translator over per-language alias tables.
// fallback is the language used when Translate receives none.
// A cacheSize of zero or less disables memoisation.
func NewTranslator(tables map[string]AliasTable, fallback string, cacheSize int) *Translator {
	t := &Translator{tables: tables, fallback: fallback}
	if cacheSize > 0 {
		t.memo = cache.NewMemory[string](cache.WithMaxEntries(cacheSize))
	}
	return t
}

type scoredPair struct {
	from, to string
	score    int
}

// Translate rewrites route using the alias table of language.
// Pairs whose matched side is a case-insensitive prefix of the route are
// ranked by similarity; every occurrence of the winning side is replaced by
// its counterpart in the lowercased route. Without a matching pair the route
// is returned unchanged.
func (t *Translator) Translate(route string, dir Direction, language string) string {
	if language == "" {
		language = t.fallback
	}
	table := t.tables[language]
	if len(table) == 0 || route == "" {
		return route
	}
	if t.memo == nil {
		return translate(table, route, dir)
	}

	key := language + "\x00" + dir.String() + "\x00" + route
	out, err := cache.GetOrSet(context.Background(), t.memo, key, func(context.Context) (string, time.Duration, error) {
		return translate(table, route, dir), 0, nil
	})
	if err != nil {
		return translate(table, route, dir)
	}
	return out
}

// TranslateSegments translates a segment list as one "/"-joined route.
func (t *Translator) TranslateSegments(segments []string, dir Direction, language string) []string {
	if len(segments) == 0 {
		return segments
	}
	return splitRoute(t.Translate(strings.Join(segments, "/"), dir, language))
}

// Languages returns the languages that have an alias table.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.tables))
	for l := range t.tables {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

func translate(table AliasTable, route string, dir Direction) string {
	lower := strings.ToLower(route)

	var candidates []scoredPair
	for _, p := range table {
		from, to := p.Localized, p.Canonical
		if dir == Outbound {
			from, to = p.Canonical, p.Localized
		}
		from = strings.ToLower(from)
		if from == "" || to == "" || !strings.HasPrefix(lower, from) {
			continue
		}
		candidates = append(candidates, scoredPair{from: from, to: to, score: similarity(lower, from)})
	}
	if len(candidates) == 0 {
		return route
	}

	slices.SortStableFunc(candidates, func(a, b scoredPair) int {
		return cmp.Compare(b.score, a.score)
	})
	best := candidates[0]
	return strings.ReplaceAll(lower, best.from, best.to)
}

// splitRoute splits a route on "/" dropping empty segments.
func splitRoute(route string) []string {
	var out []string
	for seg := range strings.SplitSeq(route, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
