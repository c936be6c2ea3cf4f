package lang

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the amount of header text parsed.
const maxAcceptLanguageLength = 4096

type weightedTag struct {
	tag     string
	quality float64
}

type acceptMatch struct {
	value   string
	quality float64
	exact   bool
}

func (m acceptMatch) beats(quality float64, exact bool) bool {
	if m.value == "" || quality > m.quality {
		return true
	}
	return exact && !m.exact && quality == m.quality
}

// ParseAcceptLanguage returns the available language that best matches the
// Accept-Language header. Exact tag matches beat base language matches of the
// same quality. The first available language is returned when nothing matches.
//
//	ParseAcceptLanguage("en-US,en;q=0.9,pl;q=0.8", []string{"pl", "en", "de"}) // "en"
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}

	tags := parseWeightedTags(header)

	var best acceptMatch
	for _, avail := range available {
		norm := normalizeTag(avail)
		for _, t := range tags {
			exact := t.tag == norm
			if !exact && baseLanguage(t.tag) != baseLanguage(norm) {
				continue
			}
			if best.beats(t.quality, exact) {
				best = acceptMatch{value: avail, quality: t.quality, exact: exact}
			}
			break
		}
	}

	if best.value != "" {
		return best.value
	}
	return available[0]
}

// SupportedLocales returns the "ll_CC" locales listed in the header, in
// quality order and without duplicates. Tags without a region are skipped.
func SupportedLocales(header string) []string {
	desired, _, err := language.ParseAcceptLanguage(truncateHeader(header))
	if err != nil {
		desired = lenientTags(header)
	}

	var out []string
	for _, tag := range desired {
		region, conf := tag.Region()
		if conf != language.Exact {
			continue
		}
		base, _ := tag.Base()
		loc := base.String() + "_" + region.String()
		if !slices.Contains(out, loc) {
			out = append(out, loc)
		}
	}
	return out
}

// Country returns the uppercase country code of the first locale in the
// header, or "" when the header carries no region.
func Country(header string) string {
	locales := SupportedLocales(header)
	if len(locales) == 0 {
		return ""
	}
	_, country, _ := strings.Cut(locales[0], "_")
	return country
}

// lenientTags parses each header entry on its own so one malformed entry does
// not discard the rest.
func lenientTags(header string) []language.Tag {
	var out []language.Tag
	for _, wt := range parseWeightedTags(header) {
		if tag, err := language.Parse(wt.tag); err == nil {
			out = append(out, tag)
		}
	}
	return out
}

func parseWeightedTags(header string) []weightedTag {
	header = truncateHeader(header)

	var tags []weightedTag
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		tag, params, hasParams := strings.Cut(part, ";")
		tag = strings.TrimSpace(tag)
		if hasParams {
			params = strings.TrimSpace(params)
			if raw, ok := strings.CutPrefix(params, "q="); ok {
				if q, err := strconv.ParseFloat(raw, 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if tag != "" && tag != "*" {
			tags = append(tags, weightedTag{tag: normalizeTag(tag), quality: quality})
		}
	}

	slices.SortStableFunc(tags, func(a, b weightedTag) int {
		return cmp.Compare(b.quality, a.quality)
	})
	return tags
}

func truncateHeader(header string) string {
	if len(header) > maxAcceptLanguageLength {
		return header[:maxAcceptLanguageLength]
	}
	return header
}

func normalizeTag(tag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "_", "-")
}

func baseLanguage(tag string) string {
	base, _, _ := strings.Cut(tag, "-")
	return base
}
