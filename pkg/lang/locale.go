package lang

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var localePattern = regexp.MustCompile(`^([a-z]{2})(?:[_-]([A-Z]{2}))?$`)

// Locale is a lowercase language code with an optional uppercase country code.
type Locale struct {
	Language string
	Country  string
}

// ParseLocale parses "es", "es_AR" or "en-US".
func ParseLocale(s string) (Locale, error) {
	m := localePattern.FindStringSubmatch(s)
	if m == nil {
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidLocale, s)
	}
	return Locale{Language: m[1], Country: m[2]}, nil
}

// String formats the locale with an underscore separator.
func (l Locale) String() string {
	if l.Country == "" {
		return l.Language
	}
	return l.Language + "_" + l.Country
}

// Tag converts the locale to a BCP 47 tag.
func (l Locale) Tag() language.Tag {
	if l.Country == "" {
		return language.Make(l.Language)
	}
	return language.Make(l.Language + "-" + l.Country)
}

// Info describes the locale selected for a client.
type Info struct {
	Language string
	Country  string
	// Locale is one of the supported locales.
	Locale string
	// Native is language_country as detected, supported or not.
	Native string
}

// ResolveLocale picks the supported locale closest to language and country.
// An exact match wins, then the first supported locale sharing the language,
// then the first supported locale.
func ResolveLocale(lang, country string, supported []string) (Info, error) {
	if len(supported) == 0 {
		return Info{}, ErrNoValidLocales
	}

	info := Info{
		Language: lang,
		Country:  country,
		Native:   lang + "_" + country,
	}

	for _, l := range supported {
		if l == info.Native {
			info.Locale = l
			return info, nil
		}
	}
	for _, l := range supported {
		prefix, _, _ := strings.Cut(l, "_")
		if prefix == lang {
			info.Locale = l
			return info, nil
		}
	}
	info.Locale = supported[0]
	return info, nil
}

// MatchLocale returns the supported locale that best serves an
// Accept-Language header, or the first supported locale when nothing matches.
func MatchLocale(header string, supported []string) string {
	if len(supported) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		loc, err := ParseLocale(s)
		if err != nil {
			tags = append(tags, language.Und)
			continue
		}
		tags = append(tags, loc.Tag())
	}

	desired, _, err := language.ParseAcceptLanguage(truncateHeader(header))
	if err != nil || len(desired) == 0 {
		return supported[0]
	}

	_, idx, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}
