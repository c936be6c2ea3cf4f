// Package lang maps countries to languages, parses locales and reads the
// Accept-Language header.
//
// A Map is an ordered list of languages, each bound to the countries that speak
// it. A language with no country list is global: it is picked for countries
// no other entry claims. Order matters, the first matching entry wins.
//
//	m, _ := lang.NewMap(
//		lang.Entry{Language: "es", Countries: []string{"ES", "AR"}},
//		lang.Entry{Language: "pt", Countries: []string{"BR", "PT"}},
//		lang.Entry{Language: "en", Global: true},
//	)
//
//	m.ByCountry("AR", "en") // "es"
//	m.ByCountry("FR", "de") // "en", the global language
//
// Locales follow the "ll" or "ll_CC" form (a dash separator is accepted):
//
//	loc, err := lang.ParseLocale("es_AR") // {Language: "es", Country: "AR"}
//
// ResolveLocale picks the most suitable entry from a list of supported locales
// for a language and country pair.
//
// Accept-Language parsing is delegated to golang.org/x/text/language:
//
//	best := lang.ParseAcceptLanguage("es-ES,es;q=0.9,en;q=0.8", []string{"en", "es"})
//	country := lang.Country("es-AR,es;q=0.9") // "AR"
package lang
