package internal

import (
	"regexp"
	"strings"
)

var (
	caseBoundary  = regexp.MustCompile(`([a-z])([A-Z])`)
	numericString = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)
)

// ControllerName turns a URL segment into a controller name: "user-panel"
// and "user_panel" become "UserPanel".
func ControllerName(segment string) string {
	return formatName(segment, true)
}

// ActionName turns a URL segment into an action name: "show-all" becomes
// "showAll".
func ActionName(segment string) string {
	return formatName(segment, false)
}

// formatName lowercases name and joins the parts separated by a single "-"
// or "_" that sits between two letters or digits, capitalising each part.
func formatName(name string, upperFirst bool) string {
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	upper := upperFirst
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if (ch == '-' || ch == '_') && i > 0 && i+1 < len(name) && isAlnum(name[i-1]) && isAlnum(name[i+1]) {
			upper = true
			continue
		}
		if upper {
			ch = toUpperASCII(ch)
			upper = false
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// dashName converts camelCase boundaries to dashes and lowercases:
// "userPanel" becomes "user-panel".
func dashName(name string) string {
	return strings.ToLower(caseBoundary.ReplaceAllString(name, "$1-$2"))
}

// isNumeric reports whether s is a decimal or exponent number literal,
// optionally surrounded by whitespace.
func isNumeric(s string) bool {
	return numericString.MatchString(s)
}

func isAlnum(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

func toUpperASCII(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - ('a' - 'A')
	}
	return ch
}
