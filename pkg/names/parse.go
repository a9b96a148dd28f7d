package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parsed is a candidate name split into given and family parts.
type Parsed struct {
	Full   string
	Given  string
	Family string
}

// Key is the first-initial/family-name grouping key of a parsed name.
type Key struct {
	Initial rune
	Family  string
}

// Parse splits a name on its first run of whitespace. The second return value
// is false when the name has no separable given/family parts; such names need
// manual review.
func Parse(name string) (Parsed, bool) {
	full := strings.TrimSpace(name)
	i := strings.IndexFunc(full, unicode.IsSpace)
	if i <= 0 {
		return Parsed{Full: full}, false
	}

	family := strings.TrimSpace(full[i:])
	if family == "" {
		return Parsed{Full: full}, false
	}

	return Parsed{Full: full, Given: full[:i], Family: family}, true
}

// Key returns the case-insensitive grouping key of the name.
func (p Parsed) Key() Key {
	initial, _ := utf8.DecodeRuneInString(strings.ToLower(p.Given))
	return Key{Initial: initial, Family: strings.ToLower(p.Family)}
}

// FirstLast returns the given name and the family name, with the family name
// empty when the name could not be parsed.
func FirstLast(name string) (first, last string) {
	p, ok := Parse(name)
	if !ok {
		return p.Full, ""
	}
	return p.Given, p.Family
}
