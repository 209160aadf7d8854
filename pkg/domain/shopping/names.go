package shopping

import (
	"unicode"
	"unicode/utf8"
)

// CapitalizeName upper-cases the first letter of name and leaves the rest
// untouched. Invalid UTF-8 at the start is returned as is.
func CapitalizeName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
