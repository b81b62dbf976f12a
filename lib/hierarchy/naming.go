package hierarchy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldName reduces a place name to a key that ignores case, accents and spacing, so
// "Vila Nova de Famalicão" and "vila nova de famalicao" match.
func FoldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	result, _, err := transform.String(t, name)
	if err != nil {
		result = name
	}

	return strings.ToLower(strings.Join(strings.Fields(result), " "))
}
