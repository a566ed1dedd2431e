package format

import (
	"strings"

	"golang.org/x/net/html"
)

// escapeTable maps each raw character to its escaped form. The replacer
// applies it in a single pass, so "&" is never escaped twice.
var escapeTable = [][2]string{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&#x27;"},
	{"{", "&#123;"},
	{"}", "&#125;"},
}

var (
	escaper        = newReplacer(escapeTable, false)
	braceUnescaper = newReplacer(escapeTable[5:], true)
)

func newReplacer(table [][2]string, inverse bool) *strings.Replacer {
	pairs := make([]string, 0, 2*len(table))
	for _, e := range table {
		if inverse {
			pairs = append(pairs, e[1], e[0])
		} else {
			pairs = append(pairs, e[0], e[1])
		}
	}
	return strings.NewReplacer(pairs...)
}

// Escape HTML-escapes s and additionally replaces curly braces with numeric
// character references.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape: braces first, then HTML character references.
func Unescape(s string) string {
	return html.UnescapeString(braceUnescaper.Replace(s))
}
