package grading

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

var glyphReplacer = strings.NewReplacer(
	"∕", "/", // division slash
	"÷", "/",
	"×", "*",
	"·", "*",
	"−", "-", // minus sign
	"–", "-",
	"—", "-",
)

// Normalize canonicalizes a typed answer before parsing. Whitespace and
// thousands separators are dropped; operator glyphs map to ASCII.
func Normalize(raw string) string {
	s := width.Fold.String(raw)
	s = cases.Lower(language.Und).String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, s)
	return glyphReplacer.Replace(s)
}
