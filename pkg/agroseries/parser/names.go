package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName turns a sheet or label into a file-name stem: surrounding
// whitespace trimmed, NFC composed, lowercased, spaces as underscores.
// "Área colhida" becomes "área_colhida".
func NormalizeName(name string) string {
	s := norm.NFC.String(strings.TrimSpace(name))
	s = cases.Lower(language.Und).String(s)
	return strings.ReplaceAll(s, " ", "_")
}
