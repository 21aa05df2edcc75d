// Package category canonicalizes the free-text category labels attached to
// outflows and inflows.
//
// Categories form an open, user-extensible set. Labels are title-cased as a
// single word (first letter upper, rest lower) and a few known singular terms
// are mapped to their plural canonical form, so "FATTURA", " fattura " and
// "Fatture" all end up as "Fatture".
package category

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Other is assigned to movements without a category.
	Other = "Altro"
	// Taxes is the default category for tax and contribution payments.
	Taxes = "Tasse"
	// OpeningBalance is the pseudo-category of the opening balance transfer.
	OpeningBalance = "Saldo Iniziale"
)

// synonyms maps title-cased labels to their canonical form. Every value must be
// a fixed point of Normalize.
var synonyms = map[string]string{
	"Fattura":        "Fatture",
	"Rimborso":       "Rimborsi",
	"Stipendio":      "Stipendi",
	"Interesse":      "Interessi",
	"Saldo iniziale": OpeningBalance,
}

// Normalize returns the canonical label for raw. It is pure and idempotent.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Other
	}

	titled := titleCase(trimmed)
	if canonical, ok := synonyms[titled]; ok {
		return canonical
	}
	return titled
}

// Equal reports whether two raw labels normalize to the same category.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// titleCase maps the first rune to its title case and lower-cases the
// remainder. The head mapping is rune-to-rune: full upper-casing can expand a
// rune ("ß" to "SS") and the result would change on a second pass.
// Casers are stateful, so each call builds its own.
func titleCase(s string) string {
	lower := cases.Lower(language.Italian)

	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(first)) + lower.String(s[size:])
}
