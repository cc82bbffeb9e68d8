// Package postcode validates UK postcodes against a single grammar.
package postcode

import (
	"regexp"
	"strings"
)

// Grammar is the UK postcode format, including British Forces (BFPO),
// overseas territories and the GIR 0AA / SAN TA1 specials. It is matched
// against the whole string after ASCII letters are upper-cased.
const Grammar = `^(([A-Z][A-HJ-Y]?\d[A-Z\d]?|ASCN|STHL|TDCU|BBND|[BFS]IQQ|PCRN|TKCA) ?\d[A-Z]{2}|BFPO ?\d{1,4}|(KY\d|MSR|VG|AI)[ -]?\d{4}|[A-Z]{2} ?\d{2}|GE ?CX|GIR ?0A{2}|SAN ?TA1)$`

var pattern = regexp.MustCompile(Grammar)

// Valid reports whether code matches Grammar. Surrounding whitespace is not
// trimmed; " SW1A 1AA" is invalid.
func Valid(code string) bool {
	return pattern.MatchString(Normalize(code))
}

// Normalize upper-cases the ASCII letters of a postcode. Other characters,
// look-alikes such as U+212A KELVIN SIGN included, are left untouched so
// they never match the grammar. It does not fix spacing.
func Normalize(code string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}, code)
}
