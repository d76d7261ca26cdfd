package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes to NFD, drops combining marks, then recomposes,
// so "Ąžuolas" and "Azuolas" fold to the same bytes.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the canonical comparison form of a human name:
// diacritics stripped, uppercased, everything but letters and spaces removed,
// whitespace collapsed. Idempotent and total; empty input yields "".
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToUpper(folded)

	var builder strings.Builder
	builder.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case r >= 'A' && r <= 'Z':
			builder.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				builder.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(builder.String(), " ")
}

// ExtractLast returns the final token of the normalized form of name,
// or "" when nothing survives normalization.
func ExtractLast(name string) string {
	normalized := Normalize(name)
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, " ")
	return parts[len(parts)-1]
}
