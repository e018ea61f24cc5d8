package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lower-cases text for comparison. Surrounding whitespace is kept,
// so " go" and "go" are different values.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser holds state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(text)
}

func joinNormalized(parts ...string) string {
	return Normalize(strings.Join(parts, " "))
}
