package openlibrary

import "strings"

// FormatQuery normalizes a free-text title into a URL-safe search
// fragment: trimmed, lowercased, with each run of separators between
// words collapsed to a single "+".
//
// An empty result means "no usable query", both for empty input and for
// input containing no words.
func FormatQuery(title string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(title)))
	return strings.Join(words, "+")
}
