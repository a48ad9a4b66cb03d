// Package keywords extracts significant terms from job descriptions and matches
// them against resume text.
package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize lower-cases text and splits it into tokens. Hyphens and slashes are
// kept only inside a token, plus and hash are kept anywhere so terms like
// "c++", "c#" and "ci/cd" survive. Tokens without letters and single
// characters are discarded.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isTokenRune(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, "-/")
		if utf8.RuneCountInString(token) < 2 || !hasLetter(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func isTokenRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '-', '/', '+', '#':
		return true
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
