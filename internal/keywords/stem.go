package keywords

import "strings"

// suffixRule rewrites a suffix when the word is longer than minLen.
type suffixRule struct {
	suffix      string
	replacement string
	minLen      int
}

// stemRules is tried top to bottom; the first applicable rule wins.
var stemRules = []suffixRule{
	{suffix: "iness", replacement: "y"},
	{suffix: "ization", replacement: "ize"},
	{suffix: "isation", replacement: "ize"},
	{suffix: "ational", replacement: "ate"},
	{suffix: "fulness", replacement: "ful"},
	{suffix: "ousness", replacement: "ous"},
	{suffix: "iveness", replacement: "ive"},
	{suffix: "ies", replacement: "y", minLen: 4},
	{suffix: "tion", replacement: "t"},
	{suffix: "ment", replacement: "", minLen: 6},
	{suffix: "ing", replacement: "", minLen: 5},
	{suffix: "ed", replacement: "", minLen: 4},
	{suffix: "er", replacement: "", minLen: 5},
	{suffix: "ly", replacement: "", minLen: 5},
}

// Stem reduces a lower-case word to an approximate root. Words of three
// characters or fewer are returned unchanged.
func Stem(word string) string {
	if len(word) <= 3 {
		return word
	}

	for _, rule := range stemRules {
		if len(word) > rule.minLen && strings.HasSuffix(word, rule.suffix) {
			return strings.TrimSuffix(word, rule.suffix) + rule.replacement
		}
	}

	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return strings.TrimSuffix(word, "s")
	}
	return word
}
