package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"happiness", "happy"},
		{"organization", "organize"},
		{"optimisation", "optimize"},
		{"operational", "operate"},
		{"technologies", "technology"},
		{"integration", "integrat"},
		{"deployment", "deploy"},
		{"managing", "manag"},
		{"managed", "manag"},
		{"manager", "manag"},
		{"testing", "test"},
		{"quickly", "quick"},
		{"systems", "system"},
		{"apis", "api"},
		{"process", "process"},
		{"class", "class"},
		{"sing", "sing"},
		{"go", "go"},
		{"sql", "sql"},
		{"ci/cd", "ci/cd"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.word))
		})
	}
}

func TestStem_FirstRuleWinsWithoutReentry(t *testing.T) {
	// "ies" applies, the resulting "y" word is not stemmed again.
	assert.Equal(t, "policy", Stem("policies"))
	// "ing" applies; the trailing "s" rule is never reached.
	assert.Equal(t, "build", Stem("building"))
}

func TestStem_ShortWordsUnchanged(t *testing.T) {
	for _, w := range []string{"ies", "ing", "bus", "was", "a"} {
		assert.Equal(t, w, Stem(w))
	}
}
