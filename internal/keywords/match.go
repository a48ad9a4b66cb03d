package keywords

import (
	"math"
	"regexp"
	"strings"
)

// MatchResult reports which keywords a resume contains.
type MatchResult struct {
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
	MatchPct int      `json:"match_pct"`
}

// MatchOptions selects the matching mode.
type MatchOptions struct {
	// Strict requires an exact, case-insensitive, word-bounded occurrence of
	// every keyword with no stemming. This is how real ATS filters behave.
	Strict bool
}

// DefaultMatchOptions returns strict matching.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{Strict: true}
}

// MatchKeywords matches keywords against resume text. Matched and Missing keep
// the order of keywords. An empty keyword list yields MatchPct 100.
func MatchKeywords(resumeText string, keywords []string, opts MatchOptions) MatchResult {
	result := MatchResult{
		Matched: make([]string, 0, len(keywords)),
		Missing: make([]string, 0),
	}
	if len(keywords) == 0 {
		result.MatchPct = 100
		return result
	}

	var idx *fuzzyIndex
	if !opts.Strict {
		idx = newFuzzyIndex(resumeText)
	}

	for _, kw := range keywords {
		var found bool
		if opts.Strict {
			found = strictContains(resumeText, kw)
		} else {
			found = idx.contains(kw)
		}
		if found {
			result.Matched = append(result.Matched, kw)
		} else {
			result.Missing = append(result.Missing, kw)
		}
	}

	result.MatchPct = MatchPercent(len(result.Matched), len(keywords))
	return result
}

// MatchPercent returns round(matched/total*100), or 100 when total is zero.
func MatchPercent(matched, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(matched) / float64(total) * 100))
}

// strictContains reports whether keyword occurs in text bounded by
// non-alphanumeric runes or the text edges. Whitespace inside a phrase
// matches any whitespace run.
func strictContains(text, keyword string) bool {
	words := strings.Fields(keyword)
	if len(words) == 0 {
		return false
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	pattern := `(?i)(?:^|[^\p{L}\p{N}])` + strings.Join(quoted, `\s+`) + `(?:$|[^\p{L}\p{N}])`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// fuzzyIndex holds the lower-cased resume with its token and stem sets.
type fuzzyIndex struct {
	lower  string
	tokens map[string]struct{}
	stems  map[string]struct{}
}

func newFuzzyIndex(text string) *fuzzyIndex {
	idx := &fuzzyIndex{
		lower:  strings.ToLower(text),
		tokens: make(map[string]struct{}),
		stems:  make(map[string]struct{}),
	}
	for _, t := range Tokenize(text) {
		idx.tokens[t] = struct{}{}
		idx.stems[Stem(t)] = struct{}{}
	}
	return idx
}

// contains falls back from substring, to all-words-present for phrases, to a
// stemmed single-word match. Phrase words may appear anywhere in the resume.
func (idx *fuzzyIndex) contains(keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return false
	}
	if strings.Contains(idx.lower, kw) {
		return true
	}

	words := strings.Fields(kw)
	if len(words) > 1 {
		for _, w := range words {
			if !idx.hasWord(w) {
				return false
			}
		}
		return true
	}

	_, ok := idx.stems[Stem(kw)]
	return ok
}

func (idx *fuzzyIndex) hasWord(w string) bool {
	if _, ok := idx.tokens[w]; ok {
		return true
	}
	_, ok := idx.stems[Stem(w)]
	return ok
}
