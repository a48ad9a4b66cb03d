package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTerms caps the number of terms returned by ExtractKeywords.
const DefaultMaxTerms = 50

// ExtractorOptions configures an Extractor.
type ExtractorOptions struct {
	// MaxTerms caps the output length; zero or negative means DefaultMaxTerms.
	MaxTerms int
}

// Extractor derives significant terms from job descriptions.
type Extractor struct {
	maxTerms int
}

// NewExtractor creates an Extractor with the given options.
func NewExtractor(opts ExtractorOptions) *Extractor {
	maxTerms := opts.MaxTerms
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	return &Extractor{maxTerms: maxTerms}
}

var defaultExtractor = NewExtractor(ExtractorOptions{})

// ExtractKeywords extracts terms from a job description using default options.
func ExtractKeywords(jobDescription string) []string {
	return defaultExtractor.Extract(jobDescription)
}

// termStat tracks frequency and first position of a candidate term.
type termStat struct {
	term  string
	count int
	first int
}

// Extract returns curated multi-word phrases followed by frequent single words,
// most significant first. Single words that already appear inside an extracted
// phrase are omitted.
func (e *Extractor) Extract(jobDescription string) []string {
	text := strings.Join(strings.Fields(jobDescription), " ")
	if text == "" {
		return []string{}
	}

	phrases, remaining := extractPhrases(text)
	covered := make(map[string]struct{})
	for _, p := range phrases {
		for _, w := range strings.Fields(p.term) {
			covered[w] = struct{}{}
		}
	}

	singles := rankSingleWords(remaining)

	terms := make([]string, 0, len(phrases)+len(singles))
	for _, p := range phrases {
		terms = append(terms, p.term)
	}
	for _, s := range singles {
		if _, ok := covered[s.term]; ok {
			continue
		}
		terms = append(terms, s.term)
	}

	if len(terms) > e.maxTerms {
		terms = terms[:e.maxTerms]
	}
	return terms
}

// extractPhrases finds curated phrases and returns them ranked, together with
// the text where every matched span has been blanked out.
func extractPhrases(text string) ([]termStat, string) {
	remaining := text
	stats := make(map[string]*termStat)

	for _, re := range phrasePatterns {
		locs := re.FindAllStringIndex(remaining, -1)
		if len(locs) == 0 {
			continue
		}
		for _, loc := range locs {
			term := normalizePhrase(remaining[loc[0]:loc[1]])
			if st, ok := stats[term]; ok {
				st.count++
				st.first = min(st.first, loc[0])
				continue
			}
			stats[term] = &termStat{term: term, count: 1, first: loc[0]}
		}
		remaining = re.ReplaceAllStringFunc(remaining, func(m string) string {
			return strings.Repeat(" ", len(m))
		})
	}

	return sortStats(stats), remaining
}

// rankSingleWords counts surviving tokens by raw frequency.
func rankSingleWords(text string) []termStat {
	stats := make(map[string]*termStat)
	for i, token := range Tokenize(text) {
		if IsStopWord(token) {
			continue
		}
		if utf8.RuneCountInString(token) <= 2 {
			if _, ok := acronymAllowlist[token]; !ok {
				continue
			}
		}
		if st, ok := stats[token]; ok {
			st.count++
			continue
		}
		stats[token] = &termStat{term: token, count: 1, first: i}
	}
	return sortStats(stats)
}

func sortStats(stats map[string]*termStat) []termStat {
	out := make([]termStat, 0, len(stats))
	for _, st := range stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].first < out[j].first
	})
	return out
}
