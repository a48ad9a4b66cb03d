// Package patterns measures the content patterns of a single resume:
// quantified results, action verbs, bullet structure and keyword coverage.
package patterns

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/types"
)

// resultsFirstWords is how early in a bullet a metric must appear for the
// bullet to count as results-first.
const resultsFirstWords = 5

// minFallbackWords is the minimum length of an experience line used as a
// bullet when the resume has no bullet markers.
const minFallbackWords = 4

var (
	metricPattern = regexp.MustCompile(`(?i)[$€£]\s?\d[\d,]*(?:\.\d+)?\s?(?:k|m|mm|b|bn|million|billion|thousand)?|\d[\d,]*(?:\.\d+)?\s?(?:%|percent\b|x\b|k\b|m\b|million\b|billion\b|thousand\b|\+)|\b\d[\d,]*(?:\.\d+)?\b`)
	yearPattern   = regexp.MustCompile(`^(?:19|20)\d{2}$`)
)

const bulletMarkers = "-*+•◦▪▫■□●○➢➤►▶✓✔❖◆◇★☆→‣⁃∙·"

// Extract computes the content patterns of resumeText. jdKeywords, usually
// from keywords.ExtractKeywords, are matched strictly to fill the keyword
// coverage.
func Extract(resumeText string, jdKeywords []string) types.ContentPatterns {
	secs := sections.SplitIntoSections(resumeText)
	bullets := Bullets(resumeText)
	if len(bullets) == 0 {
		bullets = fallbackBullets(secs)
	}

	var cp types.ContentPatterns
	cp.Structure.BulletCount = len(bullets)
	cp.Structure.SectionOrder = sectionOrder(secs)

	verbsSeen := make(map[string]struct{})
	verbCount := 0
	for _, b := range bullets {
		metrics := countMetrics(b)
		cp.Quantification.MetricsCount += metrics

		if metrics > 0 && metricInLeadingWords(b, resultsFirstWords) {
			cp.Achievements.ResultsFirstCount++
		}

		verb := leadingWord(b)
		switch {
		case IsStrongVerb(verb):
			cp.ActionVerbs.StrongCount++
			if _, ok := verbsSeen[verb]; !ok {
				cp.ActionVerbs.StrongVerbsUsed = append(cp.ActionVerbs.StrongVerbsUsed, verb)
			}
		case IsWeakVerb(verb):
			cp.ActionVerbs.WeakCount++
		default:
			continue
		}
		verbsSeen[verb] = struct{}{}
		verbCount++
	}

	if len(bullets) > 0 {
		cp.Quantification.MetricsPerBullet = round2(float64(cp.Quantification.MetricsCount) / float64(len(bullets)))
	}
	if verbCount > 0 {
		cp.ActionVerbs.DiversityRatio = round2(float64(len(verbsSeen)) / float64(verbCount))
	}
	if cp.ActionVerbs.StrongVerbsUsed == nil {
		cp.ActionVerbs.StrongVerbsUsed = []string{}
	}

	match := keywords.MatchKeywords(resumeText, jdKeywords, keywords.DefaultMatchOptions())
	cp.Keywords = types.KeywordCoverage{Found: match.Matched, Missing: match.Missing}

	return cp
}

// Bullets returns the text of every bulleted line with its marker removed.
func Bullets(resumeText string) []string {
	var out []string
	for _, line := range strings.Split(resumeText, "\n") {
		trimmed := strings.TrimSpace(line)
		r, size := utf8.DecodeRuneInString(trimmed)
		if size == 0 || !strings.ContainsRune(bulletMarkers, r) {
			continue
		}
		text := strings.TrimSpace(trimmed[size:])
		if text == "" {
			continue
		}
		// "-5% churn" style lines are numbers, not bullets.
		if r == '-' || r == '+' {
			if next, _ := utf8.DecodeRuneInString(trimmed[size:]); unicode.IsDigit(next) {
				continue
			}
		}
		out = append(out, text)
	}
	return out
}

func fallbackBullets(secs []sections.Section) []string {
	var out []string
	for _, s := range secs {
		if s.Name != sections.Experience && s.Name != sections.Projects {
			continue
		}
		for _, line := range strings.Split(s.Content, "\n") {
			line = strings.TrimSpace(line)
			if len(strings.Fields(line)) >= minFallbackWords {
				out = append(out, line)
			}
		}
	}
	return out
}

func sectionOrder(secs []sections.Section) []string {
	order := make([]string, 0, len(secs))
	for _, s := range secs {
		if s.Name == sections.Header || s.Name == sections.Full {
			continue
		}
		order = append(order, s.Name)
	}
	return order
}

// countMetrics counts quantified values in text, ignoring bare years.
func countMetrics(text string) int {
	n := 0
	for _, m := range metricPattern.FindAllString(text, -1) {
		if yearPattern.MatchString(strings.TrimSpace(m)) {
			continue
		}
		n++
	}
	return n
}

func metricInLeadingWords(text string, words int) bool {
	fields := strings.Fields(text)
	if len(fields) > words {
		fields = fields[:words]
	}
	return countMetrics(strings.Join(fields, " ")) > 0
}

func leadingWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
