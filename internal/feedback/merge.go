// Package feedback merges ATS and semantic results into section-level feedback
// and optionally adds recruiter-style comments from an LLM.
package feedback

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/sections"
	"github.com/jonathan/resume-matcher/internal/semantic"
)

// SectionGeneral collects issues that concern the document as a whole.
const SectionGeneral = "general"

// Level buckets a semantic section score.
type Level string

// Levels.
const (
	LevelStrong   Level = "strong"
	LevelModerate Level = "moderate"
	LevelWeak     Level = "weak"
)

// Score boundaries for the levels.
const (
	StrongThreshold   = 70
	ModerateThreshold = 45
)

// maxListedKeywords caps how many missing keywords a highlight spells out.
const maxListedKeywords = 10

// LevelFor buckets a 0-100 score.
func LevelFor(score int) Level {
	switch {
	case score >= StrongThreshold:
		return LevelStrong
	case score >= ModerateThreshold:
		return LevelModerate
	default:
		return LevelWeak
	}
}

// Source names the analysis a highlight came from.
type Source string

// Sources.
const (
	SourceATS      Source = "ats"
	SourceKeywords Source = "keywords"
	SourceSemantic Source = "semantic"
)

// Highlight is one piece of feedback attached to a section.
type Highlight struct {
	Source     Source       `json:"source"`
	Severity   ats.Severity `json:"severity"`
	Message    string       `json:"message"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// SectionFeedbackItem groups the feedback for one resume section.
type SectionFeedbackItem struct {
	Section    string      `json:"section"`
	Score      *int        `json:"score,omitempty"`
	Level      Level       `json:"level,omitempty"`
	Highlights []Highlight `json:"highlights"`
	Comment    string      `json:"comment,omitempty"`
}

var sectionOrder = []string{
	sections.Header,
	sections.Summary,
	sections.Experience,
	sections.Skills,
	sections.Projects,
	sections.Education,
	sections.Certifications,
	sections.Full,
	SectionGeneral,
}

// Merge combines an ATS score and an optional semantic score into one feedback
// item per section. Items come out in resume order with the document-wide
// "general" item last; highlights inside an item are ordered by severity.
func Merge(score ats.Score, sem *semantic.Score) []SectionFeedbackItem {
	items := make(map[string]*SectionFeedbackItem)
	get := func(name string) *SectionFeedbackItem {
		item, ok := items[name]
		if !ok {
			item = &SectionFeedbackItem{Section: name, Highlights: make([]Highlight, 0)}
			items[name] = item
		}
		return item
	}

	for _, issue := range score.Issues {
		item := get(issueSection(issue))
		item.Highlights = append(item.Highlights, Highlight{
			Source:     SourceATS,
			Severity:   issue.Severity,
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
		})
	}

	if len(score.MissingKeywords) > 0 {
		item := get(sections.Skills)
		item.Highlights = append(item.Highlights, missingKeywordsHighlight(score.MissingKeywords))
	}

	if sem != nil {
		// Repeated headings (two experience blocks) share one averaged score.
		type tally struct{ sum, n int }
		tallies := make(map[string]*tally)
		var order []string
		for _, ss := range sem.SectionScores {
			t, ok := tallies[ss.Section]
			if !ok {
				t = &tally{}
				tallies[ss.Section] = t
				order = append(order, ss.Section)
			}
			t.sum += ss.Score
			t.n++
		}
		for _, name := range order {
			t := tallies[name]
			item := get(name)
			s := int(math.Round(float64(t.sum) / float64(t.n)))
			item.Score = &s
			item.Level = LevelFor(s)
			item.Highlights = append(item.Highlights, semanticHighlight(item.Level))
		}
	}

	result := make([]SectionFeedbackItem, 0, len(items))
	for _, name := range orderedNames(items) {
		item := items[name]
		sort.SliceStable(item.Highlights, func(i, j int) bool {
			return severityRank(item.Highlights[i].Severity) < severityRank(item.Highlights[j].Severity)
		})
		result = append(result, *item)
	}
	return result
}

func issueSection(issue ats.Issue) string {
	if issue.Section != "" {
		return issue.Section
	}
	switch issue.Type {
	case ats.IssueMissingEmail, ats.IssueMissingPhone:
		return sections.Header
	case ats.IssueMixedDateFormats:
		return sections.Experience
	case ats.IssueTableLayout, ats.IssueMultiColumn, ats.IssueTooManyPages, ats.IssueMixedBullets,
		ats.IssueTooShort, ats.IssueLongParagraph, ats.IssueGraphics, ats.IssueMissingSection:
		return SectionGeneral
	default:
		return SectionGeneral
	}
}

func missingKeywordsHighlight(missing []string) Highlight {
	listed := missing
	more := ""
	if len(listed) > maxListedKeywords {
		listed = listed[:maxListedKeywords]
		more = fmt.Sprintf(" and %d more", len(missing)-maxListedKeywords)
	}
	return Highlight{
		Source:     SourceKeywords,
		Severity:   ats.SeverityWarning,
		Message:    fmt.Sprintf("Missing %d job keywords: %s%s", len(missing), strings.Join(listed, ", "), more),
		Suggestion: "Add the ones you genuinely have to your skills or experience sections, using the job's wording",
	}
}

func semanticHighlight(level Level) Highlight {
	switch level {
	case LevelStrong:
		return Highlight{
			Source:   SourceSemantic,
			Severity: ats.SeverityInfo,
			Message:  "Closely aligned with the job description",
		}
	case LevelModerate:
		return Highlight{
			Source:     SourceSemantic,
			Severity:   ats.SeverityInfo,
			Message:    "Partially aligned with the job description",
			Suggestion: "Mirror the responsibilities the job emphasizes more directly",
		}
	default:
		return Highlight{
			Source:     SourceSemantic,
			Severity:   ats.SeverityWarning,
			Message:    "Weakly aligned with the job description",
			Suggestion: "Rework this section around the job's core requirements",
		}
	}
}

func severityRank(s ats.Severity) int {
	switch s {
	case ats.SeverityCritical:
		return 0
	case ats.SeverityWarning:
		return 1
	default:
		return 2
	}
}

func orderedNames(items map[string]*SectionFeedbackItem) []string {
	names := make([]string, 0, len(items))
	seen := make(map[string]bool, len(sectionOrder))
	for _, name := range sectionOrder {
		seen[name] = true
		if name == SectionGeneral {
			continue
		}
		if _, ok := items[name]; ok {
			names = append(names, name)
		}
	}

	var extra []string
	for name := range items {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	if _, ok := items[SectionGeneral]; ok {
		names = append(names, SectionGeneral)
	}
	return names
}
