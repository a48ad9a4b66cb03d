package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/semantic"
)

func itemFor(t *testing.T, items []SectionFeedbackItem, section string) SectionFeedbackItem {
	t.Helper()
	for _, item := range items {
		if item.Section == section {
			return item
		}
	}
	t.Fatalf("no feedback item for section %q", section)
	return SectionFeedbackItem{}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelStrong, LevelFor(100))
	assert.Equal(t, LevelStrong, LevelFor(70))
	assert.Equal(t, LevelModerate, LevelFor(69))
	assert.Equal(t, LevelModerate, LevelFor(45))
	assert.Equal(t, LevelWeak, LevelFor(44))
	assert.Equal(t, LevelWeak, LevelFor(0))
}

func TestMerge_ATSOnly(t *testing.T) {
	score := ats.Score{
		Issues: []ats.Issue{
			{Type: ats.IssueTableLayout, Severity: ats.SeverityWarning, Message: "table"},
			{Type: ats.IssueMissingPhone, Severity: ats.SeverityWarning, Message: "phone"},
			{Type: ats.IssueMissingSection, Severity: ats.SeverityCritical, Message: "Missing Experience section", Section: "experience"},
			{Type: ats.IssueMixedDateFormats, Severity: ats.SeverityInfo, Message: "dates"},
		},
	}

	items := Merge(score, nil)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Section)
		assert.Nil(t, item.Score)
		assert.Empty(t, item.Level)
	}
	assert.Equal(t, []string{"header", "experience", SectionGeneral}, names)

	exp := itemFor(t, items, "experience")
	require.Len(t, exp.Highlights, 2)
	assert.Equal(t, ats.SeverityCritical, exp.Highlights[0].Severity)
	assert.Equal(t, "dates", exp.Highlights[1].Message)
}

func TestMerge_MissingKeywordsGoToSkills(t *testing.T) {
	missing := make([]string, 12)
	for i := range missing {
		missing[i] = string(rune('a' + i))
	}

	items := Merge(ats.Score{MissingKeywords: missing}, nil)
	require.Len(t, items, 1)

	skills := items[0]
	assert.Equal(t, "skills", skills.Section)
	require.Len(t, skills.Highlights, 1)
	h := skills.Highlights[0]
	assert.Equal(t, SourceKeywords, h.Source)
	assert.True(t, strings.HasPrefix(h.Message, "Missing 12 job keywords: a, b"))
	assert.Contains(t, h.Message, "and 2 more")
	assert.NotContains(t, h.Message, "k, l")
}

func TestMerge_SemanticBuckets(t *testing.T) {
	sem := &semantic.Score{
		OverallScore: 60,
		SectionScores: []semantic.SectionScore{
			{Section: "experience", Score: 82},
			{Section: "summary", Score: 50},
			{Section: "education", Score: 12},
			{Section: "volunteering", Score: 40},
		},
	}

	items := Merge(ats.Score{}, sem)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Section)
	}
	assert.Equal(t, []string{"summary", "experience", "education", "volunteering"}, names)

	exp := itemFor(t, items, "experience")
	require.NotNil(t, exp.Score)
	assert.Equal(t, 82, *exp.Score)
	assert.Equal(t, LevelStrong, exp.Level)
	assert.Equal(t, ats.SeverityInfo, exp.Highlights[0].Severity)

	assert.Equal(t, LevelModerate, itemFor(t, items, "summary").Level)

	edu := itemFor(t, items, "education")
	assert.Equal(t, LevelWeak, edu.Level)
	assert.Equal(t, ats.SeverityWarning, edu.Highlights[0].Severity)
	assert.NotEmpty(t, edu.Highlights[0].Suggestion)
}

func TestMerge_RepeatedSectionAveraged(t *testing.T) {
	sem := &semantic.Score{
		SectionScores: []semantic.SectionScore{
			{Section: "experience", Score: 80},
			{Section: "skills", Score: 60},
			{Section: "experience", Score: 35},
		},
	}

	items := Merge(ats.Score{}, sem)

	require.Len(t, items, 2)
	exp := itemFor(t, items, "experience")
	require.NotNil(t, exp.Score)
	assert.Equal(t, 58, *exp.Score)
	assert.Equal(t, LevelModerate, exp.Level)
	assert.Len(t, exp.Highlights, 1)
}

func TestMerge_CombinesSources(t *testing.T) {
	score := ats.Score{
		MissingKeywords: []string{"kubernetes"},
		Issues:          []ats.Issue{{Type: ats.IssueMissingSection, Severity: ats.SeverityWarning, Message: "Missing Skills section", Section: "skills"}},
	}
	sem := &semantic.Score{SectionScores: []semantic.SectionScore{{Section: "skills", Score: 75}}}

	items := Merge(score, sem)
	require.Len(t, items, 1)

	skills := items[0]
	require.Len(t, skills.Highlights, 3)
	assert.Equal(t, SourceATS, skills.Highlights[0].Source)
	assert.Equal(t, SourceKeywords, skills.Highlights[1].Source)
	assert.Equal(t, SourceSemantic, skills.Highlights[2].Source)
}

func TestMerge_Empty(t *testing.T) {
	items := Merge(ats.Score{}, nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
