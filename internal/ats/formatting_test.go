package ats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillerLines returns n ten-word lines with no contact details or dates.
func fillerLines(n int) string {
	line := "Built reliable services and improved team delivery speed very significantly"
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func issueTypes(issues []Issue) []IssueType {
	out := make([]IssueType, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Type)
	}
	return out
}

func TestCheckFormatting_Clean(t *testing.T) {
	resume := "Jane Doe\njane@example.com\n(555) 123-4567\n" + fillerLines(12)

	result := CheckFormatting(resume, FormattingOptions{PageCount: 1})

	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Issues)
}

func TestCheckFormatting_NoContactInfo(t *testing.T) {
	result := CheckFormatting(fillerLines(15), FormattingOptions{})

	assert.Equal(t, 80, result.Score)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, IssueMissingEmail, result.Issues[0].Type)
	assert.Equal(t, SeverityCritical, result.Issues[0].Severity)
	assert.Equal(t, IssueMissingPhone, result.Issues[1].Type)
	assert.Equal(t, SeverityWarning, result.Issues[1].Severity)
	assert.NotEmpty(t, result.Issues[0].Suggestion)
}

func TestCheckFormatting_IndividualChecks(t *testing.T) {
	contact := "jane@example.com\n555-123-4567\n" + fillerLines(11) + "\n"

	tests := []struct {
		name      string
		resume    string
		pageCount int
		want      IssueType
		score     int
	}{
		{"table pipes", contact + "Go | Kafka | Redis\nSQL | Docker | AWS", 1, IssueTableLayout, 90},
		{"table tabs", contact + "Go\tKafka\tRedis\nSQL\tDocker\tAWS", 1, IssueTableLayout, 90},
		{"multi column", contact + "Experience      Skills\nAcme Corp      Go\nGlobex Inc      SQL", 1, IssueMultiColumn, 90},
		{"mixed dates", contact + "Acme Jan 2020 to 03/2021", 1, IssueMixedDateFormats, 95},
		{"pages", contact, 3, IssueTooManyPages, 90},
		{"bullets", contact + "• Go\n▪ SQL\n➤ Kafka", 1, IssueMixedBullets, 97},
		{"long paragraph", contact + strings.Repeat("word ", 51), 1, IssueLongParagraph, 95},
		{"graphics", contact + "[image: headshot.png]", 1, IssueGraphics, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckFormatting(tt.resume, FormattingOptions{PageCount: tt.pageCount})

			assert.Equal(t, []IssueType{tt.want}, issueTypes(result.Issues))
			assert.Equal(t, tt.score, result.Score)
		})
	}
}

func TestCheckFormatting_BulletedLongLineAllowed(t *testing.T) {
	resume := "jane@example.com\n555-123-4567\n- " + strings.Repeat("word ", 120)

	result := CheckFormatting(resume, FormattingOptions{})

	assert.Equal(t, 100, result.Score)
}

func TestCheckFormatting_TooShort(t *testing.T) {
	result := CheckFormatting("jane@example.com 555-123-4567 Go developer", FormattingOptions{})

	assert.Equal(t, []IssueType{IssueTooShort}, issueTypes(result.Issues))
	assert.Equal(t, 80, result.Score)
}

func TestCheckFormatting_IssueOrder(t *testing.T) {
	resume := "[logo]\n• a\n▪ b\n➤ c"

	result := CheckFormatting(resume, FormattingOptions{PageCount: 4})

	assert.Equal(t, []IssueType{
		IssueMissingEmail,
		IssueMissingPhone,
		IssueTooManyPages,
		IssueMixedBullets,
		IssueTooShort,
		IssueGraphics,
	}, issueTypes(result.Issues))
	assert.Equal(t, 100-15-5-10-3-20-15, result.Score)
}

func TestCheckFormatting_SingleDateFamily(t *testing.T) {
	resume := "jane@example.com\n555-123-4567\n" + fillerLines(11) + "\nJan 2019 - March 2021\nApr 2021 - Present"

	result := CheckFormatting(resume, FormattingOptions{})

	assert.Equal(t, 100, result.Score)
}
