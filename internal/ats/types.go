// Package ats scores resumes the way applicant tracking systems screen them:
// keyword coverage, formatting hazards and standard sections, weighted by the
// kind of role being hired for.
package ats

// Severity grades an Issue.
type Severity string

// Issue severities.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// IssueType identifies the check that produced an Issue.
type IssueType string

// Issue types.
const (
	IssueMissingEmail     IssueType = "missing_email"
	IssueMissingPhone     IssueType = "missing_phone"
	IssueTableLayout      IssueType = "table_layout"
	IssueMultiColumn      IssueType = "multi_column"
	IssueMixedDateFormats IssueType = "mixed_date_formats"
	IssueTooManyPages     IssueType = "too_many_pages"
	IssueMixedBullets     IssueType = "mixed_bullets"
	IssueTooShort         IssueType = "too_short"
	IssueLongParagraph    IssueType = "long_paragraph"
	IssueGraphics         IssueType = "graphics"
	IssueMissingSection   IssueType = "missing_section"
)

// Issue is a single problem found in a resume.
type Issue struct {
	Type       IssueType `json:"type"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion"`
	// Section names the resume section the issue belongs to, when known.
	Section string `json:"section,omitempty"`
}

// FormattingResult is the outcome of CheckFormatting.
type FormattingResult struct {
	Score  int     `json:"score"`
	Issues []Issue `json:"issues"`
}

// SectionCheck reports whether one canonical section was found.
type SectionCheck struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
}

// SectionValidationResult is the outcome of ValidateSections.
type SectionValidationResult struct {
	Score    int            `json:"score"`
	Sections []SectionCheck `json:"sections"`
	Missing  []string       `json:"missing"`
}

// JobType selects a weight profile.
type JobType string

// Job types.
const (
	JobTypeTech    JobType = "tech"
	JobTypeSenior  JobType = "senior"
	JobTypeEntry   JobType = "entry"
	JobTypeGeneral JobType = "general"
)

// WeightProfile holds the component weights of the overall score. Each
// profile sums to 1.
type WeightProfile struct {
	Keywords   float64 `json:"keywords"`
	Formatting float64 `json:"formatting"`
	Sections   float64 `json:"sections"`
}

// PassThreshold is the minimum overall score for Score.Passed.
const PassThreshold = 75

// Score is the composed ATS compatibility score.
type Score struct {
	Overall         int           `json:"overall"`
	KeywordMatchPct int           `json:"keyword_match_pct"`
	FormattingScore int           `json:"formatting_score"`
	SectionScore    int           `json:"section_score"`
	MatchedKeywords []string      `json:"matched_keywords"`
	MissingKeywords []string      `json:"missing_keywords"`
	Issues          []Issue       `json:"issues"`
	Passed          bool          `json:"passed"`
	JobType         JobType       `json:"job_type"`
	Weights         WeightProfile `json:"weights"`
}

// ScoreOptions configures ComputeATSScore.
type ScoreOptions struct {
	// JobType picks the weight profile; empty means JobTypeGeneral.
	JobType JobType
}

// EvaluateOptions configures Evaluate.
type EvaluateOptions struct {
	PageCount int
	// Keywords overrides keyword extraction from the job description.
	Keywords []string
	// JobType overrides job-type detection.
	JobType JobType
}
