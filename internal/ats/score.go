package ats

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/keywords"
)

// ComputeATSScore combines keyword, formatting and section results with the
// weight profile of opts.JobType. Missing keywords are reported in
// MissingKeywords only, never as issues.
func ComputeATSScore(kw keywords.MatchResult, formatting FormattingResult, sections SectionValidationResult, opts ScoreOptions) Score {
	jobType := opts.JobType
	if !jobType.Valid() {
		jobType = JobTypeGeneral
	}
	w := WeightsFor(jobType)

	overall := int(math.Round(
		float64(kw.MatchPct)*w.Keywords +
			float64(formatting.Score)*w.Formatting +
			float64(sections.Score)*w.Sections,
	))

	issues := make([]Issue, 0, len(formatting.Issues)+len(sections.Missing))
	issues = append(issues, formatting.Issues...)
	issues = append(issues, sectionIssues(sections.Missing)...)

	return Score{
		Overall:         overall,
		KeywordMatchPct: kw.MatchPct,
		FormattingScore: formatting.Score,
		SectionScore:    sections.Score,
		MatchedKeywords: nonNil(kw.Matched),
		MissingKeywords: nonNil(kw.Missing),
		Issues:          issues,
		Passed:          overall >= PassThreshold,
		JobType:         jobType,
		Weights:         w,
	}
}

// Evaluate runs the full ATS pipeline: keyword extraction unless opts.Keywords
// is set, strict matching, formatting and section checks, then weighting by the
// detected (or overridden) job type.
func Evaluate(resumeText, jobDescription string, opts EvaluateOptions) Score {
	kws := opts.Keywords
	if kws == nil {
		kws = keywords.ExtractKeywords(jobDescription)
	}
	jobType := opts.JobType
	if jobType == "" {
		jobType = DetectJobType(jobDescription)
	}
	return ComputeATSScore(
		keywords.MatchKeywords(resumeText, kws, keywords.DefaultMatchOptions()),
		CheckFormatting(resumeText, FormattingOptions{PageCount: opts.PageCount}),
		ValidateSections(resumeText),
		ScoreOptions{JobType: jobType},
	)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
