package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/patterns"
	"github.com/jonathan/resume-matcher/internal/types"
)

// InsightsRequest holds the inputs of LearningReport.
type InsightsRequest struct {
	ResumeText     string
	JobDescription string
	Industry       string
	RoleLevel      string
	Limit          int
	MinSimilarity  float64
	// Summarize requests an LLM coaching summary; ignored without an LLM.
	Summarize  bool
	OnProgress ProgressCallback
}

// LearningReport compares the user's resume with what worked for similar jobs.
type LearningReport struct {
	SimilarJobs  []types.SimilarJob                 `json:"similar_jobs"`
	Patterns     *learning.LearnedPatterns          `json:"patterns"`
	Contrastive  learning.ContrastiveAnalysisResult `json:"contrastive"`
	Suggestions  []learning.ContrastiveSuggestion   `json:"suggestions"`
	UserPatterns types.ContentPatterns              `json:"user_patterns"`
	Summary      string                             `json:"summary,omitempty"`
}

// LearningReport retrieves similar labeled examples, aggregates and contrasts
// their content patterns and turns the material differences into suggestions
// for the user's resume. A resume is optional; without one the report has no
// suggestions.
func (s *Service) LearningReport(ctx context.Context, req InsightsRequest) (*LearningReport, error) {
	if s.retriever == nil {
		return nil, ErrLearningUnavailable
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	progress := func(step, msg string) {
		if req.OnProgress != nil {
			req.OnProgress(ProgressEvent{Step: step, Message: msg})
		}
	}

	similar, err := s.retriever.FindSimilarJobs(ctx, req.JobDescription, learning.RetrieveOptions{
		Limit:         req.Limit,
		MinSimilarity: req.MinSimilarity,
		Industry:      req.Industry,
		RoleLevel:     req.RoleLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find similar jobs: %w", err)
	}
	progress(StepRetrieval, fmt.Sprintf("found %d similar jobs", len(similar)))

	report := &LearningReport{
		SimilarJobs: similar,
		Patterns:    learning.GetLearnedPatterns(similar),
		Suggestions: make([]learning.ContrastiveSuggestion, 0),
	}

	positive, negative := learning.SplitByOutcome(similar)
	report.Contrastive = learning.AnalyzeContrastivePatterns(positive, negative)

	if strings.TrimSpace(req.ResumeText) != "" {
		report.UserPatterns = patterns.Extract(req.ResumeText, keywords.ExtractKeywords(req.JobDescription))
		report.Suggestions = learning.GenerateContrastiveSuggestions(report.Contrastive.Insights, report.UserPatterns)
	}
	progress(StepPatterns, fmt.Sprintf("%d insights, %d suggestions", len(report.Contrastive.Insights), len(report.Suggestions)))

	if req.Summarize && s.enricher != nil && len(report.Contrastive.Insights) > 0 {
		summary, err := s.enricher.SummarizeInsights(ctx, report.Contrastive.Insights, report.Suggestions)
		if err != nil {
			s.logger.Warn("insight summary failed", zap.Error(err))
		} else {
			report.Summary = summary
			progress(StepEnrichment, "summary added")
		}
	}

	s.logger.Info("learning report complete",
		zap.Int("similar", len(similar)),
		zap.Int("positive", len(positive)),
		zap.Int("negative", len(negative)),
		zap.Bool("has_patterns", report.Patterns != nil),
	)
	return report, nil
}
