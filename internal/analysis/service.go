// Package analysis runs the scoring and learning pipelines for one resume and
// job description and assembles the report returned to callers.
package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/feedback"
	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/semantic"
)

// Step names reported through ProgressCallback.
const (
	StepATS        = "ats"
	StepSemantic   = "semantic"
	StepFeedback   = "feedback"
	StepEnrichment = "enrichment"
	StepRetrieval  = "retrieval"
	StepPatterns   = "patterns"
)

// ProgressEvent represents a progress update during analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

// ProgressCallback is called when analysis progress occurs
type ProgressCallback func(event ProgressEvent)

// Dependencies are the collaborators a Service may use. Only Logger is
// optional in every mode: without Embedder there is no semantic score, without
// Store no learning report, and without LLM no enrichment.
type Dependencies struct {
	Embedder embedding.Embedder
	Store    learning.ExampleStore
	LLM      llm.Client
	Logger   *zap.Logger
}

// Service orchestrates the ATS, semantic and learning pipelines.
type Service struct {
	scorer    *semantic.Scorer
	retriever *learning.Retriever
	enricher  *feedback.Enricher
	logger    *zap.Logger
}

// NewService wires a Service from its dependencies.
func NewService(deps Dependencies) *Service {
	log := logger.OrNop(deps.Logger)
	s := &Service{logger: log}
	if deps.Embedder != nil {
		s.scorer = semantic.NewScorer(deps.Embedder)
		if deps.Store != nil {
			s.retriever = learning.NewRetriever(deps.Embedder, deps.Store).WithLogger(log)
		}
	}
	if deps.LLM != nil {
		s.enricher = feedback.NewEnricher(deps.LLM, log)
	}
	return s
}

// AnalyzeRequest holds the inputs of Analyze.
type AnalyzeRequest struct {
	ResumeText     string
	JobDescription string
	PageCount      int
	// JobType overrides detection when set.
	JobType ats.JobType
	// Enrich requests LLM comments; ignored when no LLM is configured.
	Enrich     bool
	JobID      string
	OnProgress ProgressCallback
}

// Report is the outcome of Analyze. Semantic and Enrichment are nil when the
// corresponding step was skipped or failed.
type Report struct {
	ATS        ats.Score                      `json:"ats"`
	Semantic   *semantic.Score                `json:"semantic"`
	Feedback   []feedback.SectionFeedbackItem `json:"feedback"`
	Enrichment *feedback.Enrichment           `json:"enrichment"`
	Duration   string                         `json:"duration"`
}

// Analyze scores a resume against a job description. The ATS and semantic
// pipelines run concurrently. Semantic and enrichment failures are logged and
// leave their fields nil; only invalid input or cancellation returns an error.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, ErrEmptyResume
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}

	start := time.Now()
	log := s.logger
	if req.JobID != "" {
		log = log.With(zap.String(logger.FieldJobID, req.JobID))
	}
	progress := func(step, msg string) {
		if req.OnProgress != nil {
			req.OnProgress(ProgressEvent{Step: step, Message: msg, JobID: req.JobID})
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	var (
		report   Report
		reportMu sync.Mutex
	)

	g.Go(func() error {
		score := ats.Evaluate(req.ResumeText, req.JobDescription, ats.EvaluateOptions{
			PageCount: req.PageCount,
			JobType:   req.JobType,
		})
		reportMu.Lock()
		report.ATS = score
		reportMu.Unlock()
		progress(StepATS, "ATS score computed")
		return nil
	})

	if s.scorer != nil {
		g.Go(func() error {
			result, err := s.scorer.RunSemanticAnalysis(gCtx, req.ResumeText, req.JobDescription)
			if err != nil {
				log.Warn("semantic analysis failed", zap.Error(err))
				progress(StepSemantic, "semantic analysis unavailable")
				return nil
			}
			reportMu.Lock()
			report.Semantic = &result.Score
			reportMu.Unlock()
			progress(StepSemantic, "semantic score computed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Feedback = feedback.Merge(report.ATS, report.Semantic)
	progress(StepFeedback, "feedback merged")

	if req.Enrich && s.enricher != nil {
		enrichment, err := s.enricher.Enrich(ctx, feedback.EnrichInput{
			Resume:         req.ResumeText,
			JobDescription: req.JobDescription,
			ATS:            report.ATS,
			Semantic:       report.Semantic,
			Items:          report.Feedback,
		})
		if err != nil {
			log.Warn("feedback enrichment failed", zap.Error(err))
			progress(StepEnrichment, "enrichment unavailable")
		} else {
			report.Enrichment = enrichment
			report.Feedback = feedback.Apply(report.Feedback, enrichment)
			progress(StepEnrichment, "enrichment added")
		}
	}

	report.Duration = time.Since(start).Round(time.Millisecond).String()
	log.Info("analysis complete",
		zap.Int("ats_overall", report.ATS.Overall),
		zap.Bool("semantic", report.Semantic != nil),
		zap.Bool("enriched", report.Enrichment != nil),
		zap.String("duration", report.Duration),
	)
	return &report, nil
}
