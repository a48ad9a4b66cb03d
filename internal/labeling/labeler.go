// Package labeling turns historical applications with a known outcome into
// stored examples the learning pipeline can retrieve.
package labeling

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/patterns"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultConcurrency is how many examples are labeled at once.
const DefaultConcurrency = 5

// Example is one historical application to label.
type Example struct {
	JobTitle       string            `json:"job_title" validate:"required,max=200"`
	Industry       string            `json:"industry,omitempty" validate:"max=100"`
	RoleLevel      string            `json:"role_level,omitempty" validate:"max=50"`
	OutcomeType    types.OutcomeType `json:"outcome_type" validate:"required,oneof=positive negative"`
	JobDescription string            `json:"job_description" validate:"required"`
	ResumeText     string            `json:"resume_text" validate:"required"`
}

// ExampleWriter persists labeled examples.
type ExampleWriter interface {
	InsertExample(ctx context.Context, ex types.StoredExample) error
}

// ItemResult is the outcome of one example in a batch.
type ItemResult struct {
	Index int        `json:"index"`
	ID    *uuid.UUID `json:"id,omitempty"`
	Error string     `json:"error,omitempty"`
}

// BatchResult summarizes a LabelBatch call.
type BatchResult struct {
	Total     int          `json:"total"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Labeler computes content patterns and embeddings for examples and stores them.
type Labeler struct {
	embedder    embedding.Embedder
	writer      ExampleWriter
	validate    *validator.Validate
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

// NewLabeler creates a Labeler.
func NewLabeler(e embedding.Embedder, w ExampleWriter, log *zap.Logger) *Labeler {
	return &Labeler{
		embedder:    e,
		writer:      w,
		validate:    validator.New(),
		logger:      logger.OrNop(log),
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
}

// WithConcurrency sets how many examples LabelBatch processes at once.
// Non-positive values keep the current setting.
func (l *Labeler) WithConcurrency(n int) *Labeler {
	if n > 0 {
		l.concurrency = n
	}
	return l
}

// Label validates, enriches and stores a single example. index is only used
// in error messages.
func (l *Labeler) Label(ctx context.Context, index int, ex Example) (types.StoredExample, error) {
	if err := l.validate.Struct(ex); err != nil {
		return types.StoredExample{}, &LabelError{Index: index, Message: "invalid example", Cause: err}
	}

	jdKeywords := keywords.ExtractKeywords(ex.JobDescription)
	vec, err := l.embedder.Embed(ctx, ex.JobDescription)
	if err != nil {
		return types.StoredExample{}, &LabelError{Index: index, Message: "failed to embed job description", Cause: err}
	}

	stored := types.StoredExample{
		ID:              uuid.New(),
		JobTitle:        ex.JobTitle,
		Industry:        ex.Industry,
		RoleLevel:       ex.RoleLevel,
		OutcomeType:     ex.OutcomeType,
		ContentPatterns: patterns.Extract(ex.ResumeText, jdKeywords),
		Embedding:       vec,
		CreatedAt:       l.now().UTC(),
	}

	if err := l.writer.InsertExample(ctx, stored); err != nil {
		return types.StoredExample{}, &LabelError{Index: index, Message: "failed to store example", Cause: err}
	}
	return stored, nil
}

// LabelBatch labels examples with at most DefaultConcurrency in flight.
// Per-example failures are recorded in the result and do not stop the batch;
// the returned error is non-nil only when ctx ends before the batch finishes.
func (l *Labeler) LabelBatch(ctx context.Context, examples []Example) (*BatchResult, error) {
	result := &BatchResult{
		Total: len(examples),
		Items: make([]ItemResult, len(examples)),
	}

	var g errgroup.Group
	g.SetLimit(l.concurrency)

	for i, ex := range examples {
		g.Go(func() error {
			item := ItemResult{Index: i}
			if err := ctx.Err(); err != nil {
				item.Error = err.Error()
				result.Items[i] = item
				return nil
			}

			stored, err := l.Label(ctx, i, ex)
			if err != nil {
				l.logger.Warn("failed to label example", zap.Int("index", i), zap.Error(err))
				item.Error = err.Error()
			} else {
				id := stored.ID
				item.ID = &id
			}
			result.Items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	for _, item := range result.Items {
		if item.Error == "" {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	l.logger.Info("labeled batch",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("labeling interrupted: %w", err)
	}
	return result, nil
}
