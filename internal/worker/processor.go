// Package worker scores resumes queued on RabbitMQ. Each job names a resume
// object in S3-compatible storage; the report is published back to an
// exchange keyed by job ID.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
)

const (
	// DefaultDownloadAttempts is how many times a download is tried.
	DefaultDownloadAttempts = 3
	// DefaultBackoff is the base of the linear backoff between downloads.
	DefaultBackoff = 500 * time.Millisecond
)

// Job statuses published on the results exchange.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is the body of a message on the jobs queue.
type Job struct {
	JobID          string `json:"job_id" validate:"required"`
	ObjectKey      string `json:"object_key" validate:"required"`
	MIME           string `json:"mime,omitempty"`
	JobDescription string `json:"job_description" validate:"required"`
	JobType        string `json:"job_type,omitempty" validate:"omitempty,oneof=tech senior entry general"`
	Enrich         bool   `json:"enrich,omitempty"`
}

// Result is published for every consumed job, including failures.
type Result struct {
	JobID     string           `json:"job_id"`
	Status    string           `json:"status"`
	Report    *analysis.Report `json:"report,omitempty"`
	Error     string           `json:"error,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// Processor turns one job message into a Result.
type Processor struct {
	store    ObjectStore
	service  *analysis.Service
	validate *validator.Validate
	logger   *zap.Logger
	attempts int
	backoff  time.Duration
	now      func() time.Time
}

// NewProcessor creates a Processor with the default retry policy.
func NewProcessor(store ObjectStore, service *analysis.Service, log *zap.Logger) *Processor {
	return &Processor{
		store:    store,
		service:  service,
		validate: validator.New(),
		logger:   logger.OrNop(log),
		attempts: DefaultDownloadAttempts,
		backoff:  DefaultBackoff,
		now:      time.Now,
	}
}

// Process decodes and scores a job. Failures are reported in the Result
// rather than returned, so every message gets an answer.
func (p *Processor) Process(ctx context.Context, body []byte) Result {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return p.failed(job.JobID, fmt.Errorf("invalid job message: %w", err))
	}
	if err := p.validate.Struct(job); err != nil {
		return p.failed(job.JobID, fmt.Errorf("invalid job message: %w", err))
	}

	log := p.logger.With(zap.String(logger.FieldJobID, job.JobID))
	log.Info("processing job", zap.String("object_key", job.ObjectKey))

	report, err := p.run(ctx, job)
	if err != nil {
		log.Warn("job failed", zap.Error(err))
		return p.failed(job.JobID, err)
	}

	log.Info("job completed", zap.Int("overall", report.ATS.Overall))
	return Result{
		JobID:     job.JobID,
		Status:    StatusCompleted,
		Report:    report,
		Timestamp: p.now(),
	}
}

func (p *Processor) run(ctx context.Context, job Job) (*analysis.Report, error) {
	format, err := resolveFormat(job)
	if err != nil {
		return nil, err
	}

	data, err := retry(ctx, p.attempts, p.backoff, func() ([]byte, error) {
		return p.store.Download(ctx, job.ObjectKey)
	})
	if err != nil {
		return nil, fmt.Errorf("file download error: %w", err)
	}

	doc, err := ingestion.ExtractResume(format, data)
	if err != nil {
		return nil, fmt.Errorf("text extraction error: %w", err)
	}

	return p.service.Analyze(ctx, analysis.AnalyzeRequest{
		ResumeText:     doc.Text,
		JobDescription: job.JobDescription,
		PageCount:      doc.PageCount,
		JobType:        ats.JobType(job.JobType),
		Enrich:         job.Enrich,
		JobID:          job.JobID,
	})
}

// resolveFormat prefers the declared MIME type and falls back to the key's
// extension.
func resolveFormat(job Job) (ingestion.Format, error) {
	if job.MIME != "" {
		if format, err := ingestion.FormatFromMIME(job.MIME); err == nil {
			return format, nil
		}
	}
	return ingestion.FormatFromPath(job.ObjectKey)
}

func (p *Processor) failed(jobID string, err error) Result {
	return Result{
		JobID:     jobID,
		Status:    StatusFailed,
		Error:     err.Error(),
		Timestamp: p.now(),
	}
}
