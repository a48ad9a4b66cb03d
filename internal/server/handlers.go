package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/labeling"
)

// KeywordsRequest represents the request body for /v1/keywords
type KeywordsRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
}

// KeywordsResponse represents the response for /v1/keywords
type KeywordsResponse struct {
	Keywords []string    `json:"keywords"`
	JobType  ats.JobType `json:"job_type"`
}

// ScoreRequest represents the request body for /v1/ats-score and /v1/analyze
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	PageCount      int    `json:"page_count,omitempty" validate:"gte=0,lte=100"`
	JobType        string `json:"job_type,omitempty" validate:"omitempty,oneof=tech senior entry general"`
	// Enrich is only honored by /v1/analyze.
	Enrich bool `json:"enrich,omitempty"`
}

// InsightsRequest represents the request body for /v1/insights
type InsightsRequest struct {
	ResumeText     string  `json:"resume_text,omitempty"`
	JobDescription string  `json:"job_description" validate:"required"`
	Industry       string  `json:"industry,omitempty" validate:"max=100"`
	RoleLevel      string  `json:"role_level,omitempty" validate:"max=50"`
	Limit          int     `json:"limit,omitempty" validate:"gte=0,lte=100"`
	MinSimilarity  float64 `json:"min_similarity,omitempty" validate:"gte=-1,lte=1"`
	Summarize      bool    `json:"summarize,omitempty"`
}

// handleKeywords extracts the ranked keywords of a job description
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	kws := keywords.ExtractKeywords(req.JobDescription)
	if kws == nil {
		kws = []string{}
	}
	s.jsonResponse(w, http.StatusOK, KeywordsResponse{
		Keywords: kws,
		JobType:  ats.DetectJobType(req.JobDescription),
	})
}

// handleATSScore runs the deterministic ATS pipeline only
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	score := ats.Evaluate(req.ResumeText, req.JobDescription, ats.EvaluateOptions{
		PageCount: req.PageCount,
		JobType:   ats.JobType(req.JobType),
	})
	s.jsonResponse(w, http.StatusOK, score)
}

// handleAnalyze runs the full ATS and semantic analysis
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.analysis.Analyze(r.Context(), analysis.AnalyzeRequest{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		PageCount:      req.PageCount,
		JobType:        ats.JobType(req.JobType),
		Enrich:         req.Enrich,
		JobID:          w.Header().Get("X-Request-ID"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleInsights builds a learning report from similar labeled examples
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req InsightsRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.analysis.LearningReport(r.Context(), analysis.InsightsRequest{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		Industry:       req.Industry,
		RoleLevel:      req.RoleLevel,
		Limit:          req.Limit,
		MinSimilarity:  req.MinSimilarity,
		Summarize:      req.Summarize,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleExamples labels and stores an import document of examples
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if s.labeler == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "example labeling"})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	examples, err := labeling.DecodeImport(data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.labeler.LabelBatch(r.Context(), examples)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if result.Succeeded == 0 && result.Failed > 0 {
		status = http.StatusUnprocessableEntity
	}
	s.jsonResponse(w, status, result)
}

// decodeRequest decodes a size-limited JSON body into dst and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if err := s.validator.Struct(dst); err != nil {
		return toValidationError(err)
	}
	return nil
}

// toValidationError reports the first failing field.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := fieldErrs[0]
	msg := fmt.Sprintf("failed on %q", fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("failed on %q (%s)", fe.Tag(), fe.Param())
	}
	return &ErrValidation{Field: fe.Field(), Message: msg}
}
