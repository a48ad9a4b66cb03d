package types

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeType is the label attached to a historical example.
type OutcomeType string

const (
	// OutcomePositive marks a resume that led to an interview or offer
	OutcomePositive OutcomeType = "positive"
	// OutcomeNegative marks a resume that was rejected
	OutcomeNegative OutcomeType = "negative"
)

// Valid reports whether o is a known outcome.
func (o OutcomeType) Valid() bool {
	switch o {
	case OutcomePositive, OutcomeNegative:
		return true
	default:
		return false
	}
}

// StoredExample is a labeled historical example as kept by an example store.
// Embedding is the job description embedding; it may be empty for rows that
// were labeled before embeddings were available.
type StoredExample struct {
	ID              uuid.UUID       `json:"id"`
	JobTitle        string          `json:"job_title"`
	Industry        string          `json:"industry,omitempty"`
	RoleLevel       string          `json:"role_level,omitempty"`
	OutcomeType     OutcomeType     `json:"outcome_type"`
	ContentPatterns ContentPatterns `json:"content_patterns"`
	Embedding       []float32       `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SimilarJob is a stored example retrieved for a job description, with its
// similarity to that job description.
type SimilarJob struct {
	ID              uuid.UUID       `json:"id"`
	JobTitle        string          `json:"job_title"`
	Industry        string          `json:"industry,omitempty"`
	RoleLevel       string          `json:"role_level,omitempty"`
	OutcomeType     OutcomeType     `json:"outcome_type"`
	Similarity      float64         `json:"similarity"`
	ContentPatterns ContentPatterns `json:"content_patterns"`
}
