// Package semantic scores resume sections against a job description by
// embedding similarity.
package semantic

import (
	"errors"
	"fmt"
)

// ErrNoMeaningfulSections is returned when no resume section has enough text
// to embed.
var ErrNoMeaningfulSections = errors.New("no meaningful resume sections to score")

// EmbeddingError represents a failed embedding of one section or of the job description
type EmbeddingError struct {
	Section string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding error: section %q: %v", e.Section, e.Cause)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}
