// Package learning retrieves labeled examples similar to a job description and
// learns from them which content patterns separate successful resumes from
// rejected ones.
package learning

import "fmt"

// RetrievalError represents a failure to fetch or rank stored examples
type RetrievalError struct {
	Message string
	Cause   error
}

func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("retrieval error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("retrieval error: %s", e.Message)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}
