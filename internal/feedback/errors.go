package feedback

import "fmt"

// EnrichmentError represents a failed LLM enrichment call or an unusable response
type EnrichmentError struct {
	Message string
	Cause   error
}

func (e *EnrichmentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enrichment error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("enrichment error: %s", e.Message)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Cause
}
