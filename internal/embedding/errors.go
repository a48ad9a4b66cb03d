// Package embedding turns text into fixed-length vectors through Gemini or
// OpenAI, with an optional two-tier cache in front of either.
package embedding

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when text to embed is empty or whitespace only.
var ErrEmptyInput = errors.New("embedding input is empty")

// ProviderError represents a failed call to an embedding provider
type ProviderError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s embedding error: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s embedding error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
