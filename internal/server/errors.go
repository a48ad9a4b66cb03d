package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/labeling"
	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/semantic"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		unavailableErr *ErrUnavailable
		importErr      *labeling.ImportError
		retrievalErr   *learning.RetrievalError
		providerErr    *embedding.ProviderError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &importErr),
		errors.Is(err, analysis.ErrEmptyResume),
		errors.Is(err, analysis.ErrEmptyJobDescription),
		errors.Is(err, embedding.ErrEmptyInput):
		return http.StatusBadRequest
	case errors.Is(err, semantic.ErrNoMeaningfulSections):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailableErr), errors.Is(err, analysis.ErrLearningUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &providerErr), errors.As(err, &retrievalErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
