// Package vector provides cosine similarity over embedding vectors.
package vector

import "errors"

// ErrDimensionMismatch is returned when two vectors have different lengths.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// ErrEmptyVector is returned when a vector has no components.
var ErrEmptyVector = errors.New("empty vector")
