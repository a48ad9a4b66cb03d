package vector

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the cosine of the angle between a and b in [-1, 1].
// Vectors must be non-empty and of equal length. If either vector has zero
// magnitude the result is 0 with a nil error.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyVector
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can push identical vectors slightly past 1.
	return math.Max(-1, math.Min(1, sim)), nil
}

// SimilarityToScore maps a similarity in [-1, 1] to an integer score 0-100.
// Negative similarities clamp to 0.
func SimilarityToScore(sim float64) int {
	return int(math.Round(math.Max(0, math.Min(100, sim*100))))
}
