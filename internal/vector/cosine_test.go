package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_Identical(t *testing.T) {
	a := []float32{0.3, -1.2, 4.5, 0.01}

	sim, err := CosineSimilarity(a, a)

	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{-2, 0.5, 7, 1}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestCosineSimilarity_OrthogonalAndOpposite(t *testing.T) {
	sim, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-12)

	sim, err = CosineSimilarity([]float32{1, 2}, []float32{-1, -2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}

	sim, err := CosineSimilarity(zero, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)

	sim, err = CosineSimilarity(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})

	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCosineSimilarity_Empty(t *testing.T) {
	_, err := CosineSimilarity(nil, []float32{1})
	assert.ErrorIs(t, err, ErrEmptyVector)

	_, err = CosineSimilarity([]float32{}, []float32{})
	assert.ErrorIs(t, err, ErrEmptyVector)
}

func TestSimilarityToScore(t *testing.T) {
	tests := []struct {
		sim  float64
		want int
	}{
		{1.0, 100},
		{0.876, 88},
		{0.5, 50},
		{0.0, 0},
		{-0.4, 0},
		{1.2, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SimilarityToScore(tt.sim), "sim=%v", tt.sim)
	}
}
