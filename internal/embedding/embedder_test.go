package embedding

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareInput_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := PrepareInput(in)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestPrepareInput_Trims(t *testing.T) {
	out, err := PrepareInput("  senior go engineer \n")
	require.NoError(t, err)
	assert.Equal(t, "senior go engineer", out)
}

func TestPrepareInput_Truncates(t *testing.T) {
	long := strings.Repeat("é", MaxInputTokens*charsPerToken+100)

	out, err := PrepareInput(long)

	require.NoError(t, err)
	assert.Equal(t, MaxInputTokens*charsPerToken, utf8.RuneCountInString(out))
	assert.True(t, utf8.ValidString(out))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), ProviderConfig{Provider: "cohere", APIKey: "k"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "cohere", perr.Provider)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	for _, p := range []string{ProviderGemini, ProviderOpenAI} {
		_, err := New(context.Background(), ProviderConfig{Provider: p})

		var perr *ProviderError
		require.ErrorAs(t, err, &perr, p)
		assert.Contains(t, perr.Error(), "api key is required")
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &ProviderError{Provider: ProviderOpenAI, Message: "create embeddings failed", Cause: cause}

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "openai embedding error: create embeddings failed: context deadline exceeded", err.Error())
}
