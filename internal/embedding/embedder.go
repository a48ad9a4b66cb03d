package embedding

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Embedder produces an embedding vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const (
	// DefaultDimensions is the vector length requested from every provider.
	DefaultDimensions = 1536
	// MaxInputTokens is the provider token limit for a single input.
	MaxInputTokens = 8191
	// charsPerToken approximates token count from rune count.
	charsPerToken = 4
)

// PrepareInput trims text and truncates it to roughly MaxInputTokens tokens.
// Whitespace-only text yields ErrEmptyInput.
func PrepareInput(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}
	limit := MaxInputTokens * charsPerToken
	if utf8.RuneCountInString(text) <= limit {
		return text, nil
	}
	return string([]rune(text)[:limit]), nil
}

// Provider names accepted by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ProviderConfig selects and configures an embedding provider.
type ProviderConfig struct {
	Provider   string
	APIKey     string
	Model      string
	Dimensions int
	// BaseURL overrides the provider endpoint; used for proxies and tests.
	BaseURL string
}

// New builds the embedder named by cfg.Provider.
func New(ctx context.Context, cfg ProviderConfig) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini, "":
		return NewGeminiEmbedder(ctx, GeminiOptions{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			BaseURL:    cfg.BaseURL,
		})
	case ProviderOpenAI:
		return NewOpenAIEmbedder(OpenAIOptions{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			BaseURL:    cfg.BaseURL,
		})
	default:
		return nil, &ProviderError{Provider: cfg.Provider, Message: "unknown embedding provider"}
	}
}
