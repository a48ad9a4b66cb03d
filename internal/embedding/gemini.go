package embedding

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini embedding model used when none is set.
const DefaultGeminiModel = "gemini-embedding-001"

// GeminiOptions configures a GeminiEmbedder.
type GeminiOptions struct {
	APIKey     string
	Model      string
	Dimensions int
	BaseURL    string
}

// GeminiEmbedder embeds text with the Gemini API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	dims   int32
}

// NewGeminiEmbedder creates a Gemini-backed embedder.
func NewGeminiEmbedder(ctx context.Context, opts GeminiOptions) (*GeminiEmbedder, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, &ProviderError{Provider: ProviderGemini, Message: "api key is required"}
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderGemini, Message: "failed to create client", Cause: err}
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultGeminiModel
	}
	dims := opts.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}

	return &GeminiEmbedder{client: client, model: model, dims: int32(dims)}, nil
}

// Model returns the embedding model name.
func (e *GeminiEmbedder) Model() string {
	return e.model
}

// Embed returns the embedding of text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	input, err := PrepareInput(text)
	if err != nil {
		return nil, err
	}

	dims := e.dims
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(input), &genai.EmbedContentConfig{
		TaskType:             "SEMANTIC_SIMILARITY",
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, &ProviderError{Provider: ProviderGemini, Message: "embed content failed", Cause: err}
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		return nil, &ProviderError{Provider: ProviderGemini, Message: "empty embedding in response"}
	}

	return resp.Embeddings[0].Values, nil
}
