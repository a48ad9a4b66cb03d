package embedding

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the OpenAI embedding model used when none is set.
const DefaultOpenAIModel = string(openai.SmallEmbedding3)

// OpenAIOptions configures an OpenAIEmbedder.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	Dimensions int
	BaseURL    string
}

// OpenAIEmbedder embeds text with the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	dims   int
}

// NewOpenAIEmbedder creates an OpenAI-backed embedder.
func NewOpenAIEmbedder(opts OpenAIOptions) (*OpenAIEmbedder, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, &ProviderError{Provider: ProviderOpenAI, Message: "api key is required"}
	}

	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	dims := opts.Dimensions
	if dims <= 0 {
		dims = DefaultDimensions
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(model),
		dims:   dims,
	}, nil
}

// Model returns the embedding model name.
func (e *OpenAIEmbedder) Model() string {
	return string(e.model)
}

// Embed returns the embedding of text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	input, err := PrepareInput(text)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{input},
		Model:      e.model,
		Dimensions: e.dims,
	})
	if err != nil {
		return nil, &ProviderError{Provider: ProviderOpenAI, Message: "create embeddings failed", Cause: err}
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &ProviderError{Provider: ProviderOpenAI, Message: "empty embedding in response"}
	}

	return resp.Data[0].Embedding, nil
}
