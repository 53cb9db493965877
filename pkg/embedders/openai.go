package embedders

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// OpenAIEmbedder generates embeddings through the OpenAI embeddings API.
// Optional backend for deployments that can afford network calls; the
// default hashing embedder stays fully offline.
type OpenAIEmbedder struct {
	*BaseEmbedder
	client *openai.Client
	config *EmbedderConfig
}

// NewOpenAIEmbedder creates a new OpenAI embedder instance
func NewOpenAIEmbedder(config *EmbedderConfig) (*OpenAIEmbedder, error) {
	if config == nil {
		return nil, errors.NewConfigError("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	openaiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		openaiConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	return &OpenAIEmbedder{
		BaseEmbedder: NewBaseEmbedder(model, config.Dimension),
		client:       openai.NewClientWithConfig(openaiConfig),
		config:       config,
	}, nil
}

// Embed generates an embedding for text. Empty text short-circuits to the
// zero vector without an API call, matching the hashing embedder's contract.
func (o *OpenAIEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	text = o.PreprocessText(text)
	if text == "" {
		return make(types.EmbeddingVector, o.GetDimension()), nil
	}

	vectors, err := o.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call
func (o *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	req := openai.EmbeddingRequest{
		Input:      texts,
		Model:      openai.EmbeddingModel(o.GetModelName()),
		Dimensions: o.GetDimension(),
	}

	resp, err := o.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, errors.NewLLMAPIError("embedding request failed", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.NewLLMError("embedding response count mismatch")
	}

	vectors := make([]types.EmbeddingVector, len(resp.Data))
	for i, d := range resp.Data {
		v := types.EmbeddingVector(d.Embedding)
		if err := o.ValidateVector(v); err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

var _ interfaces.Embedder = (*OpenAIEmbedder)(nil)
