// Package embedders provides embedding implementations for AgriAssist
package embedders

import (
	"math"
	"strings"
	"time"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// BaseEmbedder provides common functionality for all embedder implementations
type BaseEmbedder struct {
	modelName string
	dimension int
	maxLength int
	timeout   time.Duration
}

// NewBaseEmbedder creates a new base embedder instance
func NewBaseEmbedder(modelName string, dimension int) *BaseEmbedder {
	return &BaseEmbedder{
		modelName: modelName,
		dimension: dimension,
		maxLength: 2048,
		timeout:   30 * time.Second,
	}
}

// GetDimension returns the embedding dimension
func (b *BaseEmbedder) GetDimension() int {
	return b.dimension
}

// GetModelName returns the model name
func (b *BaseEmbedder) GetModelName() string {
	return b.modelName
}

// GetTimeout returns the request timeout
func (b *BaseEmbedder) GetTimeout() time.Duration {
	return b.timeout
}

// SetTimeout sets the request timeout
func (b *BaseEmbedder) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// PreprocessText collapses whitespace and truncates overly long input at a
// word boundary
func (b *BaseEmbedder) PreprocessText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Join(strings.Fields(text), " ")

	if len(text) > b.maxLength {
		text = text[:b.maxLength]
		if lastSpace := strings.LastIndex(text, " "); lastSpace > b.maxLength/2 {
			text = text[:lastSpace]
		}
	}

	return text
}

// NormalizeVector normalizes an embedding vector to unit length. Zero
// vectors are returned unchanged.
func (b *BaseEmbedder) NormalizeVector(vector types.EmbeddingVector) types.EmbeddingVector {
	var norm float32
	for _, val := range vector {
		norm += val * val
	}
	norm = float32(math.Sqrt(float64(norm)))

	if norm == 0 {
		return vector
	}

	normalized := make(types.EmbeddingVector, len(vector))
	for i, val := range vector {
		normalized[i] = val / norm
	}
	return normalized
}

// ValidateVector validates an embedding vector against the configured
// dimension and rejects NaN/Inf components
func (b *BaseEmbedder) ValidateVector(vector types.EmbeddingVector) error {
	if len(vector) != b.dimension {
		return errors.NewDimensionMismatchError(b.dimension, len(vector))
	}
	for i, val := range vector {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return errors.NewEmbedError("invalid vector component").WithDetail("index", i)
		}
	}
	return nil
}

// Close provides default close implementation
func (b *BaseEmbedder) Close() error {
	return nil
}

// EmbedderConfig represents configuration for embedder instances
type EmbedderConfig struct {
	Backend   types.BackendType `yaml:"backend" json:"backend" validate:"required,oneof=hash openai"`
	Model     string            `yaml:"model,omitempty" json:"model,omitempty"`
	APIKey    string            `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL   string            `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Dimension int               `yaml:"dimension" json:"dimension" validate:"required,gt=0"`
	Timeout   time.Duration     `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Validate validates the embedder configuration
func (c *EmbedderConfig) Validate() error {
	if c.Backend == "" {
		return errors.NewConfigInvalidError("embedder backend is required")
	}
	if c.Dimension <= 0 {
		return errors.NewConfigInvalidError("embedder dimension must be positive")
	}
	if c.Backend == types.BackendOpenAI && c.APIKey == "" {
		return errors.NewConfigInvalidError("openai embedder requires an API key")
	}
	return nil
}

// DefaultEmbedderConfig returns default embedder configuration: the local
// deterministic hashing embedder, which needs no network access.
func DefaultEmbedderConfig() *EmbedderConfig {
	return &EmbedderConfig{
		Backend:   types.BackendHash,
		Model:     "agri-hash-v1",
		Dimension: 128,
		Timeout:   30 * time.Second,
	}
}
