// Package chunkers provides text chunking implementations for AgriAssist
package chunkers

import (
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
)

// ChunkerConfig represents chunker configuration
type ChunkerConfig struct {
	// ChunkSize is the maximum chunk length in characters
	ChunkSize int `yaml:"chunk_size" json:"chunk_size" validate:"required,gt=0"`

	// ChunkOverlap is how many trailing characters repeat at the start of
	// the next chunk so no context is lost at a boundary
	ChunkOverlap int `yaml:"chunk_overlap" json:"chunk_overlap" validate:"gte=0"`
}

// Validate validates the chunker configuration
func (c *ChunkerConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return errors.NewConfigInvalidError("chunk size must be positive")
	}
	if c.ChunkOverlap < 0 {
		return errors.NewConfigInvalidError("chunk overlap cannot be negative")
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return errors.NewConfigInvalidError("chunk overlap must be less than chunk size")
	}
	return nil
}

// DefaultChunkerConfig returns the default chunker configuration
func DefaultChunkerConfig() *ChunkerConfig {
	return &ChunkerConfig{
		ChunkSize:    500,
		ChunkOverlap: 50,
	}
}
