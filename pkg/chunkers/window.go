package chunkers

import (
	"context"
	"strings"
	"unicode"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
)

// WindowChunker splits text into overlapping character windows, preferring
// to break at a whitespace boundary near the window end so words stay
// intact. Text no longer than one window comes back as a single chunk.
type WindowChunker struct {
	config *ChunkerConfig
}

// NewWindowChunker creates a new overlapping-window chunker
func NewWindowChunker(config *ChunkerConfig) (*WindowChunker, error) {
	if config == nil {
		config = DefaultChunkerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &WindowChunker{config: config}, nil
}

// Chunk splits text into overlapping windows
func (wc *WindowChunker) Chunk(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	runes := []rune(text)
	size := wc.config.ChunkSize
	overlap := wc.config.ChunkOverlap

	if len(runes) <= size {
		return []string{text}, nil
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		// Snap back to the nearest whitespace so the window does not cut a
		// word in half. Only worthwhile when the boundary stays in the back
		// half of the window.
		cut := end
		for i := end - 1; i > start+size/2; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks, nil
}

// GetChunkSize returns the configured chunk size
func (wc *WindowChunker) GetChunkSize() int {
	return wc.config.ChunkSize
}

// GetChunkOverlap returns the configured chunk overlap
func (wc *WindowChunker) GetChunkOverlap() int {
	return wc.config.ChunkOverlap
}

var _ interfaces.Chunker = (*WindowChunker)(nil)
