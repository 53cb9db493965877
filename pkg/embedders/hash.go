package embedders

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// hashSeeds give each token three independent vector indices. The per-index
// contributions decay so the primary index dominates.
var hashSeeds = [3]byte{0x01, 0x5f, 0xc3}

var seedScales = [3]float32{1.0, 0.7, 0.5}

// importantTermBoost multiplies the weight of tokens in the compiled
// important-term set.
const importantTermBoost = 1.5

// HashEmbedder is a deterministic bag-of-hashed-words embedder. It is a pure
// function of the input text and the compiled vocabulary: no model, no
// network, bit-identical output for identical input. Empty or
// whitespace-only text yields the zero vector, which callers must treat as
// "no signal".
type HashEmbedder struct {
	*BaseEmbedder
	config *EmbedderConfig
}

// NewHashEmbedder creates a new deterministic hashing embedder
func NewHashEmbedder(config *EmbedderConfig) (*HashEmbedder, error) {
	if config == nil {
		config = DefaultEmbedderConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &HashEmbedder{
		BaseEmbedder: NewBaseEmbedder(config.Model, config.Dimension),
		config:       config,
	}, nil
}

// Embed generates an embedding for text
func (h *HashEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	vector := make(types.EmbeddingVector, h.GetDimension())

	tokens := h.tokenize(text)
	if len(tokens) == 0 {
		return vector, nil
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	dim := uint64(h.GetDimension())
	for tok, count := range freq {
		weight := float32(1 + math.Log(float64(count)))
		if _, ok := importantTerms[tok]; ok {
			weight *= importantTermBoost
		}
		for s, seed := range hashSeeds {
			idx := hashToken(tok, seed) % dim
			vector[idx] += weight * seedScales[s]
		}
	}

	return h.NormalizeVector(vector), nil
}

// EmbedBatch generates embeddings for multiple texts
func (h *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	vectors := make([]types.EmbeddingVector, len(texts))
	for i, text := range texts {
		v, err := h.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// tokenize lowercases, strips non-alphanumerics, splits on whitespace and
// appends the canonical synonym for tokens that have one.
func (h *HashEmbedder) tokenize(text string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(' ')
		}
	}

	fields := strings.Fields(sb.String())
	tokens := make([]string, 0, len(fields)*2)
	for _, tok := range fields {
		tokens = append(tokens, tok)
		if canonical, ok := synonyms[tok]; ok {
			tokens = append(tokens, canonical)
		}
	}
	return tokens
}

// hashToken derives a seeded 64-bit hash of the token
func hashToken(token string, seed byte) uint64 {
	hash := fnv.New64a()
	hash.Write([]byte{seed})
	hash.Write([]byte(token))
	return hash.Sum64()
}

var _ interfaces.Embedder = (*HashEmbedder)(nil)
