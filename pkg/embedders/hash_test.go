package embedders

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

func newTestEmbedder(t *testing.T) *HashEmbedder {
	t.Helper()
	embedder, err := NewHashEmbedder(nil)
	require.NoError(t, err)
	return embedder
}

func cosine(a, b types.EmbeddingVector) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestHashEmbedderDeterminism(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	first, err := embedder.Embed(ctx, "how to grow wheat in sandy soil")
	require.NoError(t, err)
	second, err := embedder.Embed(ctx, "how to grow wheat in sandy soil")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 128)
}

func TestHashEmbedderEmptyText(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		v, err := embedder.Embed(ctx, text)
		require.NoError(t, err)
		assert.Len(t, v, 128)
		assert.True(t, v.IsZero(), "expected zero vector for %q", text)
	}
}

func TestHashEmbedderUnitNorm(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	v, err := embedder.Embed(ctx, "rice needs standing water during tillering")
	require.NoError(t, err)

	var norm float64
	for _, f := range v {
		norm += float64(f) * float64(f)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-4)
}

func TestHashEmbedderCaseAndPunctuationInsensitive(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	a, err := embedder.Embed(ctx, "Wheat price in the market?")
	require.NoError(t, err)
	b, err := embedder.Embed(ctx, "wheat price in the market")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHashEmbedderSynonymExpansion(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	// "paddy" expands to its canonical "rice", so the two texts should be
	// far more similar than unrelated ones.
	paddy, err := embedder.Embed(ctx, "paddy cultivation")
	require.NoError(t, err)
	rice, err := embedder.Embed(ctx, "rice cultivation")
	require.NoError(t, err)
	unrelated, err := embedder.Embed(ctx, "tractor loan interest")
	require.NoError(t, err)

	assert.Greater(t, cosine(paddy, rice), 0.6)
	assert.Greater(t, cosine(paddy, rice), cosine(paddy, unrelated))
}

func TestHashEmbedderRepeatedTermsSaturate(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	// Log dampening keeps a repeated word from drowning everything else:
	// the repeated text still resembles the single occurrence strongly.
	once, err := embedder.Embed(ctx, "wheat harvest")
	require.NoError(t, err)
	many, err := embedder.Embed(ctx, "wheat wheat wheat wheat harvest")
	require.NoError(t, err)

	assert.Greater(t, cosine(once, many), 0.8)
}

func TestHashEmbedderBatch(t *testing.T) {
	ctx := context.Background()
	embedder := newTestEmbedder(t)

	vectors, err := embedder.EmbedBatch(ctx, []string{"wheat", "", "rice"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.False(t, vectors[0].IsZero())
	assert.True(t, vectors[1].IsZero())
	assert.False(t, vectors[2].IsZero())
}
