package vecstore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Run("PreservesValues", func(t *testing.T) {
		original := types.EmbeddingVector{0.1, -2.5, 3.75, 0, 1e-7, float32(math.Pi)}

		data := ToBytes(original)
		assert.Equal(t, 4*len(original), len(data))

		decoded, err := FromBytes(data)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("EmptyVector", func(t *testing.T) {
		data := ToBytes(types.EmbeddingVector{})
		assert.Empty(t, data)

		decoded, err := FromBytes(data)
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("RejectsTruncatedBlob", func(t *testing.T) {
		data := ToBytes(types.EmbeddingVector{1, 2, 3})
		_, err := FromBytes(data[:len(data)-1])
		assert.Error(t, err)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("SelfSimilarityIsOne", func(t *testing.T) {
		v := types.EmbeddingVector{0.5, -0.3, 0.8, 0.1}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-5)
	})

	t.Run("OppositeVectorsScoreMinusOne", func(t *testing.T) {
		a := types.EmbeddingVector{1, 2, 3}
		b := types.EmbeddingVector{-1, -2, -3}
		assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-5)
	})

	t.Run("OrthogonalVectorsScoreZero", func(t *testing.T) {
		a := types.EmbeddingVector{1, 0}
		b := types.EmbeddingVector{0, 1}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-5)
	})

	t.Run("MismatchedLengthsScoreZero", func(t *testing.T) {
		a := types.EmbeddingVector{1, 2, 3}
		b := types.EmbeddingVector{1, 2}
		assert.Equal(t, float32(0), CosineSimilarity(a, b))
	})

	t.Run("ZeroVectorScoresZero", func(t *testing.T) {
		a := types.EmbeddingVector{0, 0, 0}
		b := types.EmbeddingVector{1, 2, 3}
		assert.Equal(t, float32(0), CosineSimilarity(a, b))
	})
}
