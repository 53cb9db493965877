// Package vecstore provides the persistent, cached vector store for AgriAssist
package vecstore

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// Vectors are persisted as little-endian packed 32-bit floats, 4 bytes per
// component. The byte order is fixed so stored blobs stay portable across
// platform versions.

// ToBytes encodes a vector into its packed byte representation.
func ToBytes(vector types.EmbeddingVector) []byte {
	buf := make([]byte, 4*len(vector))
	for i, f := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// FromBytes decodes a packed byte representation back into a vector.
// It is the exact inverse of ToBytes for any finite float array.
func FromBytes(data []byte) (types.EmbeddingVector, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("vector blob length %d is not a multiple of 4", len(data))
	}
	vector := make(types.EmbeddingVector, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vector, nil
}

// CosineSimilarity computes the normalized dot product of two vectors.
// Mismatched lengths or zero-magnitude inputs yield 0 rather than an error.
func CosineSimilarity(a, b types.EmbeddingVector) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
