package vecstore

import (
	"sort"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// StoreConfig represents vector store configuration
type StoreConfig struct {
	Backend   types.BackendType `yaml:"backend" json:"backend" validate:"required,oneof=sqlite memory"`
	Path      string            `yaml:"path,omitempty" json:"path,omitempty"`
	Dimension int               `yaml:"dimension" json:"dimension" validate:"required,gt=0"`
}

// Validate validates the store configuration
func (c *StoreConfig) Validate() error {
	if c.Backend != types.BackendSQLite && c.Backend != types.BackendMemory {
		return errors.NewConfigInvalidError("store backend must be sqlite or memory")
	}
	if c.Backend == types.BackendSQLite && c.Path == "" {
		return errors.NewConfigInvalidError("sqlite store requires a path")
	}
	if c.Dimension <= 0 {
		return errors.NewConfigInvalidError("store dimension must be positive")
	}
	return nil
}

// DefaultStoreConfig returns default vector store configuration
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		Backend:   types.BackendSQLite,
		Path:      "agriassist.db",
		Dimension: 128,
	}
}

// SearchOptions represents options for similarity search
type SearchOptions struct {
	TopK        int     `json:"top_k"`
	MinScore    float32 `json:"min_score"`
	OwnerFilter string  `json:"owner_filter,omitempty"`
}

// DefaultSearchOptions returns default search options
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{
		TopK:     10,
		MinScore: 0.3,
	}
}

// scanEntries ranks cached entries against query by cosine similarity.
// Entries are scanned in insertion order so equal scores keep a stable,
// deterministic ordering. Zero-magnitude entry vectors never match.
func scanEntries(entries []*types.VectorEntry, query types.EmbeddingVector, topK int, minScore float32, ownerFilter string) []*types.SearchResult {
	if topK <= 0 {
		return nil
	}

	results := make([]*types.SearchResult, 0, len(entries))
	for _, e := range entries {
		if ownerFilter != "" && e.OwnerID != ownerFilter {
			continue
		}
		score := CosineSimilarity(query, e.Vector)
		if score < minScore {
			continue
		}
		results = append(results, &types.SearchResult{
			ID:         e.ID,
			OwnerID:    e.OwnerID,
			SourceKind: e.SourceKind,
			Score:      score,
			OwnerMatch: ownerFilter != "" && e.OwnerID == ownerFilter,
			Metadata:   e.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
