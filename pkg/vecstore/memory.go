package vecstore

import (
	"context"
	"sync"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// MemoryStore keeps every entry in process memory only. It implements the
// same semantics as SQLiteStore (upsert, insertion-order tie break, owner
// scoping) without durability, for tests and ephemeral deployments.
type MemoryStore struct {
	config *StoreConfig

	mu          sync.Mutex
	cache       []*types.VectorEntry
	index       map[string]int
	initialized bool
}

// NewMemoryStore creates an in-memory vector store
func NewMemoryStore(config *StoreConfig) (*MemoryStore, error) {
	if config == nil {
		config = DefaultStoreConfig()
		config.Backend = types.BackendMemory
		config.Path = ""
	}
	if config.Dimension <= 0 {
		return nil, errors.NewConfigInvalidError("store dimension must be positive")
	}
	return &MemoryStore{
		config: config,
		index:  make(map[string]int),
	}, nil
}

// Initialize marks the store ready; there is no durable layer to load.
func (s *MemoryStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initialized = true
	return nil
}

// Insert upserts a single entry
func (s *MemoryStore) Insert(ctx context.Context, entry *types.VectorEntry) error {
	if err := s.validateEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := entry.Clone()
	if pos, ok := s.index[clone.ID]; ok {
		s.cache[pos] = clone
		return nil
	}
	s.index[clone.ID] = len(s.cache)
	s.cache = append(s.cache, clone)
	return nil
}

// InsertBatch upserts entries as a unit
func (s *MemoryStore) InsertBatch(ctx context.Context, entries []*types.VectorEntry) error {
	for _, entry := range entries {
		if err := s.validateEntry(entry); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if err := s.Insert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// Search ranks entries by cosine similarity against query
func (s *MemoryStore) Search(ctx context.Context, query types.EmbeddingVector, topK int, minScore float32, ownerFilter string) ([]*types.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, errors.NewStoreError("vector store not initialized")
	}
	return scanEntries(s.cache, query, topK, minScore, ownerFilter), nil
}

// Delete removes an entry; no-op when absent
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	s.cache = append(s.cache[:pos], s.cache[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.cache); i++ {
		s.index[s.cache[i].ID] = i
	}
	return nil
}

// DeleteByOwner removes all entries belonging to ownerID
func (s *MemoryStore) DeleteByOwner(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.NewInvalidInputError("owner ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cache[:0]
	for _, e := range s.cache {
		if e.OwnerID != ownerID {
			kept = append(kept, e)
		}
	}
	s.cache = kept
	s.index = make(map[string]int, len(s.cache))
	for i, e := range s.cache {
		s.index[e.ID] = i
	}
	return nil
}

// DeleteByOwnerKind removes the owner's entries of one source kind only
func (s *MemoryStore) DeleteByOwnerKind(ctx context.Context, ownerID string, kind types.SourceKind) error {
	if ownerID == "" {
		return errors.NewInvalidInputError("owner ID cannot be empty")
	}
	if !kind.Valid() {
		return errors.NewInvalidInputError("invalid source kind: " + string(kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cache[:0]
	for _, e := range s.cache {
		if e.OwnerID != ownerID || e.SourceKind != kind {
			kept = append(kept, e)
		}
	}
	s.cache = kept
	s.index = make(map[string]int, len(s.cache))
	for i, e := range s.cache {
		s.index[e.ID] = i
	}
	return nil
}

// Count returns the number of stored entries
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.cache)), nil
}

// Clear removes every entry
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.index = make(map[string]int)
	return nil
}

// Close is a no-op for the memory store
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) validateEntry(entry *types.VectorEntry) error {
	if entry == nil {
		return errors.NewInvalidInputError("entry cannot be nil")
	}
	if err := entry.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if len(entry.Vector) != s.config.Dimension {
		return errors.NewDimensionMismatchError(s.config.Dimension, len(entry.Vector))
	}
	return nil
}

var _ interfaces.VectorStore = (*MemoryStore)(nil)
