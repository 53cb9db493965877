package vecstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// vectorRow is the durable representation of a vector entry. id must stay
// the table's only primary key: the upsert clauses below conflict on it.
// Insertion order is recovered from sqlite's implicit rowid, which an
// ON CONFLICT update leaves in place, so upserted entries keep their
// original position across restarts.
type vectorRow struct {
	ID           string  `gorm:"column:id;primaryKey"`
	OwnerID      *string `gorm:"column:owner_id"`
	SourceKind   *string `gorm:"column:source_kind"`
	VectorBlob   []byte  `gorm:"column:vector_blob"`
	MetadataJSON string  `gorm:"column:metadata_json"`
}

// TableName sets the table name for gorm
func (vectorRow) TableName() string {
	return "vector_entries"
}

// SQLiteStore mirrors a SQLite table of vector entries into an in-memory
// list for fast linear-scan search. A single mutex serializes every cache
// access; readers and writers are mutually exclusive, which is fine for the
// low-volume single-user traffic this store serves. The raw cache list is
// never handed out.
type SQLiteStore struct {
	config *StoreConfig
	db     *gorm.DB
	logger interfaces.Logger

	mu          sync.Mutex
	cache       []*types.VectorEntry
	index       map[string]int
	initialized bool
}

// NewSQLiteStore opens (or creates) the durable table and returns the store.
// Initialize must still be called before searching.
func NewSQLiteStore(config *StoreConfig, log interfaces.Logger) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultStoreConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(config.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewStoreErrorWithCause("failed to create store directory", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(config.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewStoreErrorWithCause("failed to open vector store", err)
	}

	if err := db.AutoMigrate(&vectorRow{}); err != nil {
		return nil, errors.NewStoreErrorWithCause("failed to migrate vector table", err)
	}

	return &SQLiteStore{
		config: config,
		db:     db,
		logger: log,
		index:  make(map[string]int),
	}, nil
}

// Initialize loads the entire durable table into the cache. Idempotent.
// Rows that fail to decode are skipped with a warning so one corrupt entry
// never aborts the whole load.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.reloadLocked(ctx); err != nil {
		return err
	}
	s.initialized = true
	s.logger.Info("vector store initialized", map[string]interface{}{
		"entries": len(s.cache),
		"path":    s.config.Path,
	})
	return nil
}

// reloadLocked replaces the cache from durable state. Caller holds s.mu.
func (s *SQLiteStore) reloadLocked(ctx context.Context) error {
	var rows []vectorRow
	if err := s.db.WithContext(ctx).Order("rowid asc").Find(&rows).Error; err != nil {
		return errors.NewQueryFailedError(err)
	}

	cache := make([]*types.VectorEntry, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		entry, err := s.decodeRow(&row)
		if err != nil {
			s.logger.Warn("skipping corrupt vector row", map[string]interface{}{
				"id":    row.ID,
				"error": err.Error(),
			})
			continue
		}
		index[entry.ID] = len(cache)
		cache = append(cache, entry)
	}

	s.cache = cache
	s.index = index
	return nil
}

func (s *SQLiteStore) decodeRow(row *vectorRow) (*types.VectorEntry, error) {
	vector, err := FromBytes(row.VectorBlob)
	if err != nil {
		return nil, errors.NewStoreCorruptedError(row.ID, err)
	}
	if len(vector) != s.config.Dimension {
		return nil, errors.NewDimensionMismatchError(s.config.Dimension, len(vector))
	}

	var meta types.EntryMetadata
	if row.MetadataJSON != "" {
		if err := json.Unmarshal([]byte(row.MetadataJSON), &meta); err != nil {
			return nil, errors.NewStoreCorruptedError(row.ID, err)
		}
	}

	entry := &types.VectorEntry{
		ID:         row.ID,
		SourceKind: types.SourceKindGeneral,
		Vector:     vector,
		Metadata:   meta,
	}
	if row.OwnerID != nil {
		entry.OwnerID = *row.OwnerID
	}
	if row.SourceKind != nil && types.SourceKind(*row.SourceKind).Valid() {
		entry.SourceKind = types.SourceKind(*row.SourceKind)
	}
	return entry, nil
}

func (s *SQLiteStore) encodeRow(entry *types.VectorEntry) (*vectorRow, error) {
	metaJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return nil, errors.NewStoreErrorWithCause("failed to marshal metadata", err)
	}

	row := &vectorRow{
		ID:           entry.ID,
		VectorBlob:   ToBytes(entry.Vector),
		MetadataJSON: string(metaJSON),
	}
	if entry.OwnerID != "" {
		owner := entry.OwnerID
		row.OwnerID = &owner
	}
	kind := string(entry.SourceKind)
	row.SourceKind = &kind
	return row, nil
}

// Insert upserts a single entry: the durable row is written first and the
// cache only updated on success, so a failed write never leaves a cache
// entry the table does not have.
func (s *SQLiteStore) Insert(ctx context.Context, entry *types.VectorEntry) error {
	if err := s.validateEntry(entry); err != nil {
		return err
	}

	row, err := s.encodeRow(entry)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner_id", "source_kind", "vector_blob", "metadata_json"}),
	}).Create(row).Error
	if err != nil {
		s.logger.Error("vector insert failed", err, map[string]interface{}{"id": entry.ID})
		return errors.NewStoreErrorWithCause("failed to persist vector entry", err)
	}

	s.upsertCacheLocked(entry.Clone())
	return nil
}

// InsertBatch upserts entries as a unit inside one transaction, then does a
// full cache reload. The end state matches N sequential inserts.
func (s *SQLiteStore) InsertBatch(ctx context.Context, entries []*types.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		if err := s.validateEntry(entry); err != nil {
			return err
		}
	}

	rows := make([]*vectorRow, 0, len(entries))
	for _, entry := range entries {
		row, err := s.encodeRow(entry)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"owner_id", "source_kind", "vector_blob", "metadata_json"}),
			}).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("vector batch insert failed", err, map[string]interface{}{"count": len(entries)})
		return errors.NewStoreErrorWithCause("failed to persist vector batch", err)
	}

	return s.reloadLocked(ctx)
}

// upsertCacheLocked replaces or appends the cached entry. Caller holds s.mu.
func (s *SQLiteStore) upsertCacheLocked(entry *types.VectorEntry) {
	if pos, ok := s.index[entry.ID]; ok {
		s.cache[pos] = entry
		return
	}
	s.index[entry.ID] = len(s.cache)
	s.cache = append(s.cache, entry)
}

// Search ranks cached entries by cosine similarity against query.
func (s *SQLiteStore) Search(ctx context.Context, query types.EmbeddingVector, topK int, minScore float32, ownerFilter string) ([]*types.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStoreErrorWithCause("search cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, errors.NewStoreError("vector store not initialized")
	}
	return scanEntries(s.cache, query, topK, minScore, ownerFilter), nil
}

// Delete removes an entry from the table and the cache; no-op when absent.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Delete(&vectorRow{}, "id = ?", id).Error; err != nil {
		s.logger.Error("vector delete failed", err, map[string]interface{}{"id": id})
		return errors.NewStoreErrorWithCause("failed to delete vector entry", err)
	}

	if pos, ok := s.index[id]; ok {
		s.cache = append(s.cache[:pos], s.cache[pos+1:]...)
		delete(s.index, id)
		for i := pos; i < len(s.cache); i++ {
			s.index[s.cache[i].ID] = i
		}
	}
	return nil
}

// DeleteByOwner removes all and only the entries belonging to ownerID.
func (s *SQLiteStore) DeleteByOwner(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return errors.NewInvalidInputError("owner ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Delete(&vectorRow{}, "owner_id = ?", ownerID).Error; err != nil {
		s.logger.Error("vector delete by owner failed", err, map[string]interface{}{"owner_id": ownerID})
		return errors.NewStoreErrorWithCause("failed to delete owner entries", err)
	}

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

// DeleteByOwnerKind removes the owner's entries of one source kind only.
func (s *SQLiteStore) DeleteByOwnerKind(ctx context.Context, ownerID string, kind types.SourceKind) error {
	if ownerID == "" {
		return errors.NewInvalidInputError("owner ID cannot be empty")
	}
	if !kind.Valid() {
		return errors.NewInvalidInputError("invalid source kind: " + string(kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).
		Delete(&vectorRow{}, "owner_id = ? AND source_kind = ?", ownerID, string(kind)).Error; err != nil {
		s.logger.Error("vector delete by owner kind failed", err, map[string]interface{}{
			"owner_id": ownerID,
			"kind":     kind,
		})
		return errors.NewStoreErrorWithCause("failed to delete owner entries", err)
	}

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

// Count returns the durable row count.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&vectorRow{}).Count(&count).Error; err != nil {
		return 0, errors.NewQueryFailedError(err)
	}
	return count, nil
}

// Clear empties both the durable table and the cache.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&vectorRow{}).Error; err != nil {
		return errors.NewStoreErrorWithCause("failed to clear vector table", err)
	}
	s.cache = nil
	s.index = make(map[string]int)
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) validateEntry(entry *types.VectorEntry) error {
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

var _ interfaces.VectorStore = (*SQLiteStore)(nil)
