// Package interfaces defines the core interfaces for AgriAssist components
package interfaces

import (
	"context"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// Embedder defines the interface for embedding implementations
type Embedder interface {
	// Embed generates an embedding for text. Empty or whitespace-only text
	// yields a zero vector, never an error.
	Embed(ctx context.Context, text string) (types.EmbeddingVector, error)

	// EmbedBatch generates embeddings for multiple texts
	EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error)

	// GetDimension returns the embedding dimension
	GetDimension() int

	// Close closes the embedder
	Close() error
}

// VectorStore defines the interface for the durable, cached vector store
type VectorStore interface {
	// Initialize loads the durable table into the in-memory cache. Idempotent;
	// must be called before any search. Corrupt rows are skipped with a
	// logged warning.
	Initialize(ctx context.Context) error

	// Insert upserts a single entry: persisted first, then cached
	Insert(ctx context.Context, entry *types.VectorEntry) error

	// InsertBatch upserts entries as a unit
	InsertBatch(ctx context.Context, entries []*types.VectorEntry) error

	// Search ranks cached entries by cosine similarity against query.
	// Entries scoring below minScore are dropped; ownerFilter of "" means no
	// owner filtering. Results are sorted descending by score, ties broken
	// by insertion order, truncated to topK.
	Search(ctx context.Context, query types.EmbeddingVector, topK int, minScore float32, ownerFilter string) ([]*types.SearchResult, error)

	// Delete removes an entry by ID; no-op when absent
	Delete(ctx context.Context, id string) error

	// DeleteByOwner removes all entries belonging to an owner; no-op when none
	DeleteByOwner(ctx context.Context, ownerID string) error

	// DeleteByOwnerKind removes the owner's entries of one source kind only
	DeleteByOwnerKind(ctx context.Context, ownerID string, kind types.SourceKind) error

	// Count returns the number of durable rows
	Count(ctx context.Context) (int64, error)

	// Clear removes every entry from both layers
	Clear(ctx context.Context) error

	// Close releases the underlying database handle
	Close() error
}

// LLM defines the interface for text-generation backends
type LLM interface {
	// Generate generates text based on messages
	Generate(ctx context.Context, messages types.MessageList) (string, error)

	// GetModelInfo returns model information
	GetModelInfo() map[string]interface{}

	// Close closes the LLM connection
	Close() error
}

// Chunker defines the interface for text chunking implementations
type Chunker interface {
	// Chunk splits text into overlapping windows
	Chunk(ctx context.Context, text string) ([]string, error)

	// GetChunkSize returns the configured chunk size
	GetChunkSize() int
}

// ProfileStore manages a farmer's free-text profile blob
type ProfileStore interface {
	// Write fully overwrites the profile text
	Write(ownerID, text string) error

	// Read returns the profile text, or "" when absent (never an error)
	Read(ownerID string) (string, error)

	// Delete removes the stored profile; no-op when absent
	Delete(ownerID string) error
}

// InsightStore manages a farmer's append-only, deduplicated insight log
type InsightStore interface {
	// Append stores text as a timestamped insight line. Returns false
	// without error when text is blank or duplicates an existing line.
	Append(ownerID, text string) (bool, error)

	// Read returns the raw insight log, or "" when absent
	Read(ownerID string) (string, error)

	// List returns parsed insight lines in append order
	List(ownerID string) ([]types.InsightLine, error)

	// Clear removes the insight log; no-op when absent
	Clear(ownerID string) error
}

// InsightExtractor mines stable personal facts from a question/answer pair
type InsightExtractor interface {
	// Extract returns up to a capped number of candidate insight strings.
	// Best effort: collaborator failures degrade to an empty slice.
	Extract(ctx context.Context, query, answer string, existing []types.InsightLine) []string
}

// Scheduler runs background jobs, serialized per key
type Scheduler interface {
	// Start starts the scheduler
	Start(ctx context.Context) error

	// Stop drains and stops the scheduler
	Stop(ctx context.Context) error

	// Submit enqueues a job. Jobs sharing a key never run concurrently.
	Submit(key string, job func(ctx context.Context) error) error
}

// Assistant answers farmer questions over the retrieval pipeline
type Assistant interface {
	// Ask runs the full classify/embed/retrieve/generate pipeline. A second
	// Ask while one is in flight fails with a busy error.
	Ask(ctx context.Context, req *types.AskRequest) (*types.AskResponse, error)

	// Close releases held resources
	Close() error
}

// Logger defines the interface for logging implementations
type Logger interface {
	// Debug logs debug level messages
	Debug(msg string, fields ...map[string]interface{})

	// Info logs info level messages
	Info(msg string, fields ...map[string]interface{})

	// Warn logs warning level messages
	Warn(msg string, fields ...map[string]interface{})

	// Error logs error level messages
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs fatal level messages and exits
	Fatal(msg string, err error, fields ...map[string]interface{})

	// WithFields returns a logger with additional fields
	WithFields(fields map[string]interface{}) Logger
}

// Metrics defines the interface for metrics collection
type Metrics interface {
	// Counter increments a counter metric
	Counter(name string, value float64, labels map[string]string)

	// Gauge sets a gauge metric
	Gauge(name string, value float64, labels map[string]string)

	// Timer records timing metrics in seconds
	Timer(name string, seconds float64, labels map[string]string)
}
