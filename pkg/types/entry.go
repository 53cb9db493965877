package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntryMetadata describes a vector entry. Fields are typed rather than a
// free-form map; Tags carries forward-compatible extra data as a
// comma-separated string.
type EntryMetadata struct {
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content,omitempty"`
	Category  string    `json:"category,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// DefaultTitle is used when an entry was stored without a title.
const DefaultTitle = "Untitled"

// DefaultCategory is used when an entry was stored without a category.
const DefaultCategory = "general"

// TitleOrDefault returns the title, defaulting when absent.
func (m EntryMetadata) TitleOrDefault() string {
	if m.Title == "" {
		return DefaultTitle
	}
	return m.Title
}

// CategoryOrDefault returns the category, defaulting when absent.
func (m EntryMetadata) CategoryOrDefault() string {
	if m.Category == "" {
		return DefaultCategory
	}
	return m.Category
}

// VectorEntry is one row of the vector store: an embedded chunk of knowledge
// plus its provenance. Profile and insight entries always carry the owning
// farmer's ID; general entries have OwnerID == "".
type VectorEntry struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id,omitempty"`
	SourceKind SourceKind      `json:"source_kind"`
	Vector     EmbeddingVector `json:"vector"`
	Metadata   EntryMetadata   `json:"metadata"`
}

// NewVectorEntry creates a general-knowledge entry, generating an ID when
// none is supplied.
func NewVectorEntry(id string, vector EmbeddingVector, meta EntryMetadata) *VectorEntry {
	if id == "" {
		id = uuid.New().String()
	}
	return &VectorEntry{
		ID:         id,
		SourceKind: SourceKindGeneral,
		Vector:     vector,
		Metadata:   meta,
	}
}

// NewOwnedVectorEntry creates a profile or insights entry for a farmer.
func NewOwnedVectorEntry(id, ownerID string, kind SourceKind, vector EmbeddingVector, meta EntryMetadata) *VectorEntry {
	e := NewVectorEntry(id, vector, meta)
	e.OwnerID = ownerID
	e.SourceKind = kind
	return e
}

// Validate checks the entry's structural invariants.
func (e *VectorEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}
	if !e.SourceKind.Valid() {
		return fmt.Errorf("invalid source kind: %s", e.SourceKind)
	}
	if e.SourceKind.Personal() && e.OwnerID == "" {
		return fmt.Errorf("%s entry requires an owner ID", e.SourceKind)
	}
	if len(e.Vector) == 0 {
		return fmt.Errorf("entry vector cannot be empty")
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e *VectorEntry) Clone() *VectorEntry {
	c := *e
	c.Vector = make(EmbeddingVector, len(e.Vector))
	copy(c.Vector, e.Vector)
	return &c
}
