// Package types defines the core types shared across AgriAssist components
package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the role of a message in a conversation
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// MessageDict represents a single message in a conversation
type MessageDict struct {
	Role    MessageRole `json:"role" validate:"required,oneof=user assistant system"`
	Content string      `json:"content" validate:"required"`
}

// MessageList represents a list of messages in a conversation
type MessageList []MessageDict

// SourceKind classifies where a vector entry came from
type SourceKind string

const (
	// SourceKindGeneral is shared agricultural knowledge, not tied to a farmer
	SourceKindGeneral SourceKind = "general"
	// SourceKindProfile is embedded from a farmer's profile text
	SourceKindProfile SourceKind = "profile"
	// SourceKindInsights is embedded from a farmer's deduplicated insight log
	SourceKindInsights SourceKind = "insights"
)

// Valid reports whether k is a known source kind.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceKindGeneral, SourceKindProfile, SourceKindInsights:
		return true
	}
	return false
}

// Personal reports whether entries of this kind must carry an owner ID.
func (k SourceKind) Personal() bool {
	return k == SourceKindProfile || k == SourceKindInsights
}

// EmbeddingVector represents an embedding vector
type EmbeddingVector []float32

// IsZero reports whether every component is zero. Zero vectors carry no
// signal and are excluded from similarity ranking.
func (v EmbeddingVector) IsZero() bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}

// SearchResult represents a single ranked hit from the vector store.
// Results are ephemeral: produced per query, never persisted.
type SearchResult struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id,omitempty"`
	SourceKind SourceKind    `json:"source_kind"`
	Score      float32       `json:"score"`
	OwnerMatch bool          `json:"owner_match"`
	Metadata   EntryMetadata `json:"metadata"`
}

// Intent is a coarse classification of a farmer's query
type Intent string

const (
	IntentWeather    Intent = "WEATHER"
	IntentMarket     Intent = "MARKET"
	IntentPest       Intent = "PEST"
	IntentScheme     Intent = "SCHEME"
	IntentCrop       Intent = "CROP"
	IntentSoil       Intent = "SOIL"
	IntentIrrigation Intent = "IRRIGATION"
	IntentUnknown    Intent = "UNKNOWN"
)

// Classification is the outcome of keyword-based intent scoring
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// AskRequest represents a question posed to the assistant
type AskRequest struct {
	Query   string `json:"query" validate:"required"`
	OwnerID string `json:"owner_id,omitempty"`
}

// AskResponse represents the assistant's answer
type AskResponse struct {
	Answer    string    `json:"answer"`
	Intent    Intent    `json:"intent"`
	Sources   []string  `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}

// InsightLine is one timestamped, deduplicated fact from a farmer's history
type InsightLine struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// BackendType represents the type of a pluggable backend
type BackendType string

const (
	BackendHash   BackendType = "hash"
	BackendOpenAI BackendType = "openai"
	BackendOllama BackendType = "ollama"
	BackendSQLite BackendType = "sqlite"
	BackendMemory BackendType = "memory"
	BackendLocal  BackendType = "local"
	BackendNATS   BackendType = "nats"
)

// ErrorType buckets errors for handling policy decisions
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeExternal   ErrorType = "external"
	ErrorTypeBusy       ErrorType = "busy"
)

// AgriError represents a structured error in AgriAssist
type AgriError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AgriError) Error() string {
	return e.Message
}

// ContextKey is the type for request-scoped context values
type ContextKey string

const (
	ContextKeyOwnerID   ContextKey = "owner_id"
	ContextKeyRequestID ContextKey = "request_id"
)

// RequestContext holds request-specific context information
type RequestContext struct {
	OwnerID   string
	RequestID string
}

// NewRequestContext creates a request context with a generated request ID
func NewRequestContext(ownerID string) *RequestContext {
	return &RequestContext{
		OwnerID:   ownerID,
		RequestID: uuid.New().String(),
	}
}

// GetRequestContext extracts request context from a Go context
func GetRequestContext(ctx context.Context) *RequestContext {
	return &RequestContext{
		OwnerID:   stringFromContext(ctx, ContextKeyOwnerID),
		RequestID: stringFromContext(ctx, ContextKeyRequestID),
	}
}

func stringFromContext(ctx context.Context, key ContextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
