package embedders

import (
	"fmt"
	"sync"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// EmbedderProvider defines the interface for embedder providers
type EmbedderProvider interface {
	// Create creates a new embedder instance with the given configuration
	Create(config *EmbedderConfig) (interfaces.Embedder, error)

	// GetBackendType returns the backend type this provider supports
	GetBackendType() types.BackendType
}

// HashProvider implements EmbedderProvider for the deterministic hashing
// embedder
type HashProvider struct{}

// Create creates a new hashing embedder
func (p *HashProvider) Create(config *EmbedderConfig) (interfaces.Embedder, error) {
	return NewHashEmbedder(config)
}

// GetBackendType returns the backend type
func (p *HashProvider) GetBackendType() types.BackendType {
	return types.BackendHash
}

// OpenAIProvider implements EmbedderProvider for OpenAI embeddings
type OpenAIProvider struct{}

// Create creates a new OpenAI embedder
func (p *OpenAIProvider) Create(config *EmbedderConfig) (interfaces.Embedder, error) {
	return NewOpenAIEmbedder(config)
}

// GetBackendType returns the backend type
func (p *OpenAIProvider) GetBackendType() types.BackendType {
	return types.BackendOpenAI
}

// EmbedderFactory manages registration and creation of embedder
// implementations
type EmbedderFactory struct {
	providers map[types.BackendType]EmbedderProvider
	mu        sync.RWMutex
}

// NewEmbedderFactory creates a new embedder factory
func NewEmbedderFactory() *EmbedderFactory {
	return &EmbedderFactory{
		providers: make(map[types.BackendType]EmbedderProvider),
	}
}

// RegisterProvider registers an embedder provider
func (f *EmbedderFactory) RegisterProvider(provider EmbedderProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	backend := provider.GetBackendType()
	if _, exists := f.providers[backend]; exists {
		return fmt.Errorf("provider for backend %s is already registered", backend)
	}
	f.providers[backend] = provider
	return nil
}

// Create creates a new embedder instance
func (f *EmbedderFactory) Create(config *EmbedderConfig) (interfaces.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f.mu.RLock()
	provider, exists := f.providers[config.Backend]
	f.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("provider for backend %s is not registered", config.Backend)
	}

	return provider.Create(config)
}

// Global factory instance
var (
	defaultFactory *EmbedderFactory
	factoryOnce    sync.Once
)

// GetFactory returns the default embedder factory with built-in providers
func GetFactory() *EmbedderFactory {
	factoryOnce.Do(func() {
		defaultFactory = NewEmbedderFactory()
		defaultFactory.RegisterProvider(&HashProvider{})
		defaultFactory.RegisterProvider(&OpenAIProvider{})
	})
	return defaultFactory
}

// NewFromConfig creates an embedder using the default factory
func NewFromConfig(config *EmbedderConfig) (interfaces.Embedder, error) {
	return GetFactory().Create(config)
}
