package vecstore

import (
	"fmt"
	"sync"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// StoreProvider defines the interface for vector store providers
type StoreProvider interface {
	// Create creates a new store instance with the given configuration
	Create(config *StoreConfig, logger interfaces.Logger) (interfaces.VectorStore, error)

	// GetBackendType returns the backend type this provider supports
	GetBackendType() types.BackendType
}

// SQLiteProvider implements StoreProvider for the SQLite-backed store
type SQLiteProvider struct{}

// Create creates a new SQLite vector store
func (p *SQLiteProvider) Create(config *StoreConfig, logger interfaces.Logger) (interfaces.VectorStore, error) {
	return NewSQLiteStore(config, logger)
}

// GetBackendType returns the backend type
func (p *SQLiteProvider) GetBackendType() types.BackendType {
	return types.BackendSQLite
}

// MemoryProvider implements StoreProvider for the in-memory store
type MemoryProvider struct{}

// Create creates a new in-memory vector store
func (p *MemoryProvider) Create(config *StoreConfig, logger interfaces.Logger) (interfaces.VectorStore, error) {
	return NewMemoryStore(config)
}

// GetBackendType returns the backend type
func (p *MemoryProvider) GetBackendType() types.BackendType {
	return types.BackendMemory
}

// StoreFactory manages registration and creation of store implementations
type StoreFactory struct {
	providers map[types.BackendType]StoreProvider
	mu        sync.RWMutex
}

// NewStoreFactory creates a new store factory
func NewStoreFactory() *StoreFactory {
	return &StoreFactory{
		providers: make(map[types.BackendType]StoreProvider),
	}
}

// RegisterProvider registers a store provider
func (f *StoreFactory) RegisterProvider(provider StoreProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	backend := provider.GetBackendType()
	if _, exists := f.providers[backend]; exists {
		return fmt.Errorf("provider for backend %s is already registered", backend)
	}
	f.providers[backend] = provider
	return nil
}

// Create creates a new store instance
func (f *StoreFactory) Create(config *StoreConfig, logger interfaces.Logger) (interfaces.VectorStore, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f.mu.RLock()
	provider, exists := f.providers[config.Backend]
	f.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("provider for backend %s is not registered", config.Backend)
	}

	return provider.Create(config, logger)
}

// Global factory instance
var (
	defaultFactory *StoreFactory
	factoryOnce    sync.Once
)

// GetFactory returns the default store factory with built-in providers
func GetFactory() *StoreFactory {
	factoryOnce.Do(func() {
		defaultFactory = NewStoreFactory()
		defaultFactory.RegisterProvider(&SQLiteProvider{})
		defaultFactory.RegisterProvider(&MemoryProvider{})
	})
	return defaultFactory
}

// NewFromConfig creates a store using the default factory
func NewFromConfig(config *StoreConfig, logger interfaces.Logger) (interfaces.VectorStore, error) {
	return GetFactory().Create(config, logger)
}
