package llm

import (
	"fmt"
	"sync"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// Create creates a new LLM instance with the given configuration
	Create(config *LLMConfig) (interfaces.LLM, error)

	// GetBackendType returns the backend type this provider supports
	GetBackendType() types.BackendType
}

// OpenAIProvider implements LLMProvider for OpenAI
type OpenAIProvider struct{}

// Create creates a new OpenAI LLM
func (p *OpenAIProvider) Create(config *LLMConfig) (interfaces.LLM, error) {
	return NewOpenAILLM(config)
}

// GetBackendType returns the backend type
func (p *OpenAIProvider) GetBackendType() types.BackendType {
	return types.BackendOpenAI
}

// OllamaProvider implements LLMProvider for Ollama
type OllamaProvider struct{}

// Create creates a new Ollama LLM
func (p *OllamaProvider) Create(config *LLMConfig) (interfaces.LLM, error) {
	return NewOllamaLLM(config)
}

// GetBackendType returns the backend type
func (p *OllamaProvider) GetBackendType() types.BackendType {
	return types.BackendOllama
}

// LLMFactory manages registration and creation of LLM implementations
type LLMFactory struct {
	providers map[types.BackendType]LLMProvider
	mu        sync.RWMutex
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory() *LLMFactory {
	return &LLMFactory{
		providers: make(map[types.BackendType]LLMProvider),
	}
}

// RegisterProvider registers an LLM provider
func (f *LLMFactory) RegisterProvider(provider LLMProvider) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	backend := provider.GetBackendType()
	if _, exists := f.providers[backend]; exists {
		return fmt.Errorf("provider for backend %s is already registered", backend)
	}
	f.providers[backend] = provider
	return nil
}

// Create creates a new LLM instance
func (f *LLMFactory) Create(config *LLMConfig) (interfaces.LLM, error) {
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
	defaultFactory *LLMFactory
	factoryOnce    sync.Once
)

// GetFactory returns the default LLM factory with built-in providers
func GetFactory() *LLMFactory {
	factoryOnce.Do(func() {
		defaultFactory = NewLLMFactory()
		defaultFactory.RegisterProvider(&OpenAIProvider{})
		defaultFactory.RegisterProvider(&OllamaProvider{})
	})
	return defaultFactory
}

// NewFromConfig creates an LLM using the default factory
func NewFromConfig(config *LLMConfig) (interfaces.LLM, error) {
	return GetFactory().Create(config)
}
