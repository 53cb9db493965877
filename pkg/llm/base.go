// Package llm provides text-generation backends for AgriAssist
package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// BaseLLM provides common functionality for all LLM implementations
type BaseLLM struct {
	modelName   string
	maxTokens   int
	temperature float64
	topP        float64
	timeout     time.Duration
}

// NewBaseLLM creates a new base LLM instance
func NewBaseLLM(modelName string) *BaseLLM {
	return &BaseLLM{
		modelName:   modelName,
		maxTokens:   1024,
		temperature: 0.7,
		topP:        0.9,
		timeout:     30 * time.Second,
	}
}

// SetMaxTokens sets the maximum number of tokens
func (b *BaseLLM) SetMaxTokens(maxTokens int) {
	if maxTokens > 0 {
		b.maxTokens = maxTokens
	}
}

// SetTemperature sets the temperature for generation
func (b *BaseLLM) SetTemperature(temperature float64) {
	b.temperature = temperature
}

// SetTopP sets the top-p value for nucleus sampling
func (b *BaseLLM) SetTopP(topP float64) {
	b.topP = topP
}

// SetTimeout sets the request timeout
func (b *BaseLLM) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		b.timeout = timeout
	}
}

// GetMaxTokens returns the maximum number of tokens
func (b *BaseLLM) GetMaxTokens() int { return b.maxTokens }

// GetTemperature returns the temperature
func (b *BaseLLM) GetTemperature() float64 { return b.temperature }

// GetTopP returns the top-p value
func (b *BaseLLM) GetTopP() float64 { return b.topP }

// GetTimeout returns the request timeout
func (b *BaseLLM) GetTimeout() time.Duration { return b.timeout }

// GetModelName returns the model name
func (b *BaseLLM) GetModelName() string { return b.modelName }

// GetModelInfo returns model information
func (b *BaseLLM) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"model":       b.modelName,
		"max_tokens":  b.maxTokens,
		"temperature": b.temperature,
		"top_p":       b.topP,
		"timeout":     b.timeout.String(),
	}
}

// ValidateMessages validates the message list
func (b *BaseLLM) ValidateMessages(messages types.MessageList) error {
	if len(messages) == 0 {
		return fmt.Errorf("empty message list")
	}

	for i, msg := range messages {
		if msg.Role == "" {
			return fmt.Errorf("message %d: role is required", i)
		}
		if msg.Content == "" {
			return fmt.Errorf("message %d: content is required", i)
		}
		if msg.Role != types.MessageRoleUser &&
			msg.Role != types.MessageRoleAssistant &&
			msg.Role != types.MessageRoleSystem {
			return fmt.Errorf("message %d: invalid role %s", i, msg.Role)
		}
	}

	return nil
}

// BuildPrompt flattens a message list into a single prompt string for
// backends without a chat-structured API
func (b *BaseLLM) BuildPrompt(messages types.MessageList) string {
	var builder strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case types.MessageRoleSystem:
			builder.WriteString(fmt.Sprintf("System: %s\n", msg.Content))
		case types.MessageRoleUser:
			builder.WriteString(fmt.Sprintf("User: %s\n", msg.Content))
		case types.MessageRoleAssistant:
			builder.WriteString(fmt.Sprintf("Assistant: %s\n", msg.Content))
		}
	}
	return builder.String()
}

// Close provides default close implementation
func (b *BaseLLM) Close() error {
	return nil
}

// LLMConfig represents configuration for LLM instances
type LLMConfig struct {
	Backend     types.BackendType `yaml:"backend" json:"backend" validate:"required,oneof=openai ollama"`
	Model       string            `yaml:"model" json:"model" validate:"required"`
	APIKey      string            `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL     string            `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	MaxTokens   int               `yaml:"max_tokens,omitempty" json:"max_tokens,omitempty"`
	Temperature float64           `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	TopP        float64           `yaml:"top_p,omitempty" json:"top_p,omitempty"`
	Timeout     time.Duration     `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	// RetryAttempts bounds transient-failure retries inside a backend.
	// The assistant's answer path never retries on its own.
	RetryAttempts int `yaml:"retry_attempts,omitempty" json:"retry_attempts,omitempty"`
}

// Validate validates the LLM configuration
func (c *LLMConfig) Validate() error {
	if c.Backend == "" {
		return errors.NewConfigInvalidError("llm backend is required")
	}
	if c.Model == "" {
		return errors.NewConfigInvalidError("llm model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.NewConfigInvalidError("temperature must be between 0 and 2")
	}
	if c.TopP < 0 || c.TopP > 1 {
		return errors.NewConfigInvalidError("top_p must be between 0 and 1")
	}
	return nil
}

// DefaultLLMConfig returns default LLM configuration
func DefaultLLMConfig() *LLMConfig {
	return &LLMConfig{
		Backend:       types.BackendOllama,
		Model:         "llama3",
		BaseURL:       "http://localhost:11434",
		MaxTokens:     1024,
		Temperature:   0.7,
		TopP:          0.9,
		Timeout:       60 * time.Second,
		RetryAttempts: 3,
	}
}
