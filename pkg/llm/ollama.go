package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// ollamaChatRequest is the request body for Ollama's /api/chat endpoint
type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaChatResponse is the non-streaming response body
type ollamaChatResponse struct {
	Model   string            `json:"model"`
	Message ollamaChatMessage `json:"message"`
	Done    bool              `json:"done"`
	Error   string            `json:"error,omitempty"`
}

// OllamaLLM implements the LLM interface for a local Ollama server
type OllamaLLM struct {
	*BaseLLM
	httpClient *resty.Client
	config     *LLMConfig
}

// NewOllamaLLM creates a new Ollama LLM instance
func NewOllamaLLM(config *LLMConfig) (*OllamaLLM, error) {
	if config == nil {
		return nil, errors.NewConfigError("config cannot be nil")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(config.RetryAttempts).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	l := &OllamaLLM{
		BaseLLM:    NewBaseLLM(config.Model),
		httpClient: httpClient,
		config:     config,
	}
	l.SetMaxTokens(config.MaxTokens)
	l.SetTemperature(config.Temperature)
	l.SetTopP(config.TopP)
	l.SetTimeout(config.Timeout)

	return l, nil
}

// Generate generates text based on messages
func (o *OllamaLLM) Generate(ctx context.Context, messages types.MessageList) (string, error) {
	if err := o.ValidateMessages(messages); err != nil {
		return "", errors.NewInvalidInputError(err.Error())
	}

	ollamaMessages := make([]ollamaChatMessage, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollamaChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	req := ollamaChatRequest{
		Model:    o.GetModelName(),
		Messages: ollamaMessages,
		Stream:   false,
		Options: map[string]interface{}{
			"temperature": o.GetTemperature(),
			"top_p":       o.GetTopP(),
			"num_predict": o.GetMaxTokens(),
		},
	}

	var result ollamaChatResponse
	resp, err := o.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/chat")
	if err != nil {
		return "", errors.NewLLMAPIError("Ollama request failed", err)
	}
	if resp.IsError() {
		return "", errors.NewLLMError(fmt.Sprintf("Ollama returned status %d: %s", resp.StatusCode(), resp.String()))
	}
	if result.Error != "" {
		return "", errors.NewLLMError(result.Error)
	}

	return result.Message.Content, nil
}

var _ interfaces.LLM = (*OllamaLLM)(nil)
