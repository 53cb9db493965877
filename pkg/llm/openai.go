package llm

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/sashabaranov/go-openai"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// OpenAILLM implements the LLM interface for OpenAI chat models
type OpenAILLM struct {
	*BaseLLM
	client *openai.Client
	config *LLMConfig
}

// NewOpenAILLM creates a new OpenAI LLM instance
func NewOpenAILLM(config *LLMConfig) (*OpenAILLM, error) {
	if config == nil {
		return nil, errors.NewConfigError("config cannot be nil")
	}
	if config.APIKey == "" {
		return nil, errors.NewConfigInvalidError("OpenAI API key is required")
	}

	openaiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		openaiConfig.BaseURL = config.BaseURL
	}

	l := &OpenAILLM{
		BaseLLM: NewBaseLLM(config.Model),
		client:  openai.NewClientWithConfig(openaiConfig),
		config:  config,
	}
	l.SetMaxTokens(config.MaxTokens)
	l.SetTemperature(config.Temperature)
	l.SetTopP(config.TopP)
	l.SetTimeout(config.Timeout)

	return l, nil
}

// Generate generates text based on messages
func (o *OpenAILLM) Generate(ctx context.Context, messages types.MessageList) (string, error) {
	if err := o.ValidateMessages(messages); err != nil {
		return "", errors.NewInvalidInputError(err.Error())
	}

	openaiMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		openaiMessages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       o.GetModelName(),
		Messages:    openaiMessages,
		MaxTokens:   o.GetMaxTokens(),
		Temperature: float32(o.GetTemperature()),
		TopP:        float32(o.GetTopP()),
	}

	attempts := uint(o.config.RetryAttempts)
	if attempts == 0 {
		attempts = 1
	}

	var resp openai.ChatCompletionResponse
	err := retry.Do(
		func() error {
			var reqErr error
			resp, reqErr = o.client.CreateChatCompletion(ctx, req)
			return reqErr
		},
		retry.Attempts(attempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
	)
	if err != nil {
		return "", errors.NewLLMAPIError("OpenAI request failed", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.NewLLMError("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

var _ interfaces.LLM = (*OpenAILLM)(nil)
