package llm

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/config"
)

// CompletionClient is the transport to the text-generation backend.
// Implementations must treat their inputs as read-only and perform no
// retries: a failed call is surfaced to the caller as-is.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements CompletionClient against any
// OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	model       string
	temperature float64
	maxTokens   int
	opts        []option.RequestOption
}

// NewOpenAIClient creates a client from the LLM config.
func NewOpenAIClient(cfg *config.LLMConfig) (*OpenAIClient, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &OpenAIClient{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		opts:        opts,
	}, nil
}

// Complete sends one chat completion request and returns the raw
// assistant content.
func (o *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if o.temperature > 0 {
		params.Temperature = openai.Float(o.temperature)
	}
	if o.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(o.maxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices from model")
	}
	return resp.Choices[0].Message.Content, nil
}
