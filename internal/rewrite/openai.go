package rewrite

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAIClient(cfg Settings) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key missing; set LLM_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.Opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// NewClient builds the client for the configured provider.
func NewClient(cfg Settings) (Client, error) {
	switch cfg.Provider {
	case "", "mock":
		return MockClient{}, nil
	case "openai":
		return NewOpenAIClient(cfg)
	case "deepseek":
		// OpenAI-compatible gateway; the endpoint must be given explicitly.
		if cfg.BaseURL == "" {
			return nil, errors.New("llm provider deepseek requires LLM_BASE_URL")
		}
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
