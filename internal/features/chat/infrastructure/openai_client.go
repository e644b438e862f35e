package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNoCandidates is returned when the API responds without any choice.
var ErrNoCandidates = errors.New("no candidates returned")

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client for baseURL; an empty baseURL keeps the OpenAI default.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key not set")
	}
	if model == "" {
		return nil, fmt.Errorf("model not set")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Generate sends one chat completion request and returns the first choice.
func (c *OpenAIClient) Generate(ctx context.Context, req GenerationRequest) (*Generation, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: wireFloat(req.Temperature),
		TopP:        wireFloat(req.TopP),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoCandidates
	}

	choice := resp.Choices[0]
	gen := &Generation{
		Text:         choice.Message.Content,
		FinishReason: string(choice.FinishReason),
	}
	if u := resp.Usage; u.TotalTokens > 0 || u.PromptTokens > 0 || u.CompletionTokens > 0 {
		gen.Usage = &Usage{
			PromptTokens: u.PromptTokens,
			OutputTokens: u.CompletionTokens,
			TotalTokens:  u.TotalTokens,
		}
	}
	return gen, nil
}

// wireFloat converts a sampling parameter for the request. go-openai drops
// zero values (omitempty), so 0 is sent as the smallest positive float32.
func wireFloat(v float64) float32 {
	if v == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(v)
}
