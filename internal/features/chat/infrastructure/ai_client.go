package infrastructure

import "context"

// GenerationRequest is a single, non-streaming generation call.
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	Temperature       float64
	TopP              float64
	MaxTokens         int
}

// Usage reports token counts as returned by the API.
type Usage struct {
	PromptTokens int
	OutputTokens int
	TotalTokens  int
}

// Generation is the first candidate of a generation response.
type Generation struct {
	Text         string
	FinishReason string
	Usage        *Usage // nil when the API did not report usage
}

// Generator defines a generic interface for text generation services.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*Generation, error)
}
