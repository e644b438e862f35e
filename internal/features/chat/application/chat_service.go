package application

import (
	"context"
	"time"

	"feedback-chat/backend/internal/features/chat/domain"
	"feedback-chat/backend/internal/features/chat/infrastructure"
	promptdomain "feedback-chat/backend/internal/features/prompt/domain"
	"feedback-chat/backend/internal/platform/logger"
	"feedback-chat/backend/internal/platform/metrics"
	"feedback-chat/backend/internal/platform/requestid"
)

// ChatService defines the interface for the chat relay application service.
type ChatService interface {
	HandleChat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error)
}

// chatService is the implementation of ChatService.
type chatService struct {
	prompt    *promptdomain.PromptConfig
	generator infrastructure.Generator
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewChatService creates a new instance of chatService. A nil generator means
// no credential is configured and every call fails with domain.ErrMissingCredential.
func NewChatService(prompt *promptdomain.PromptConfig, generator infrastructure.Generator, log *logger.Logger, m *metrics.Metrics) ChatService {
	if log == nil {
		log = logger.NewNop()
	}
	return &chatService{prompt: prompt, generator: generator, log: log, metrics: m}
}

// HandleChat fills the prompt template, calls the generation API once and
// returns the first candidate's text as feedback.
func (s *chatService) HandleChat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	log := s.log
	if id := requestid.FromContext(ctx); id != "" {
		log = log.With("request_id", id)
	}

	if s.generator == nil {
		s.metrics.ObserveChat(metrics.OutcomeMissingCredential)
		log.Error("chat rejected", "error", domain.ErrMissingCredential)
		return nil, domain.ErrMissingCredential
	}

	userMessage := s.prompt.Render(req.LearnerText, req.TaskTopic)
	decoding := s.prompt.Decoding

	log.Info("chat request",
		"learner_text", req.LearnerText,
		"task_topic", req.TaskTopic,
		"temperature", decoding.Temperature,
		"top_p", decoding.TopP,
		"max_output_tokens", decoding.MaxTokens,
	)
	log.Debug("chat prompt", "prompt", userMessage)

	start := time.Now()
	gen, err := s.generator.Generate(ctx, infrastructure.GenerationRequest{
		SystemInstruction: s.prompt.SystemInstruction,
		Prompt:            userMessage,
		Temperature:       decoding.Temperature,
		TopP:              decoding.TopP,
		MaxTokens:         decoding.MaxTokens,
	})
	s.metrics.ObserveUpstream(time.Since(start))
	if err != nil {
		s.metrics.ObserveChat(metrics.OutcomeUpstreamError)
		log.Error("chat upstream failure", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, &domain.UpstreamError{Err: err}
	}

	fields := []interface{}{
		"finish_reason", gen.FinishReason,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if gen.Usage != nil {
		fields = append(fields,
			"prompt_tokens", gen.Usage.PromptTokens,
			"output_tokens", gen.Usage.OutputTokens,
			"total_tokens", gen.Usage.TotalTokens,
		)
		s.metrics.AddTokens(gen.Usage.PromptTokens, gen.Usage.OutputTokens)
	}
	fields = append(fields, "text", gen.Text)
	log.Info("chat response", fields...)

	s.metrics.ObserveChat(metrics.OutcomeOK)
	return &domain.ChatResponse{Feedback: gen.Text}, nil
}
