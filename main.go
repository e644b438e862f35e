package main

import (
	stdlog "log"

	"feedback-chat/backend/internal/config"
	"feedback-chat/backend/internal/features/chat/application"
	"feedback-chat/backend/internal/features/chat/infrastructure"
	chat_http "feedback-chat/backend/internal/features/chat/presentation/http"
	promptapp "feedback-chat/backend/internal/features/prompt/application"
	prompt_http "feedback-chat/backend/internal/features/prompt/presentation/http"
	"feedback-chat/backend/internal/platform/logger"
	"feedback-chat/backend/internal/platform/metrics"
	"feedback-chat/backend/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		stdlog.Fatalf("Failed to create logger: %v", err)
	}
	defer log.Sync()

	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}
	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	prompt, err := promptapp.LoadPromptConfig(cfg.PromptPath)
	if err != nil {
		log.Fatal("Failed to load prompt config", "path", cfg.PromptPath, "error", err)
	}
	log.Info("Prompt config loaded",
		"path", cfg.PromptPath,
		"temperature", prompt.Decoding.Temperature,
		"top_p", prompt.Decoding.TopP,
		"max_tokens", prompt.Decoding.MaxTokens,
	)

	generator, err := newGenerator(cfg, log)
	if err != nil {
		log.Fatal("Failed to create generation client", "error", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize services
	chatService := application.NewChatService(prompt, generator, log, m)

	router := server.NewRouter(server.RouterConfig{
		Logger:               log,
		Metrics:              m,
		Gatherer:             prometheus.DefaultGatherer,
		CORSOrigins:          cfg.CORSOrigins,
		StaticDir:            cfg.StaticDir,
		ChatHandler:          chat_http.NewChatHandler(chatService),
		PromptHandler:        prompt_http.NewPromptHandler(prompt, cfg.LLMModel),
		CredentialConfigured: cfg.HasCredential(),
	})

	log.Info("Server starting", "addr", cfg.ListenAddr, "model", cfg.LLMModel, "base_url", cfg.LLMBaseURL)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}

// newGenerator builds the generation client. Without a key it logs a warning
// and returns a nil Generator, so chat calls fail with 500.
func newGenerator(cfg *config.AppConfig, log *logger.Logger) (infrastructure.Generator, error) {
	if !cfg.HasCredential() {
		log.Warn(config.APIKeyEnv+" not set; /api/chat will return errors", "env", config.APIKeyEnv)
		return nil, nil
	}
	client, err := infrastructure.NewOpenAIClient(cfg.APIKey, cfg.LLMBaseURL, cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	return client, nil
}
