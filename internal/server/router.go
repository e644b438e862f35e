package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	chat_http "feedback-chat/backend/internal/features/chat/presentation/http"
	prompt_http "feedback-chat/backend/internal/features/prompt/presentation/http"
	"feedback-chat/backend/internal/platform/logger"
	"feedback-chat/backend/internal/platform/metrics"
	"feedback-chat/backend/internal/platform/middleware"
)

type RouterConfig struct {
	Logger      *logger.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	StaticDir   string

	ChatHandler          *chat_http.ChatHandler
	PromptHandler        *prompt_http.PromptHandler
	CredentialConfigured bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.Metrics(cfg.Metrics))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":                "ok",
			"credential_configured": cfg.CredentialConfigured,
		})
	})
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// Chat UI
	router.StaticFile("/", filepath.Join(cfg.StaticDir, "index.html"))
	router.Static("/static", cfg.StaticDir)

	api := router.Group("/api")
	{
		api.POST("/chat", cfg.ChatHandler.SendChatHandler)
		api.GET("/prompt", cfg.PromptHandler.GetPromptHandler)
	}

	return router
}
