package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-chat/backend/internal/features/prompt/domain"
)

// PromptView is the public, read-only view of the loaded prompt settings.
type PromptView struct {
	Model    string          `json:"model"`
	Decoding domain.Decoding `json:"decoding"`
}

// PromptHandler exposes the loaded prompt settings.
type PromptHandler struct {
	prompt *domain.PromptConfig
	model  string
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(prompt *domain.PromptConfig, model string) *PromptHandler {
	return &PromptHandler{prompt: prompt, model: model}
}

// GetPromptHandler returns the model name and decoding parameters.
// The system instruction and template are not exposed.
func (h *PromptHandler) GetPromptHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PromptView{Model: h.model, Decoding: h.prompt.Decoding})
}
