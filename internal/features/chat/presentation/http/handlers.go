package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"feedback-chat/backend/internal/features/chat/application"
	"feedback-chat/backend/internal/features/chat/domain"
)

// chatRequestBody is the body of POST /api/chat. learner_text must be
// present but may be empty.
type chatRequestBody struct {
	LearnerText *string `json:"learner_text" binding:"required"`
	TaskTopic   string  `json:"task_topic"`
}

// ChatHandler holds the chat service.
type ChatHandler struct {
	chatService application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService application.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendChatHandler relays one learner message and returns the generated feedback.
func (h *ChatHandler) SendChatHandler(c *gin.Context) {
	var body chatRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "learner_text is required: " + err.Error()})
		return
	}

	req := &domain.ChatRequest{LearnerText: *body.LearnerText, TaskTopic: body.TaskTopic}
	resp, err := h.chatService.HandleChat(c.Request.Context(), req)
	if err != nil {
		var upErr *domain.UpstreamError
		switch {
		case errors.Is(err, domain.ErrMissingCredential):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		case errors.As(err, &upErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": upErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
