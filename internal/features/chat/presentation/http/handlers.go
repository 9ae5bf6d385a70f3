package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"prepdash/internal/features/chat/application"
	"prepdash/internal/features/chat/domain"
)

// ChatHandler holds the chat service.
type ChatHandler struct {
	chatService application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService application.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) controller(c *gin.Context) (*application.Controller, bool) {
	ctrl, err := h.chatService.Controller(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open conversation: " + err.Error()})
		return nil, false
	}
	return ctrl, true
}

// GetConversationHandler returns the learner's conversation.
func (h *ChatHandler) GetConversationHandler(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.Conversation())
}

// SetDraftHandler stores the text being typed.
func (h *ChatHandler) SetDraftHandler(c *gin.Context) {
	var req domain.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	ctrl.SetDraft(req.Text)
	c.JSON(http.StatusOK, ctrl.Conversation())
}

// SendMessageHandler sends the given text, or the stored draft, and answers
// once the reply has been appended. Blank input and sends made while another
// is in flight come back with accepted=false.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	var req domain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	// A turn runs to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())
	var accepted bool
	if req.Text != nil {
		accepted = ctrl.SendMessage(ctx, *req.Text)
	} else {
		accepted = ctrl.SendDraft(ctx)
	}
	c.JSON(http.StatusOK, domain.SendResponse{Accepted: accepted, Conversation: ctrl.Conversation()})
}

// Register mounts the chat routes on a learner-scoped group.
func (h *ChatHandler) Register(r gin.IRouter) {
	r.GET("/chat", h.GetConversationHandler)
	r.PUT("/chat/draft", h.SetDraftHandler)
	r.POST("/chat/send", h.SendMessageHandler)
}
