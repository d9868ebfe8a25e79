package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mass-chat/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints de chat.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// CreateMessage maneja POST /chat/messages.
func (h *ChatHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Content        string `json:"content" binding:"required"`
		ConversationID string `json:"conversationId"`
		UserID         string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	response, err := h.chatServ.HandleIncomingMessage(c.Request.Context(), service.IncomingMessage{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Content:        req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		case errors.Is(err, service.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		default:
			h.logger.Error("handle message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateMessageStream maneja POST /chat/messages/stream. La respuesta es un
// stream NDJSON: un objeto JSON por línea, flush por evento, sin evento de
// cierre; el fin del stream es el cierre del transporte.
func (h *ChatHandler) CreateMessageStream(c *gin.Context) {
	var req struct {
		Content        string `json:"content" binding:"required"`
		ConversationID string `json:"conversationId"`
		UserID         string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid stream message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.Writer.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
	c.Writer.WriteHeader(http.StatusOK)

	events := h.chatServ.HandleIncomingMessageStream(c.Request.Context(), service.IncomingMessage{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Content:        req.Content,
	})

	encoder := json.NewEncoder(c.Writer)
	for event := range events {
		if err := encoder.Encode(event); err != nil {
			h.logger.Warn("stream write failed", zap.Error(err))
			return
		}
		c.Writer.Flush()
	}
}

// ListConversations maneja GET /chat/conversations.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	conversations, err := h.chatServ.ListConversations(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list conversations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list conversations"})
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// GetConversation maneja GET /chat/conversations/:id.
func (h *ChatHandler) GetConversation(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	conversation, err := h.chatServ.GetConversation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		h.logger.Error("get conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get conversation"})
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// DeleteConversation maneja DELETE /chat/conversations/:id.
func (h *ChatHandler) DeleteConversation(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if err := h.chatServ.DeleteConversation(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.logger.Error("delete conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
