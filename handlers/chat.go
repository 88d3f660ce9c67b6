package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safelife/models"
	"safelife/services/chat"
	"safelife/utils"
)

// ChatHandler exposes conversation bootstrap and messaging endpoints.
type ChatHandler struct {
	Service chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// GetOrCreateConversationHandler handles POST /api/chats. One participant is
// the caller; peerId names the other. An optional bookingId scopes the thread.
func (h *ChatHandler) GetOrCreateConversationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req struct {
		PeerID    string `json:"peerId" binding:"required"`
		UserType  string `json:"userType"`
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	convID, err := h.Service.GetOrCreateConversation(
		c.Request.Context(), c.GetString("userID"), req.PeerID, req.UserType, req.BookingID)
	if err != nil {
		logger.Error("Conversation bootstrap failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversationId": convID})
}

// SendMessageHandler handles POST /api/chats/:id/messages.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	var req struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Text       string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	msg := models.Message{
		SenderID:   c.GetString("userID"),
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
	}
	saved, err := h.Service.SendMessage(c.Request.Context(), c.Param("id"), msg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": saved})
}

// ListMessagesHandler handles GET /api/chats/:id/messages.
func (h *ChatHandler) ListMessagesHandler(c *gin.Context) {
	msgs, err := h.Service.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// ListPartnersHandler handles GET /api/chats/partners, the caller's contact
// list with one entry per thread.
func (h *ChatHandler) ListPartnersHandler(c *gin.Context) {
	partners, err := h.Service.ListPartners(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": partners})
}

// ListConversationsHandler handles GET /api/chats.
func (h *ChatHandler) ListConversationsHandler(c *gin.Context) {
	convs, err := h.Service.ListConversations(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}
