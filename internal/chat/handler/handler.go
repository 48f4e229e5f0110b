package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gatorkeys/internal/chat"
	"gatorkeys/internal/httputil"
	"gatorkeys/internal/middleware"
	appErrors "gatorkeys/pkg/errors"
)

// Notifier pushes real-time events to a user's live connections.
type Notifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, payload []byte)
}

type ChatHandler struct {
	uc       chat.ChatUsecase
	notifier Notifier
}

func NewChatHandler(uc chat.ChatUsecase, notifier Notifier) *ChatHandler {
	return &ChatHandler{uc: uc, notifier: notifier}
}

type sendMessageRequest struct {
	ReceiverID *uuid.UUID `json:"receiver_id"`
	ThreadID   *uuid.UUID `json:"thread_id"`
	Body       string     `json:"body" binding:"required"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := chat.SendMessageCommand{
		SenderID: middleware.UserID(c),
		ThreadID: req.ThreadID,
		Body:     req.Body,
	}
	if req.ReceiverID != nil {
		cmd.ReceiverID = *req.ReceiverID
	}

	dto, err := h.uc.SendMessage(c.Request.Context(), cmd)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	if h.notifier != nil {
		if payload, err := json.Marshal(gin.H{"type": "message", "message": dto}); err == nil {
			h.notifier.NotifyUser(c.Request.Context(), dto.ReceiverID, payload)
		}
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	summaries, err := h.uc.ListConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	other, err := uuid.Parse(c.Param("otherID"))
	if err != nil {
		httputil.Error(c, appErrors.InvalidArg("invalid user id"))
		return
	}
	msgs, err := h.uc.GetConversation(c.Request.Context(), middleware.UserID(c), other)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MarkRead flips the unread messages from other→caller and emits a read
// receipt to the sender's live connections.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	other, err := uuid.Parse(c.Param("otherID"))
	if err != nil {
		httputil.Error(c, appErrors.InvalidArg("invalid user id"))
		return
	}
	userID := middleware.UserID(c)
	updated, err := h.uc.MarkConversationRead(c.Request.Context(), userID, other)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	if updated > 0 && h.notifier != nil {
		receipt := gin.H{
			"type": "read",
			"by":   userID,
			"ts":   time.Now().UTC().Format(time.RFC3339),
		}
		if payload, err := json.Marshal(receipt); err == nil {
			h.notifier.NotifyUser(c.Request.Context(), other, payload)
		}
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

type resolveThreadRequest struct {
	ListingID   uuid.UUID `json:"listing_id" binding:"required"`
	OtherUserID uuid.UUID `json:"other_user_id" binding:"required"`
}

func (h *ChatHandler) ResolveThread(c *gin.Context) {
	var req resolveThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dto, err := h.uc.ResolveThread(c.Request.Context(), req.ListingID, middleware.UserID(c), req.OtherUserID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto)
}

func (h *ChatHandler) ListThreads(c *gin.Context) {
	threads, err := h.uc.ListThreads(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

func (h *ChatHandler) ListThreadMessages(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, appErrors.InvalidArg("invalid thread id"))
		return
	}
	msgs, err := h.uc.ListThreadMessages(c.Request.Context(), threadID, middleware.UserID(c))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
