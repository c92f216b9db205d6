package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"streampulse/internal/core/domain"
	"streampulse/internal/core/ports"
)

type ChatHandler struct {
	chatService ports.ChatService
}

func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/chat")
	{
		api.POST("", h.CreateMessage)
		api.GET("/stream/:streamId", h.ListByStream)
	}
}

type CreateMessageRequest struct {
	StreamID  string  `json:"stream_id" binding:"required,uuid"`
	ViewerID  *string `json:"viewer_id" binding:"omitempty,uuid"`
	Message   string  `json:"message" binding:"required,max=500"`
	Sentiment *string `json:"sentiment" binding:"omitempty,oneof=positive negative neutral"`
}

func (h *ChatHandler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	streamID, err := parseUUIDField(req.StreamID, "stream_id")
	if err != nil {
		c.Error(err)
		return
	}

	var viewerID *uuid.UUID
	if req.ViewerID != nil {
		id, err := parseUUIDField(*req.ViewerID, "viewer_id")
		if err != nil {
			c.Error(err)
			return
		}
		viewerID = &id
	}

	var sentiment *domain.Sentiment
	if req.Sentiment != nil {
		s := domain.Sentiment(*req.Sentiment)
		sentiment = &s
	}

	msg, err := h.chatService.CreateMessage(c.Request.Context(), streamID, viewerID, req.Message, sentiment)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusCreated, msg)
}

func (h *ChatHandler) ListByStream(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.chatService.ListByStream(c.Request.Context(), streamID, limit, offset)
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, messages, len(messages))
}
