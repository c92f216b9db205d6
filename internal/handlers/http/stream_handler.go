package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streampulse/internal/core/domain"
	"streampulse/internal/core/ports"
	"streampulse/pkg/errors"
	"streampulse/pkg/validation"
)

type StreamHandler struct {
	streamService ports.StreamService
}

func NewStreamHandler(streamService ports.StreamService) *StreamHandler {
	return &StreamHandler{
		streamService: streamService,
	}
}

func (h *StreamHandler) SetupRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	api := router.Group("/api/streams")
	{
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.GET("/channel/:channelId", h.ListByChannel)
		api.POST("", auth, h.Create)
		api.PUT("/:id/start", auth, h.Start)
		api.PUT("/:id/end", auth, h.End)
	}
}

type CreateStreamRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	ChannelID   string `json:"channel_id" binding:"required,uuid"`
}

type EndStreamRequest struct {
	RecordingPath  *string `json:"recording_path"`
	TranscriptPath *string `json:"transcript_path"`
}

func (h *StreamHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateStreamRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}
	channelID, err := parseUUIDField(req.ChannelID, "channel_id")
	if err != nil {
		c.Error(err)
		return
	}

	stream, err := h.streamService.Create(c.Request.Context(), userID, req.Title, req.Description, channelID)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusCreated, stream)
}

func (h *StreamHandler) Start(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	stream, err := h.streamService.Start(c.Request.Context(), id, userID)
	if err != nil {
		c.Error(err)
		return
	}

	respondMessage(c, http.StatusOK, "stream is now live", stream)
}

func (h *StreamHandler) End(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	// Body is optional; an absent body ends the stream without artifacts.
	var req EndStreamRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.Error(bindingError(err))
			return
		}
	}

	stream, err := h.streamService.End(c.Request.Context(), id, userID, req.RecordingPath, req.TranscriptPath)
	if err != nil {
		c.Error(err)
		return
	}

	respondMessage(c, http.StatusOK, "stream ended", stream)
}

func (h *StreamHandler) List(c *gin.Context) {
	status := c.Query("status")
	if err := validation.ValidateStatusFilter(status); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	streams, err := h.streamService.List(c.Request.Context(), domain.StreamStatus(status))
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, streams, len(streams))
}

func (h *StreamHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	stream, err := h.streamService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, stream)
}

func (h *StreamHandler) ListByChannel(c *gin.Context) {
	channelID, ok := pathUUID(c, "channelId")
	if !ok {
		return
	}
	status := c.Query("status")
	if err := validation.ValidateStatusFilter(status); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	streams, err := h.streamService.ListByChannel(c.Request.Context(), channelID, domain.StreamStatus(status))
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, streams, len(streams))
}
