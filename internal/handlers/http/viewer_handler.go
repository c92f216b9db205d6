package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streampulse/internal/core/ports"
)

type ViewerHandler struct {
	viewerService ports.ViewerService
}

func NewViewerHandler(viewerService ports.ViewerService) *ViewerHandler {
	return &ViewerHandler{
		viewerService: viewerService,
	}
}

func (h *ViewerHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/viewers")
	{
		api.POST("", h.Register)
		api.PUT("/:id/leave", h.Leave)
		api.GET("/stream/:streamId", h.ListByStream)
		api.GET("/stream/:streamId/count", h.CurrentCount)
	}
}

type RegisterViewerRequest struct {
	FirstName string `json:"first_name" binding:"required,min=3,max=30"`
	LastName  string `json:"last_name" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email,max=254"`
	StreamID  string `json:"stream_id" binding:"required,uuid"`
}

func (h *ViewerHandler) Register(c *gin.Context) {
	var req RegisterViewerRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}
	streamID, err := parseUUIDField(req.StreamID, "stream_id")
	if err != nil {
		c.Error(err)
		return
	}

	viewer, err := h.viewerService.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusCreated, viewer)
}

func (h *ViewerHandler) Leave(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	viewer, err := h.viewerService.RecordDeparture(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respondMessage(c, http.StatusOK, "viewer departure recorded", viewer)
}

func (h *ViewerHandler) ListByStream(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	viewers, err := h.viewerService.ListByStream(c.Request.Context(), streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, viewers, len(viewers))
}

func (h *ViewerHandler) CurrentCount(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	count, err := h.viewerService.CurrentCount(c.Request.Context(), streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"stream_id":       streamID,
		"current_viewers": count,
	})
}
