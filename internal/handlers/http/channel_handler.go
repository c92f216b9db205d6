package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streampulse/internal/core/ports"
)

type ChannelHandler struct {
	channelService ports.ChannelService
}

func NewChannelHandler(channelService ports.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		channelService: channelService,
	}
}

func (h *ChannelHandler) SetupRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	api := router.Group("/api/channels")
	{
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.POST("", auth, h.Create)
		api.GET("/my-channels", auth, h.ListMine)
		api.PUT("/:id", auth, h.Update)
		api.DELETE("/:id", auth, h.Delete)
	}
}

type ChannelRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50"`
	Description string `json:"description" binding:"max=500"`
}

func (h *ChannelHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req ChannelRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	channel, err := h.channelService.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusCreated, channel)
}

func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channelService.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, channels, len(channels))
}

func (h *ChannelHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	channels, err := h.channelService.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, channels, len(channels))
}

func (h *ChannelHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	channel, err := h.channelService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, channel)
}

func (h *ChannelHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req ChannelRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(bindingError(err))
		return
	}

	channel, err := h.channelService.Update(c.Request.Context(), id, userID, req.Name, req.Description)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, channel)
}

func (h *ChannelHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.channelService.Delete(c.Request.Context(), id, userID); err != nil {
		c.Error(err)
		return
	}

	respondMessage(c, http.StatusOK, "channel deleted", nil)
}
