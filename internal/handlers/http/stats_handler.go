package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streampulse/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/stats")
	{
		api.GET("/viewers/:streamId", h.ViewerStats)
		api.GET("/chat/:streamId", h.ChatStats)
		api.GET("/mood/:streamId", h.MoodStats)
		api.GET("/keywords/:streamId", h.KeywordStats)
		api.GET("/stream/:streamId", h.CombinedStats)
	}
}

func (h *StatsHandler) ViewerStats(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	stats, err := h.statsService.ViewerStats(c.Request.Context(), streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

func (h *StatsHandler) ChatStats(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	stats, err := h.statsService.ChatStats(c.Request.Context(), streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

func (h *StatsHandler) MoodStats(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	moods, err := h.statsService.MoodStats(c.Request.Context(), streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, moods, len(moods))
}

func (h *StatsHandler) KeywordStats(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	keywords, err := h.statsService.KeywordStats(c.Request.Context(), streamID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	respondList(c, keywords, len(keywords))
}

func (h *StatsHandler) CombinedStats(c *gin.Context) {
	streamID, ok := pathUUID(c, "streamId")
	if !ok {
		return
	}

	stats, err := h.statsService.CombinedStats(c.Request.Context(), streamID)
	if err != nil {
		c.Error(err)
		return
	}

	respondData(c, http.StatusOK, stats)
}
