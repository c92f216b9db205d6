package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Domain metrics
	streamsLive       prometheus.Gauge
	streamsStarted    prometheus.Counter
	streamsEnded      prometheus.Counter
	viewersCurrent    *prometheus.GaugeVec
	viewersTotal      prometheus.Counter
	chatMessagesTotal *prometheus.CounterVec
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streampulse_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streampulse_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "path"}),

		streamsLive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "streampulse_streams_live",
			Help: "Number of streams currently live",
		}),

		streamsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streampulse_streams_started_total",
			Help: "Total number of streams that went live",
		}),

		streamsEnded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streampulse_streams_ended_total",
			Help: "Total number of streams that ended",
		}),

		viewersCurrent: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "streampulse_viewers_current",
			Help: "Viewers currently present per stream",
		}, []string{"stream_id"}),

		viewersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streampulse_viewers_registered_total",
			Help: "Total number of viewer registrations",
		}),

		chatMessagesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streampulse_chat_messages_total",
			Help: "Total number of accepted chat messages per stream",
		}, []string{"stream_id"}),
	}
}

func (p *PrometheusCollector) RecordStreamStarted(streamID uuid.UUID) {
	p.streamsStarted.Inc()
	p.streamsLive.Inc()
}

func (p *PrometheusCollector) RecordStreamEnded(streamID uuid.UUID) {
	p.streamsEnded.Inc()
	p.streamsLive.Dec()
	// The stream is gone from the live set; drop its viewer gauge.
	p.viewersCurrent.DeleteLabelValues(streamID.String())
}

func (p *PrometheusCollector) RecordViewerJoined(streamID uuid.UUID) {
	p.viewersTotal.Inc()
	p.viewersCurrent.WithLabelValues(streamID.String()).Inc()
}

func (p *PrometheusCollector) RecordViewerLeft(streamID uuid.UUID) {
	p.viewersCurrent.WithLabelValues(streamID.String()).Dec()
}

func (p *PrometheusCollector) RecordChatMessage(streamID uuid.UUID) {
	p.chatMessagesTotal.WithLabelValues(streamID.String()).Inc()
}

// HTTPMiddleware records request counts and latencies per route.
func (p *PrometheusCollector) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		p.httpRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		p.httpRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
