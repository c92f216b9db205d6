package chatfeed

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"streampulse/internal/core/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans accepted chat messages out to WebSocket subscribers, grouped
// per stream. It implements ports.ChatPublisher.
type Hub struct {
	mu      sync.RWMutex
	streams map[uuid.UUID]map[*subscriber]struct{}
	logger  *zap.Logger
}

type subscriber struct {
	conn *websocket.Conn
	send chan *domain.ChatMessage
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		streams: make(map[uuid.UUID]map[*subscriber]struct{}),
		logger:  logger,
	}
}

// Publish delivers msg to every subscriber of its stream. Slow
// subscribers are dropped rather than blocking the caller.
func (h *Hub) Publish(msg *domain.ChatMessage) {
	h.mu.RLock()
	subs := h.streams[msg.StreamID]
	var stale []*subscriber
	for sub := range subs {
		select {
		case sub.send <- msg:
		default:
			stale = append(stale, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range stale {
		h.unsubscribe(msg.StreamID, sub)
	}
}

func (h *Hub) subscribe(streamID uuid.UUID, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.streams[streamID] == nil {
		h.streams[streamID] = make(map[*subscriber]struct{})
	}
	h.streams[streamID][sub] = struct{}{}
}

func (h *Hub) unsubscribe(streamID uuid.UUID, sub *subscriber) {
	h.mu.Lock()
	subs, ok := h.streams[streamID]
	if ok {
		if _, present := subs[sub]; present {
			delete(subs, sub)
			close(sub.send)
		}
		if len(subs) == 0 {
			delete(h.streams, streamID)
		}
	}
	h.mu.Unlock()
}

// SubscriberCount reports active feed connections for one stream.
func (h *Hub) SubscriberCount(streamID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.streams[streamID])
}

// ServeFeed upgrades the request and streams chat messages for the
// stream named in the path until the client disconnects.
func (h *Hub) ServeFeed(c *gin.Context) {
	streamID, err := uuid.Parse(c.Param("streamId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "INVALID_INPUT",
			"message": "invalid streamId format",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan *domain.ChatMessage, sendBufferSize),
	}
	h.subscribe(streamID, sub)
	h.logger.Debug("feed subscriber connected",
		zap.String("stream_id", streamID.String()))

	go h.writeLoop(streamID, sub)
	h.readLoop(streamID, sub)
}

// readLoop discards client frames; the feed is one-way. It exists to
// process pongs and detect disconnects.
func (h *Hub) readLoop(streamID uuid.UUID, sub *subscriber) {
	defer func() {
		h.unsubscribe(streamID, sub)
		sub.conn.Close()
	}()

	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(streamID uuid.UUID, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
