package chatfeed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"streampulse/internal/core/domain"
)

func feedServer(t *testing.T, hub *Hub) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/chat/stream/:streamId/live", hub.ServeFeed)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dialFeed(t *testing.T, srv *httptest.Server, streamID uuid.UUID) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/stream/" + streamID.String() + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	srv := feedServer(t, hub)
	streamID := uuid.New()

	conn := dialFeed(t, srv, streamID)

	// Wait for the subscription to land.
	require.Eventually(t, func() bool {
		return hub.SubscriberCount(streamID) == 1
	}, time.Second, 10*time.Millisecond)

	sent := &domain.ChatMessage{
		ID:       uuid.New(),
		StreamID: streamID,
		Message:  "hello feed",
	}
	hub.Publish(sent)

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var got domain.ChatMessage
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, "hello feed", got.Message)
}

func TestHub_PublishIsScopedToStream(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	srv := feedServer(t, hub)

	watchedStream := uuid.New()
	otherStream := uuid.New()
	conn := dialFeed(t, srv, watchedStream)

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(watchedStream) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(&domain.ChatMessage{ID: uuid.New(), StreamID: otherStream, Message: "elsewhere"})
	hub.Publish(&domain.ChatMessage{ID: uuid.New(), StreamID: watchedStream, Message: "here"})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var got domain.ChatMessage
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "here", got.Message)
}

func TestHub_SubscriberRemovedOnDisconnect(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	srv := feedServer(t, hub)
	streamID := uuid.New()

	conn := dialFeed(t, srv, streamID)
	require.Eventually(t, func() bool {
		return hub.SubscriberCount(streamID) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.SubscriberCount(streamID) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHub_RejectsMalformedStreamID(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	srv := feedServer(t, hub)

	resp, err := http.Get(srv.URL + "/api/chat/stream/not-a-uuid/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
