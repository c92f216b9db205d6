package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"streampulse/internal/core/domain"
)

func scheduledStream(id, channelID, ownerID uuid.UUID) *domain.StreamWithOwner {
	return &domain.StreamWithOwner{
		Stream: domain.Stream{
			ID:        id,
			Title:     "Launch Party",
			ChannelID: channelID,
			Status:    domain.StatusScheduled,
		},
		OwnerID: ownerID,
	}
}

func TestStreamService_Create(t *testing.T) {
	ownerID := uuid.New()
	channelID := uuid.New()
	channel := &domain.Channel{ID: channelID, OwnerID: ownerID}

	t.Run("success", func(t *testing.T) {
		channels := &mockChannelRepo{}
		channels.On("GetByID", mock.Anything, channelID).Return(channel, nil)
		streams := &mockStreamRepo{}
		streams.On("Create", mock.Anything, mock.MatchedBy(func(st *domain.Stream) bool {
			return st.Title == "Launch Party" && st.ChannelID == channelID
		})).Run(func(args mock.Arguments) {
			st := args.Get(1).(*domain.Stream)
			st.ID = uuid.New()
			st.Status = domain.StatusScheduled
		}).Return(nil)

		svc := NewStreamService(streams, channels, noopMetrics{}, zaptest.NewLogger(t))
		stream, err := svc.Create(context.Background(), ownerID, "Launch Party", "", channelID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusScheduled, stream.Status)
	})

	t.Run("channel owned by someone else", func(t *testing.T) {
		channels := &mockChannelRepo{}
		channels.On("GetByID", mock.Anything, channelID).Return(channel, nil)

		svc := NewStreamService(&mockStreamRepo{}, channels, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.Create(context.Background(), uuid.New(), "Launch Party", "", channelID)

		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("unknown channel", func(t *testing.T) {
		channels := &mockChannelRepo{}
		channels.On("GetByID", mock.Anything, channelID).Return(nil, domain.ErrChannelNotFound)

		svc := NewStreamService(&mockStreamRepo{}, channels, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.Create(context.Background(), ownerID, "Launch Party", "", channelID)

		assert.ErrorIs(t, err, domain.ErrChannelNotFound)
	})
}

func TestStreamService_Start(t *testing.T) {
	ownerID := uuid.New()
	channelID := uuid.New()
	streamID := uuid.New()

	t.Run("scheduled stream goes live", func(t *testing.T) {
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).
			Return(scheduledStream(streamID, channelID, ownerID), nil)
		streams.On("Start", mock.Anything, streamID, mock.AnythingOfType("time.Time")).Return(true, nil)
		now := time.Now()
		streams.On("GetByID", mock.Anything, streamID).Return(&domain.Stream{
			ID: streamID, Status: domain.StatusLive, StartedAt: &now,
		}, nil)

		metrics := &mockMetrics{}
		metrics.On("RecordStreamStarted", streamID).Once()

		svc := NewStreamService(streams, &mockChannelRepo{}, metrics, zaptest.NewLogger(t))
		stream, err := svc.Start(context.Background(), streamID, ownerID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusLive, stream.Status)
		assert.NotNil(t, stream.StartedAt)
		metrics.AssertExpectations(t)
	})

	t.Run("non-owner sees forbidden even for live stream", func(t *testing.T) {
		live := scheduledStream(streamID, channelID, ownerID)
		live.Status = domain.StatusLive
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).Return(live, nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.Start(context.Background(), streamID, uuid.New())

		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("already live", func(t *testing.T) {
		live := scheduledStream(streamID, channelID, ownerID)
		live.Status = domain.StatusLive
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).Return(live, nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.Start(context.Background(), streamID, ownerID)

		assert.ErrorIs(t, err, domain.ErrStreamAlreadyLive)
	})

	t.Run("already ended", func(t *testing.T) {
		ended := scheduledStream(streamID, channelID, ownerID)
		ended.Status = domain.StatusEnded
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).Return(ended, nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.Start(context.Background(), streamID, ownerID)

		assert.ErrorIs(t, err, domain.ErrStreamEnded)
	})

	t.Run("lost race to concurrent start", func(t *testing.T) {
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).
			Return(scheduledStream(streamID, channelID, ownerID), nil)
		streams.On("Start", mock.Anything, streamID, mock.AnythingOfType("time.Time")).Return(false, nil)
		streams.On("GetByID", mock.Anything, streamID).Return(&domain.Stream{
			ID: streamID, Status: domain.StatusLive,
		}, nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.Start(context.Background(), streamID, ownerID)

		assert.ErrorIs(t, err, domain.ErrStreamAlreadyLive)
	})
}

func TestStreamService_End(t *testing.T) {
	ownerID := uuid.New()
	channelID := uuid.New()
	streamID := uuid.New()

	liveStream := func() *domain.StreamWithOwner {
		s := scheduledStream(streamID, channelID, ownerID)
		s.Status = domain.StatusLive
		return s
	}

	t.Run("live stream ends with artifacts", func(t *testing.T) {
		recording := "/recordings/launch.mp4"
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).Return(liveStream(), nil)
		streams.On("End", mock.Anything, streamID, mock.AnythingOfType("time.Time"), &recording, (*string)(nil)).
			Return(true, nil)
		now := time.Now()
		streams.On("GetByID", mock.Anything, streamID).Return(&domain.Stream{
			ID: streamID, Status: domain.StatusEnded, EndedAt: &now, RecordingPath: &recording,
		}, nil)

		metrics := &mockMetrics{}
		metrics.On("RecordStreamEnded", streamID).Once()

		svc := NewStreamService(streams, &mockChannelRepo{}, metrics, zaptest.NewLogger(t))
		stream, err := svc.End(context.Background(), streamID, ownerID, &recording, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusEnded, stream.Status)
		require.NotNil(t, stream.RecordingPath)
		assert.Equal(t, recording, *stream.RecordingPath)
		metrics.AssertExpectations(t)
	})

	t.Run("scheduled stream cannot end", func(t *testing.T) {
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).
			Return(scheduledStream(streamID, channelID, ownerID), nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.End(context.Background(), streamID, ownerID, nil, nil)

		assert.ErrorIs(t, err, domain.ErrStreamNotLive)
	})

	t.Run("ended stream stays ended", func(t *testing.T) {
		ended := scheduledStream(streamID, channelID, ownerID)
		ended.Status = domain.StatusEnded
		streams := &mockStreamRepo{}
		streams.On("GetWithOwner", mock.Anything, streamID).Return(ended, nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.End(context.Background(), streamID, ownerID, nil, nil)

		assert.ErrorIs(t, err, domain.ErrStreamEnded)
	})
}

func TestStreamService_List(t *testing.T) {
	t.Run("invalid status filter", func(t *testing.T) {
		svc := NewStreamService(&mockStreamRepo{}, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		_, err := svc.List(context.Background(), domain.StreamStatus("paused"))
		assert.Error(t, err)
	})

	t.Run("empty filter lists everything", func(t *testing.T) {
		streams := &mockStreamRepo{}
		streams.On("List", mock.Anything, domain.StreamStatus("")).Return([]domain.Stream{}, nil)

		svc := NewStreamService(streams, &mockChannelRepo{}, noopMetrics{}, zaptest.NewLogger(t))
		result, err := svc.List(context.Background(), "")

		require.NoError(t, err)
		assert.Empty(t, result)
	})
}
