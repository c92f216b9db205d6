package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"streampulse/internal/core/domain"
)

func TestStatsService_CombinedStats(t *testing.T) {
	streamID := uuid.New()

	t.Run("assembles all aggregates", func(t *testing.T) {
		stats := &mockStatsRepo{}
		stats.On("ViewerStats", mock.Anything, streamID).
			Return(&domain.ViewerStats{StreamID: streamID, TotalViewers: 10, CurrentViewers: 4}, nil)
		stats.On("ChatStats", mock.Anything, streamID).
			Return(&domain.ChatStats{StreamID: streamID, TotalMessages: 25}, nil)
		stats.On("MoodStats", mock.Anything, streamID).
			Return([]domain.MoodStat{{Mood: "hyped", Count: 7, Percentage: 70}}, nil)

		streams := &mockStreamRepo{}
		streams.On("GetByID", mock.Anything, streamID).
			Return(&domain.Stream{ID: streamID, Status: domain.StatusLive}, nil)

		svc := NewStatsService(stats, streams, zaptest.NewLogger(t))
		combined, err := svc.CombinedStats(context.Background(), streamID)

		require.NoError(t, err)
		assert.Equal(t, streamID, combined.StreamInfo.ID)
		assert.Equal(t, 10, combined.ViewerStats.TotalViewers)
		assert.Equal(t, 25, combined.ChatStats.TotalMessages)
		assert.Len(t, combined.MoodStats, 1)
	})

	t.Run("unknown stream fails on the stream lookup only", func(t *testing.T) {
		stats := &mockStatsRepo{}
		stats.On("ViewerStats", mock.Anything, streamID).
			Return(&domain.ViewerStats{StreamID: streamID}, nil)
		stats.On("ChatStats", mock.Anything, streamID).
			Return(&domain.ChatStats{StreamID: streamID}, nil)
		stats.On("MoodStats", mock.Anything, streamID).
			Return([]domain.MoodStat{}, nil)

		streams := &mockStreamRepo{}
		streams.On("GetByID", mock.Anything, streamID).Return(nil, domain.ErrStreamNotFound)

		svc := NewStatsService(stats, streams, zaptest.NewLogger(t))
		_, err := svc.CombinedStats(context.Background(), streamID)

		assert.ErrorIs(t, err, domain.ErrStreamNotFound)
	})
}

func TestStatsService_KeywordStats(t *testing.T) {
	streamID := uuid.New()

	t.Run("default limit applied", func(t *testing.T) {
		stats := &mockStatsRepo{}
		stats.On("TopKeywords", mock.Anything, streamID, defaultKeywordLimit).
			Return([]domain.KeywordStat{{Keyword: "golang", Frequency: 12}}, nil)

		svc := NewStatsService(stats, &mockStreamRepo{}, zaptest.NewLogger(t))
		keywords, err := svc.KeywordStats(context.Background(), streamID, 0)

		require.NoError(t, err)
		assert.Len(t, keywords, 1)
		stats.AssertExpectations(t)
	})

	t.Run("explicit limit passed through", func(t *testing.T) {
		stats := &mockStatsRepo{}
		stats.On("TopKeywords", mock.Anything, streamID, 3).
			Return([]domain.KeywordStat{}, nil)

		svc := NewStatsService(stats, &mockStreamRepo{}, zaptest.NewLogger(t))
		_, err := svc.KeywordStats(context.Background(), streamID, 3)

		require.NoError(t, err)
		stats.AssertExpectations(t)
	})
}
