package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"streampulse/internal/core/domain"
	"streampulse/internal/core/ports"
)

const defaultKeywordLimit = 10

type StatsService struct {
	stats   ports.StatsRepository
	streams ports.StreamRepository
	logger  *zap.Logger
}

func NewStatsService(stats ports.StatsRepository, streams ports.StreamRepository, logger *zap.Logger) *StatsService {
	return &StatsService{stats: stats, streams: streams, logger: logger}
}

func (s *StatsService) ViewerStats(ctx context.Context, streamID uuid.UUID) (*domain.ViewerStats, error) {
	return s.stats.ViewerStats(ctx, streamID)
}

func (s *StatsService) ChatStats(ctx context.Context, streamID uuid.UUID) (*domain.ChatStats, error) {
	return s.stats.ChatStats(ctx, streamID)
}

func (s *StatsService) MoodStats(ctx context.Context, streamID uuid.UUID) ([]domain.MoodStat, error) {
	return s.stats.MoodStats(ctx, streamID)
}

func (s *StatsService) KeywordStats(ctx context.Context, streamID uuid.UUID, limit int) ([]domain.KeywordStat, error) {
	if limit <= 0 {
		limit = defaultKeywordLimit
	}
	return s.stats.TopKeywords(ctx, streamID, limit)
}

// CombinedStats assembles the per-stream aggregates and the stream row
// itself. Only the stream lookup can produce not-found; the aggregates
// return zero values for unknown ids.
func (s *StatsService) CombinedStats(ctx context.Context, streamID uuid.UUID) (*domain.CombinedStats, error) {
	viewerStats, err := s.stats.ViewerStats(ctx, streamID)
	if err != nil {
		return nil, err
	}
	chatStats, err := s.stats.ChatStats(ctx, streamID)
	if err != nil {
		return nil, err
	}
	moodStats, err := s.stats.MoodStats(ctx, streamID)
	if err != nil {
		return nil, err
	}

	stream, err := s.streams.GetByID(ctx, streamID)
	if err != nil {
		return nil, err
	}

	return &domain.CombinedStats{
		StreamInfo:  stream,
		ViewerStats: viewerStats,
		ChatStats:   chatStats,
		MoodStats:   moodStats,
	}, nil
}
