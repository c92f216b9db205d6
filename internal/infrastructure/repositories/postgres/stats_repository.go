package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"streampulse/internal/core/domain"
)

// Aggregate queries use raw SQL; FILTER clauses and window functions are
// outside what the statement builder expresses.
const (
	viewerStatsQuery = `
		SELECT
			COUNT(*) AS total_viewers,
			COUNT(*) FILTER (WHERE left_at IS NULL) AS current_viewers,
			COALESCE(
				ROUND(AVG(EXTRACT(EPOCH FROM (COALESCE(left_at, NOW()) - joined_at)) / 60)),
				0
			)::int AS avg_watch_time_minutes
		FROM viewers
		WHERE stream_id = $1`

	chatStatsQuery = `
		SELECT
			COUNT(*) AS total_messages,
			COUNT(DISTINCT viewer_id) AS unique_chatters,
			COUNT(*) FILTER (WHERE sentiment = 'positive') AS positive_messages,
			COUNT(*) FILTER (WHERE sentiment = 'negative') AS negative_messages,
			COUNT(*) FILTER (WHERE sentiment = 'neutral') AS neutral_messages
		FROM chat_messages
		WHERE stream_id = $1`

	moodStatsQuery = `
		SELECT
			mood,
			COUNT(*) AS count,
			ROUND(COUNT(*) * 100.0 / SUM(COUNT(*)) OVER ())::int AS percentage
		FROM mood_logs
		WHERE stream_id = $1
		GROUP BY mood
		ORDER BY count DESC`
)

type StatsRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StatsRepository) ViewerStats(ctx context.Context, streamID uuid.UUID) (*domain.ViewerStats, error) {
	stats := domain.ViewerStats{StreamID: streamID}
	if err := r.db.GetContext(ctx, &stats, viewerStatsQuery, streamID); err != nil {
		return nil, fmt.Errorf("failed to aggregate viewer stats: %w", err)
	}
	return &stats, nil
}

func (r *StatsRepository) ChatStats(ctx context.Context, streamID uuid.UUID) (*domain.ChatStats, error) {
	var row struct {
		TotalMessages  int `db:"total_messages"`
		UniqueChatters int `db:"unique_chatters"`
		Positive       int `db:"positive_messages"`
		Negative       int `db:"negative_messages"`
		Neutral        int `db:"neutral_messages"`
	}
	if err := r.db.GetContext(ctx, &row, chatStatsQuery, streamID); err != nil {
		return nil, fmt.Errorf("failed to aggregate chat stats: %w", err)
	}

	return &domain.ChatStats{
		StreamID:       streamID,
		TotalMessages:  row.TotalMessages,
		UniqueChatters: row.UniqueChatters,
		Sentiment: domain.SentimentCounts{
			Positive: row.Positive,
			Negative: row.Negative,
			Neutral:  row.Neutral,
		},
	}, nil
}

func (r *StatsRepository) MoodStats(ctx context.Context, streamID uuid.UUID) ([]domain.MoodStat, error) {
	moods := []domain.MoodStat{}
	if err := r.db.SelectContext(ctx, &moods, moodStatsQuery, streamID); err != nil {
		return nil, fmt.Errorf("failed to aggregate mood stats: %w", err)
	}
	return moods, nil
}

func (r *StatsRepository) TopKeywords(ctx context.Context, streamID uuid.UUID, limit int) ([]domain.KeywordStat, error) {
	query, args, err := r.builder.
		Select("keyword", "frequency").
		From("keywords").
		Where(sq.Eq{"stream_id": streamID}).
		OrderBy("frequency DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build keyword select: %w", err)
	}

	keywords := []domain.KeywordStat{}
	if err := r.db.SelectContext(ctx, &keywords, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}
	return keywords, nil
}
