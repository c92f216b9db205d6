package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"streampulse/internal/core/domain"
)

var streamColumns = []string{
	"id", "title", "description", "channel_id", "status",
	"started_at", "ended_at", "recording_path", "transcript_path", "created_at",
}

type StreamRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewStreamRepository(db *sqlx.DB) *StreamRepository {
	return &StreamRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *StreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	query, args, err := r.builder.
		Insert("streams").
		Columns("title", "description", "channel_id").
		Values(stream.Title, stream.Description, stream.ChannelID).
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build stream insert: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, query, args...).
		Scan(&stream.ID, &stream.Status, &stream.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert stream: %w", err)
	}
	return nil
}

func (r *StreamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stream, error) {
	query, args, err := r.builder.
		Select(streamColumns...).
		From("streams").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stream select: %w", err)
	}

	var stream domain.Stream
	if err := r.db.GetContext(ctx, &stream, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}
	return &stream, nil
}

func (r *StreamRepository) GetWithOwner(ctx context.Context, id uuid.UUID) (*domain.StreamWithOwner, error) {
	query, args, err := r.builder.
		Select("s.id", "s.title", "s.description", "s.channel_id", "s.status",
			"s.started_at", "s.ended_at", "s.recording_path", "s.transcript_path",
			"s.created_at", "c.owner_id").
		From("streams s").
		Join("channels c ON c.id = s.channel_id").
		Where(sq.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stream owner select: %w", err)
	}

	var stream domain.StreamWithOwner
	if err := r.db.GetContext(ctx, &stream, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to get stream with owner: %w", err)
	}
	return &stream, nil
}

func (r *StreamRepository) List(ctx context.Context, status domain.StreamStatus) ([]domain.Stream, error) {
	q := r.builder.
		Select(streamColumns...).
		From("streams").
		OrderBy("created_at DESC")
	if status != "" {
		q = q.Where(sq.Eq{"status": status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stream list: %w", err)
	}

	streams := []domain.Stream{}
	if err := r.db.SelectContext(ctx, &streams, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	return streams, nil
}

func (r *StreamRepository) ListByChannel(ctx context.Context, channelID uuid.UUID, status domain.StreamStatus) ([]domain.Stream, error) {
	q := r.builder.
		Select(streamColumns...).
		From("streams").
		Where(sq.Eq{"channel_id": channelID}).
		OrderBy("created_at DESC")
	if status != "" {
		q = q.Where(sq.Eq{"status": status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stream list: %w", err)
	}

	streams := []domain.Stream{}
	if err := r.db.SelectContext(ctx, &streams, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list streams by channel: %w", err)
	}
	return streams, nil
}

// Start performs the scheduled -> live transition as a single conditional
// update so that two concurrent starts cannot both succeed.
func (r *StreamRepository) Start(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	query, args, err := r.builder.
		Update("streams").
		Set("status", domain.StatusLive).
		Set("started_at", startedAt).
		Where(sq.Eq{"id": id, "status": domain.StatusScheduled}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build stream start: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to start stream: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows == 1, nil
}

// End performs the live -> ended transition under the same guard.
func (r *StreamRepository) End(ctx context.Context, id uuid.UUID, endedAt time.Time, recordingPath, transcriptPath *string) (bool, error) {
	q := r.builder.
		Update("streams").
		Set("status", domain.StatusEnded).
		Set("ended_at", endedAt).
		Where(sq.Eq{"id": id, "status": domain.StatusLive})
	if recordingPath != nil {
		q = q.Set("recording_path", *recordingPath)
	}
	if transcriptPath != nil {
		q = q.Set("transcript_path", *transcriptPath)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build stream end: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to end stream: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows == 1, nil
}
