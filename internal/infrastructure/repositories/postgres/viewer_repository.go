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

type ViewerRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewViewerRepository(db *sqlx.DB) *ViewerRepository {
	return &ViewerRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Register checks that the stream is live and inserts the presence row
// inside one transaction. FOR SHARE holds the stream row so a concurrent
// end cannot slip between the check and the insert.
func (r *ViewerRepository) Register(ctx context.Context, viewer *domain.Viewer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var status domain.StreamStatus
	err = tx.GetContext(ctx, &status,
		`SELECT status FROM streams WHERE id = $1 FOR SHARE`, viewer.StreamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrStreamNotFound
		}
		return fmt.Errorf("failed to check stream status: %w", err)
	}
	if status != domain.StatusLive {
		return domain.ErrStreamNotLive
	}

	query, args, err := r.builder.
		Insert("viewers").
		Columns("first_name", "last_name", "email", "stream_id").
		Values(viewer.FirstName, viewer.LastName, viewer.Email, viewer.StreamID).
		Suffix("RETURNING id, joined_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build viewer insert: %w", err)
	}

	err = tx.QueryRowxContext(ctx, query, args...).Scan(&viewer.ID, &viewer.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to insert viewer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit viewer registration: %w", err)
	}
	return nil
}

func (r *ViewerRepository) RecordDeparture(ctx context.Context, id uuid.UUID, leftAt time.Time) (*domain.Viewer, error) {
	query, args, err := r.builder.
		Update("viewers").
		Set("left_at", leftAt).
		Where(sq.Eq{"id": id, "left_at": nil}).
		Suffix("RETURNING id, first_name, last_name, email, stream_id, joined_at, left_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build departure update: %w", err)
	}

	var viewer domain.Viewer
	err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&viewer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrViewerNotFound
		}
		return nil, fmt.Errorf("failed to record departure: %w", err)
	}
	return &viewer, nil
}

func (r *ViewerRepository) ListByStream(ctx context.Context, streamID uuid.UUID) ([]domain.Viewer, error) {
	query, args, err := r.builder.
		Select("id", "first_name", "last_name", "email", "stream_id", "joined_at", "left_at").
		From("viewers").
		Where(sq.Eq{"stream_id": streamID}).
		OrderBy("joined_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build viewer list: %w", err)
	}

	viewers := []domain.Viewer{}
	if err := r.db.SelectContext(ctx, &viewers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list viewers: %w", err)
	}
	return viewers, nil
}

// CountCurrent always hits the table; presence counts are never cached.
func (r *ViewerRepository) CountCurrent(ctx context.Context, streamID uuid.UUID) (int, error) {
	query, args, err := r.builder.
		Select("COUNT(*)").
		From("viewers").
		Where(sq.Eq{"stream_id": streamID, "left_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build viewer count: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count viewers: %w", err)
	}
	return count, nil
}
