package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"streampulse/internal/core/domain"
)

type ChannelRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewChannelRepository(db *sqlx.DB) *ChannelRepository {
	return &ChannelRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ChannelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	query, args, err := r.builder.
		Insert("channels").
		Columns("name", "description", "owner_id").
		Values(channel.Name, channel.Description, channel.OwnerID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build channel insert: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&channel.ID, &channel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert channel: %w", err)
	}
	return nil
}

func (r *ChannelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	query, args, err := r.builder.
		Select("id", "name", "description", "owner_id", "created_at").
		From("channels").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build channel select: %w", err)
	}

	var channel domain.Channel
	if err := r.db.GetContext(ctx, &channel, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return &channel, nil
}

func (r *ChannelRepository) List(ctx context.Context) ([]domain.Channel, error) {
	query, args, err := r.builder.
		Select("id", "name", "description", "owner_id", "created_at").
		From("channels").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build channel list: %w", err)
	}

	channels := []domain.Channel{}
	if err := r.db.SelectContext(ctx, &channels, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

func (r *ChannelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Channel, error) {
	query, args, err := r.builder.
		Select("id", "name", "description", "owner_id", "created_at").
		From("channels").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build channel list: %w", err)
	}

	channels := []domain.Channel{}
	if err := r.db.SelectContext(ctx, &channels, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list channels by owner: %w", err)
	}
	return channels, nil
}

func (r *ChannelRepository) Update(ctx context.Context, id uuid.UUID, name, description string) error {
	query, args, err := r.builder.
		Update("channels").
		Set("name", name).
		Set("description", description).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build channel update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrChannelNotFound
	}
	return nil
}

func (r *ChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.builder.
		Delete("channels").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build channel delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrChannelNotFound
	}
	return nil
}
