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

type ChatRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateMessage verifies the stream is live, and the viewer exists when
// one is named, then inserts. The whole sequence runs in one transaction
// with the stream row held FOR SHARE.
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var status domain.StreamStatus
	err = tx.GetContext(ctx, &status,
		`SELECT status FROM streams WHERE id = $1 FOR SHARE`, msg.StreamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrStreamNotFound
		}
		return fmt.Errorf("failed to check stream status: %w", err)
	}
	if status != domain.StatusLive {
		return domain.ErrStreamNotLive
	}

	if msg.ViewerID != nil {
		var exists bool
		err = tx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM viewers WHERE id = $1)`, *msg.ViewerID)
		if err != nil {
			return fmt.Errorf("failed to check viewer: %w", err)
		}
		if !exists {
			return domain.ErrViewerNotFound
		}
	}

	query, args, err := r.builder.
		Insert("chat_messages").
		Columns("stream_id", "viewer_id", "message", "sentiment").
		Values(msg.StreamID, msg.ViewerID, msg.Message, msg.Sentiment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build message insert: %w", err)
	}

	err = tx.QueryRowxContext(ctx, query, args...).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message: %w", err)
	}
	return nil
}

func (r *ChatRepository) ListByStream(ctx context.Context, streamID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	query, args, err := r.builder.
		Select("id", "stream_id", "viewer_id", "message", "sentiment", "created_at").
		From("chat_messages").
		Where(sq.Eq{"stream_id": streamID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build message list: %w", err)
	}

	messages := []domain.ChatMessage{}
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
