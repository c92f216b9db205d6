package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"streampulse/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ChannelRepository interface {
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Channel, error)
	Update(ctx context.Context, id uuid.UUID, name, description string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type StreamRepository interface {
	Create(ctx context.Context, stream *domain.Stream) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Stream, error)
	// GetWithOwner resolves the owning user through the stream's channel.
	GetWithOwner(ctx context.Context, id uuid.UUID) (*domain.StreamWithOwner, error)
	List(ctx context.Context, status domain.StreamStatus) ([]domain.Stream, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID, status domain.StreamStatus) ([]domain.Stream, error)
	// Start flips scheduled -> live with a conditional update; it reports
	// false when the stream was no longer in the scheduled state.
	Start(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error)
	// End flips live -> ended under the same conditional-update guard.
	End(ctx context.Context, id uuid.UUID, endedAt time.Time, recordingPath, transcriptPath *string) (bool, error)
}

type ViewerRepository interface {
	// Register inserts a presence row after verifying, inside one
	// transaction, that the target stream exists and is live.
	Register(ctx context.Context, viewer *domain.Viewer) error
	// RecordDeparture stamps left_at on a still-present viewer and
	// returns the updated row. Departure is idempotent-hostile on
	// purpose: a second call fails with ErrViewerNotFound.
	RecordDeparture(ctx context.Context, id uuid.UUID, leftAt time.Time) (*domain.Viewer, error)
	ListByStream(ctx context.Context, streamID uuid.UUID) ([]domain.Viewer, error)
	CountCurrent(ctx context.Context, streamID uuid.UUID) (int, error)
}

type ChatRepository interface {
	// CreateMessage verifies the stream is live and, when a viewer is
	// named, that the viewer exists, then inserts - all in one transaction.
	CreateMessage(ctx context.Context, msg *domain.ChatMessage) error
	ListByStream(ctx context.Context, streamID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error)
}

// StatsRepository is the read-only query surface for the aggregators.
// Unknown stream ids yield zero/empty aggregates, never errors.
type StatsRepository interface {
	ViewerStats(ctx context.Context, streamID uuid.UUID) (*domain.ViewerStats, error)
	ChatStats(ctx context.Context, streamID uuid.UUID) (*domain.ChatStats, error)
	MoodStats(ctx context.Context, streamID uuid.UUID) ([]domain.MoodStat, error)
	TopKeywords(ctx context.Context, streamID uuid.UUID, limit int) ([]domain.KeywordStat, error)
}
