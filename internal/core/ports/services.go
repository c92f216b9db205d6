package ports

import (
	"context"

	"github.com/google/uuid"

	"streampulse/internal/core/domain"
)

// AuthIdentity is the verified subject carried by a bearer token.
type AuthIdentity struct {
	UserID uuid.UUID
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ValidateToken(token string) (*AuthIdentity, error)
}

type ChannelService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]domain.Channel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	Update(ctx context.Context, id, callerID uuid.UUID, name, description string) (*domain.Channel, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type StreamService interface {
	Create(ctx context.Context, callerID uuid.UUID, title, description string, channelID uuid.UUID) (*domain.Stream, error)
	Start(ctx context.Context, id, callerID uuid.UUID) (*domain.Stream, error)
	End(ctx context.Context, id, callerID uuid.UUID, recordingPath, transcriptPath *string) (*domain.Stream, error)
	List(ctx context.Context, status domain.StreamStatus) ([]domain.Stream, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Stream, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID, status domain.StreamStatus) ([]domain.Stream, error)
}

type ViewerService interface {
	Register(ctx context.Context, firstName, lastName, email string, streamID uuid.UUID) (*domain.Viewer, error)
	RecordDeparture(ctx context.Context, id uuid.UUID) (*domain.Viewer, error)
	ListByStream(ctx context.Context, streamID uuid.UUID) ([]domain.Viewer, error)
	CurrentCount(ctx context.Context, streamID uuid.UUID) (int, error)
}

type ChatService interface {
	CreateMessage(ctx context.Context, streamID uuid.UUID, viewerID *uuid.UUID, message string, sentiment *domain.Sentiment) (*domain.ChatMessage, error)
	ListByStream(ctx context.Context, streamID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error)
}

type StatsService interface {
	ViewerStats(ctx context.Context, streamID uuid.UUID) (*domain.ViewerStats, error)
	ChatStats(ctx context.Context, streamID uuid.UUID) (*domain.ChatStats, error)
	MoodStats(ctx context.Context, streamID uuid.UUID) ([]domain.MoodStat, error)
	KeywordStats(ctx context.Context, streamID uuid.UUID, limit int) ([]domain.KeywordStat, error)
	CombinedStats(ctx context.Context, streamID uuid.UUID) (*domain.CombinedStats, error)
}

// MetricsRecorder receives domain events for the monitoring backend.
type MetricsRecorder interface {
	RecordStreamStarted(streamID uuid.UUID)
	RecordStreamEnded(streamID uuid.UUID)
	RecordViewerJoined(streamID uuid.UUID)
	RecordViewerLeft(streamID uuid.UUID)
	RecordChatMessage(streamID uuid.UUID)
}

// ChatPublisher fans freshly accepted chat messages out to live
// subscribers (the WebSocket feed).
type ChatPublisher interface {
	Publish(msg *domain.ChatMessage)
}
