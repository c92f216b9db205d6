package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"streampulse/internal/core/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockChannelRepo struct{ mock.Mock }

func (m *mockChannelRepo) Create(ctx context.Context, channel *domain.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *mockChannelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Channel), args.Error(1)
}

func (m *mockChannelRepo) List(ctx context.Context) ([]domain.Channel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Channel), args.Error(1)
}

func (m *mockChannelRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Channel, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Channel), args.Error(1)
}

func (m *mockChannelRepo) Update(ctx context.Context, id uuid.UUID, name, description string) error {
	args := m.Called(ctx, id, name, description)
	return args.Error(0)
}

func (m *mockChannelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockStreamRepo struct{ mock.Mock }

func (m *mockStreamRepo) Create(ctx context.Context, stream *domain.Stream) error {
	args := m.Called(ctx, stream)
	return args.Error(0)
}

func (m *mockStreamRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stream, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stream), args.Error(1)
}

func (m *mockStreamRepo) GetWithOwner(ctx context.Context, id uuid.UUID) (*domain.StreamWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreamWithOwner), args.Error(1)
}

func (m *mockStreamRepo) List(ctx context.Context, status domain.StreamStatus) ([]domain.Stream, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stream), args.Error(1)
}

func (m *mockStreamRepo) ListByChannel(ctx context.Context, channelID uuid.UUID, status domain.StreamStatus) ([]domain.Stream, error) {
	args := m.Called(ctx, channelID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stream), args.Error(1)
}

func (m *mockStreamRepo) Start(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, startedAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockStreamRepo) End(ctx context.Context, id uuid.UUID, endedAt time.Time, recordingPath, transcriptPath *string) (bool, error) {
	args := m.Called(ctx, id, endedAt, recordingPath, transcriptPath)
	return args.Bool(0), args.Error(1)
}

type mockViewerRepo struct{ mock.Mock }

func (m *mockViewerRepo) Register(ctx context.Context, viewer *domain.Viewer) error {
	args := m.Called(ctx, viewer)
	return args.Error(0)
}

func (m *mockViewerRepo) RecordDeparture(ctx context.Context, id uuid.UUID, leftAt time.Time) (*domain.Viewer, error) {
	args := m.Called(ctx, id, leftAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Viewer), args.Error(1)
}

func (m *mockViewerRepo) ListByStream(ctx context.Context, streamID uuid.UUID) ([]domain.Viewer, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Viewer), args.Error(1)
}

func (m *mockViewerRepo) CountCurrent(ctx context.Context, streamID uuid.UUID) (int, error) {
	args := m.Called(ctx, streamID)
	return args.Int(0), args.Error(1)
}

type mockChatRepo struct{ mock.Mock }

func (m *mockChatRepo) CreateMessage(ctx context.Context, msg *domain.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockChatRepo) ListByStream(ctx context.Context, streamID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, streamID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

type mockStatsRepo struct{ mock.Mock }

func (m *mockStatsRepo) ViewerStats(ctx context.Context, streamID uuid.UUID) (*domain.ViewerStats, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ViewerStats), args.Error(1)
}

func (m *mockStatsRepo) ChatStats(ctx context.Context, streamID uuid.UUID) (*domain.ChatStats, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatStats), args.Error(1)
}

func (m *mockStatsRepo) MoodStats(ctx context.Context, streamID uuid.UUID) ([]domain.MoodStat, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoodStat), args.Error(1)
}

func (m *mockStatsRepo) TopKeywords(ctx context.Context, streamID uuid.UUID, limit int) ([]domain.KeywordStat, error) {
	args := m.Called(ctx, streamID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeywordStat), args.Error(1)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) RecordStreamStarted(streamID uuid.UUID) { m.Called(streamID) }
func (m *mockMetrics) RecordStreamEnded(streamID uuid.UUID)   { m.Called(streamID) }
func (m *mockMetrics) RecordViewerJoined(streamID uuid.UUID)  { m.Called(streamID) }
func (m *mockMetrics) RecordViewerLeft(streamID uuid.UUID)    { m.Called(streamID) }
func (m *mockMetrics) RecordChatMessage(streamID uuid.UUID)   { m.Called(streamID) }

// noopMetrics is for tests that do not assert on metrics.
type noopMetrics struct{}

func (noopMetrics) RecordStreamStarted(uuid.UUID) {}
func (noopMetrics) RecordStreamEnded(uuid.UUID)   {}
func (noopMetrics) RecordViewerJoined(uuid.UUID)  {}
func (noopMetrics) RecordViewerLeft(uuid.UUID)    {}
func (noopMetrics) RecordChatMessage(uuid.UUID)   {}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(msg *domain.ChatMessage) { m.Called(msg) }

// noopPublisher is for tests that do not assert on fan-out.
type noopPublisher struct{}

func (noopPublisher) Publish(*domain.ChatMessage) {}
