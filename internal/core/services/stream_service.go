package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"streampulse/internal/core/domain"
	"streampulse/internal/core/ports"
	apperrors "streampulse/pkg/errors"
	"streampulse/pkg/utils"
	"streampulse/pkg/validation"
)

type StreamService struct {
	streams  ports.StreamRepository
	channels ports.ChannelRepository
	metrics  ports.MetricsRecorder
	logger   *zap.Logger
}

func NewStreamService(streams ports.StreamRepository, channels ports.ChannelRepository, metrics ports.MetricsRecorder, logger *zap.Logger) *StreamService {
	return &StreamService{
		streams:  streams,
		channels: channels,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *StreamService) Create(ctx context.Context, callerID uuid.UUID, title, description string, channelID uuid.UUID) (*domain.Stream, error) {
	if err := validation.ValidateStreamTitle(title); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	channel, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !channel.IsOwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	stream := &domain.Stream{
		Title:       utils.SanitizeString(title),
		Description: utils.SanitizeString(description),
		ChannelID:   channelID,
	}
	if err := s.streams.Create(ctx, stream); err != nil {
		return nil, err
	}

	s.logger.Info("stream created",
		zap.String("stream_id", stream.ID.String()),
		zap.String("channel_id", channelID.String()))
	return stream, nil
}

// Start moves a scheduled stream live. Ownership is checked before
// state, so a non-owner always sees 403 regardless of stream status.
func (s *StreamService) Start(ctx context.Context, id, callerID uuid.UUID) (*domain.Stream, error) {
	stream, err := s.streams.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stream.IsOwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	switch stream.Status {
	case domain.StatusLive:
		return nil, domain.ErrStreamAlreadyLive
	case domain.StatusEnded:
		return nil, domain.ErrStreamEnded
	}

	startedAt := time.Now()
	ok, err := s.streams.Start(ctx, id, startedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to a concurrent transition; report by the
		// state the stream actually reached.
		return nil, s.transitionConflict(ctx, id, domain.ErrStreamAlreadyLive)
	}

	s.metrics.RecordStreamStarted(id)
	s.logger.Info("stream started", zap.String("stream_id", id.String()))

	return s.streams.GetByID(ctx, id)
}

// End moves a live stream to ended and optionally records artifact
// paths left by the media pipeline.
func (s *StreamService) End(ctx context.Context, id, callerID uuid.UUID, recordingPath, transcriptPath *string) (*domain.Stream, error) {
	stream, err := s.streams.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stream.IsOwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	switch stream.Status {
	case domain.StatusScheduled:
		return nil, domain.ErrStreamNotLive
	case domain.StatusEnded:
		return nil, domain.ErrStreamEnded
	}

	endedAt := time.Now()
	ok, err := s.streams.End(ctx, id, endedAt, recordingPath, transcriptPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.transitionConflict(ctx, id, domain.ErrStreamNotLive)
	}

	s.metrics.RecordStreamEnded(id)
	s.logger.Info("stream ended", zap.String("stream_id", id.String()))

	return s.streams.GetByID(ctx, id)
}

func (s *StreamService) List(ctx context.Context, status domain.StreamStatus) ([]domain.Stream, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.NewInvalidInputError("status must be scheduled, live, or ended")
	}
	return s.streams.List(ctx, status)
}

func (s *StreamService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stream, error) {
	return s.streams.GetByID(ctx, id)
}

func (s *StreamService) ListByChannel(ctx context.Context, channelID uuid.UUID, status domain.StreamStatus) ([]domain.Stream, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.NewInvalidInputError("status must be scheduled, live, or ended")
	}
	if _, err := s.channels.GetByID(ctx, channelID); err != nil {
		return nil, err
	}
	return s.streams.ListByChannel(ctx, channelID, status)
}

// transitionConflict re-reads the stream after a failed conditional
// update and maps its current state to the matching domain error.
func (s *StreamService) transitionConflict(ctx context.Context, id uuid.UUID, fallback error) error {
	stream, err := s.streams.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch stream.Status {
	case domain.StatusLive:
		return domain.ErrStreamAlreadyLive
	case domain.StatusEnded:
		return domain.ErrStreamEnded
	}
	return fallback
}
