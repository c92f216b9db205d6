package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"streampulse/internal/core/domain"
	"streampulse/internal/core/ports"
	apperrors "streampulse/pkg/errors"
	"streampulse/pkg/utils"
	"streampulse/pkg/validation"
)

const (
	defaultChatPageSize = 50
	maxChatPageSize     = 200
	maxChatMessageLen   = 500
)

type ChatService struct {
	chat      ports.ChatRepository
	publisher ports.ChatPublisher
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

func NewChatService(chat ports.ChatRepository, publisher ports.ChatPublisher, metrics ports.MetricsRecorder, logger *zap.Logger) *ChatService {
	return &ChatService{
		chat:      chat,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateMessage persists a message on a live stream and fans it out to
// feed subscribers. The repository performs the live-stream and viewer
// checks in one transaction.
func (s *ChatService) CreateMessage(ctx context.Context, streamID uuid.UUID, viewerID *uuid.UUID, message string, sentiment *domain.Sentiment) (*domain.ChatMessage, error) {
	message = utils.SanitizeString(message)
	if err := validation.ValidateNonEmptyString(message, "message"); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if len(message) > maxChatMessageLen {
		message = utils.TruncateString(message, maxChatMessageLen)
	}
	if sentiment != nil {
		if err := validation.ValidateSentiment(string(*sentiment)); err != nil {
			return nil, apperrors.NewInvalidInputError(err.Error())
		}
	}

	msg := &domain.ChatMessage{
		StreamID:  streamID,
		ViewerID:  viewerID,
		Message:   message,
		Sentiment: sentiment,
	}
	if err := s.chat.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	s.publisher.Publish(msg)
	s.metrics.RecordChatMessage(streamID)
	s.logger.Debug("chat message accepted",
		zap.String("message_id", msg.ID.String()),
		zap.String("stream_id", streamID.String()))
	return msg, nil
}

func (s *ChatService) ListByStream(ctx context.Context, streamID uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultChatPageSize
	}
	if limit > maxChatPageSize {
		limit = maxChatPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.chat.ListByStream(ctx, streamID, limit, offset)
}
