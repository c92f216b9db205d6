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

type ViewerService struct {
	viewers ports.ViewerRepository
	metrics ports.MetricsRecorder
	logger  *zap.Logger
}

func NewViewerService(viewers ports.ViewerRepository, metrics ports.MetricsRecorder, logger *zap.Logger) *ViewerService {
	return &ViewerService{viewers: viewers, metrics: metrics, logger: logger}
}

// Register admits a viewer to a live stream. The repository enforces
// the live-stream guard transactionally.
func (s *ViewerService) Register(ctx context.Context, firstName, lastName, email string, streamID uuid.UUID) (*domain.Viewer, error) {
	if err := validation.ValidatePersonName(firstName, "first name"); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidatePersonName(lastName, "last name"); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	viewer := &domain.Viewer{
		FirstName: utils.SanitizeString(firstName),
		LastName:  utils.SanitizeString(lastName),
		Email:     utils.NormalizeEmail(email),
		StreamID:  streamID,
	}
	if err := s.viewers.Register(ctx, viewer); err != nil {
		return nil, err
	}

	s.metrics.RecordViewerJoined(streamID)
	s.logger.Debug("viewer joined",
		zap.String("viewer_id", viewer.ID.String()),
		zap.String("stream_id", streamID.String()))
	return viewer, nil
}

func (s *ViewerService) RecordDeparture(ctx context.Context, id uuid.UUID) (*domain.Viewer, error) {
	viewer, err := s.viewers.RecordDeparture(ctx, id, time.Now())
	if err != nil {
		return nil, err
	}

	s.metrics.RecordViewerLeft(viewer.StreamID)
	s.logger.Debug("viewer left",
		zap.String("viewer_id", id.String()),
		zap.String("stream_id", viewer.StreamID.String()))
	return viewer, nil
}

func (s *ViewerService) ListByStream(ctx context.Context, streamID uuid.UUID) ([]domain.Viewer, error) {
	return s.viewers.ListByStream(ctx, streamID)
}

func (s *ViewerService) CurrentCount(ctx context.Context, streamID uuid.UUID) (int, error) {
	return s.viewers.CountCurrent(ctx, streamID)
}
