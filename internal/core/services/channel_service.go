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

type ChannelService struct {
	channels ports.ChannelRepository
	logger   *zap.Logger
}

func NewChannelService(channels ports.ChannelRepository, logger *zap.Logger) *ChannelService {
	return &ChannelService{channels: channels, logger: logger}
}

func (s *ChannelService) Create(ctx context.Context, ownerID uuid.UUID, name, description string) (*domain.Channel, error) {
	if err := validation.ValidateChannelName(name); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	channel := &domain.Channel{
		Name:        utils.SanitizeString(name),
		Description: utils.SanitizeString(description),
		OwnerID:     ownerID,
	}
	if err := s.channels.Create(ctx, channel); err != nil {
		return nil, err
	}

	s.logger.Info("channel created",
		zap.String("channel_id", channel.ID.String()),
		zap.String("owner_id", ownerID.String()))
	return channel, nil
}

func (s *ChannelService) List(ctx context.Context) ([]domain.Channel, error) {
	return s.channels.List(ctx)
}

func (s *ChannelService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]domain.Channel, error) {
	return s.channels.ListByOwner(ctx, ownerID)
}

func (s *ChannelService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error) {
	return s.channels.GetByID(ctx, id)
}

// Update requires ownership; existence is checked before the caller's
// rights so a missing channel reads as 404, not 403.
func (s *ChannelService) Update(ctx context.Context, id, callerID uuid.UUID, name, description string) (*domain.Channel, error) {
	if err := validation.ValidateChannelName(name); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	channel, err := s.channels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !channel.IsOwnedBy(callerID) {
		return nil, domain.ErrNotOwner
	}

	channel.Name = utils.SanitizeString(name)
	channel.Description = utils.SanitizeString(description)
	if err := s.channels.Update(ctx, id, channel.Name, channel.Description); err != nil {
		return nil, err
	}

	s.logger.Info("channel updated", zap.String("channel_id", id.String()))
	return channel, nil
}

func (s *ChannelService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	channel, err := s.channels.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !channel.IsOwnedBy(callerID) {
		return domain.ErrNotOwner
	}

	if err := s.channels.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("channel deleted", zap.String("channel_id", id.String()))
	return nil
}
