package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrChannelNotFound = errors.New("channel not found")
	ErrNotOwner        = errors.New("caller does not own this resource")

	ErrStreamNotFound    = errors.New("stream not found")
	ErrStreamAlreadyLive = errors.New("stream is already live")
	ErrStreamNotLive     = errors.New("stream is not live")
	ErrStreamEnded       = errors.New("stream has already ended")

	ErrViewerNotFound = errors.New("viewer not found")
)
