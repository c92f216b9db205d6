package domain

import (
	"time"

	"github.com/google/uuid"
)

type StreamStatus string

const (
	StatusScheduled StreamStatus = "scheduled"
	StatusLive      StreamStatus = "live"
	StatusEnded     StreamStatus = "ended"
)

// Valid reports whether s is one of the three lifecycle states.
func (s StreamStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusEnded:
		return true
	}
	return false
}

type Stream struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	Title          string       `db:"title" json:"title"`
	Description    string       `db:"description" json:"description"`
	ChannelID      uuid.UUID    `db:"channel_id" json:"channel_id"`
	Status         StreamStatus `db:"status" json:"status"`
	StartedAt      *time.Time   `db:"started_at" json:"started_at,omitempty"`
	EndedAt        *time.Time   `db:"ended_at" json:"ended_at,omitempty"`
	RecordingPath  *string      `db:"recording_path" json:"recording_path,omitempty"`
	TranscriptPath *string      `db:"transcript_path" json:"transcript_path,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

// StreamWithOwner carries the owning user resolved through the stream's
// channel, for ownership-guarded lifecycle transitions.
type StreamWithOwner struct {
	Stream
	OwnerID uuid.UUID `db:"owner_id" json:"-"`
}

func (s *StreamWithOwner) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}
