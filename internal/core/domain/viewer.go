package domain

import (
	"time"

	"github.com/google/uuid"
)

// Viewer is one audience member's presence window on a single stream.
// A nil LeftAt means the viewer is currently watching; departure is
// permanent and rejoining requires a fresh registration row.
type Viewer struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	Email     string     `db:"email" json:"email"`
	StreamID  uuid.UUID  `db:"stream_id" json:"stream_id"`
	JoinedAt  time.Time  `db:"joined_at" json:"joined_at"`
	LeftAt    *time.Time `db:"left_at" json:"left_at,omitempty"`
}

func (v *Viewer) Present() bool {
	return v.LeftAt == nil
}
