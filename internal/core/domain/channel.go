package domain

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	OwnerID     uuid.UUID `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// IsOwnedBy is the ownership capability check used by every guarded
// channel and stream operation.
func (ch *Channel) IsOwnedBy(userID uuid.UUID) bool {
	return ch.OwnerID == userID
}
