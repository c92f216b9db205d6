package domain

import (
	"time"

	"github.com/google/uuid"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ChatMessage belongs to exactly one stream. ViewerID is nil for
// anonymous or streamer-originated messages.
type ChatMessage struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	StreamID  uuid.UUID  `db:"stream_id" json:"stream_id"`
	ViewerID  *uuid.UUID `db:"viewer_id" json:"viewer_id,omitempty"`
	Message   string     `db:"message" json:"message"`
	Sentiment *Sentiment `db:"sentiment" json:"sentiment,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
