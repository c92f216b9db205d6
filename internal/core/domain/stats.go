package domain

import "github.com/google/uuid"

// ViewerStats aggregates presence rows for one stream. Average watch
// time mixes departed viewers (left_at - joined_at) and present ones
// (now - joined_at), in minutes rounded to the nearest integer.
type ViewerStats struct {
	StreamID            uuid.UUID `json:"stream_id"`
	TotalViewers        int       `db:"total_viewers" json:"total_viewers"`
	CurrentViewers      int       `db:"current_viewers" json:"current_viewers"`
	AvgWatchTimeMinutes int       `db:"avg_watch_time_minutes" json:"avg_watch_time_minutes"`
}

type ChatStats struct {
	StreamID       uuid.UUID       `json:"stream_id"`
	TotalMessages  int             `db:"total_messages" json:"total_messages"`
	UniqueChatters int             `db:"unique_chatters" json:"unique_chatters"`
	Sentiment      SentimentCounts `json:"sentiment"`
}

type SentimentCounts struct {
	Positive int `db:"positive_messages" json:"positive"`
	Negative int `db:"negative_messages" json:"negative"`
	Neutral  int `db:"neutral_messages" json:"neutral"`
}

// MoodStat rows come from the external mood-analysis collaborator;
// percentages are rounded independently and may not sum to 100.
type MoodStat struct {
	Mood       string `db:"mood" json:"mood"`
	Count      int    `db:"count" json:"count"`
	Percentage int    `db:"percentage" json:"percentage"`
}

type KeywordStat struct {
	Keyword   string `db:"keyword" json:"keyword"`
	Frequency int    `db:"frequency" json:"frequency"`
}

// CombinedStats composes the per-stream aggregates with the stream row
// itself into one payload.
type CombinedStats struct {
	StreamInfo  *Stream      `json:"stream_info"`
	ViewerStats *ViewerStats `json:"viewer_stats"`
	ChatStats   *ChatStats   `json:"chat_stats"`
	MoodStats   []MoodStat   `json:"mood_stats"`
}
