package domain

import "time"

// Sermon is a recorded message. JSON tags keep the cached representation
// stable across releases.
type Sermon struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Speaker     string    `json:"speaker"`
	Description string    `json:"description"`
	VideoURL    *string   `json:"video_url"`
	PreachedAt  time.Time `json:"preached_at"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LiveStatus is the current live-stream state. Stored in redis only; there
// is no history.
type LiveStatus struct {
	OnAir     bool      `json:"on_air"`
	StreamURL string    `json:"stream_url"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}
