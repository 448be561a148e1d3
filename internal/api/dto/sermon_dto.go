package dto

import "time"

// SermonRequest payload for sermon create/update.
type SermonRequest struct {
	Title       string    `json:"title"`
	Speaker     string    `json:"speaker"`
	Description string    `json:"description"`
	VideoURL    *string   `json:"video_url"`
	PreachedAt  time.Time `json:"preached_at"`
	Published   bool      `json:"published"`
}

// LiveStatusRequest payload for updating the live-stream state.
type LiveStatusRequest struct {
	OnAir     bool   `json:"on_air"`
	StreamURL string `json:"stream_url"`
	Title     string `json:"title"`
}
