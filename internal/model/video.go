package model

import "time"

// Video is one normalized upload. Views is a pointer because the uploads
// feed can omit the view counter; a video with unknown views must never be
// treated as a video with zero views.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"publishedAt"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	Views       *int64    `json:"views,omitempty"`
}
