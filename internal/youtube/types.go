// Package youtube talks to YouTube's public, key-less surfaces: channel
// pages for handle resolution and the uploads Atom feed for recent videos.
package youtube

import "time"

// Channel is the channel metadata carried by the uploads feed. The feed
// does not expose a description or subscriber count, so those stay empty
// or nil until a richer source fills them.
type Channel struct {
	ID              string
	Title           string
	URL             string
	Description     string
	SubscriberCount *int64
	PublishedAt     *time.Time
}

// Upload is one entry of the uploads feed. Views is nil when the feed
// omits the media statistics element.
type Upload struct {
	ID          string
	Title       string
	Description string
	Link        string
	PublishedAt time.Time
	Views       *int64
}

// Feed is the raw, normalized result of one uploads-feed fetch. Ordering
// is whatever the feed returned; callers sort.
type Feed struct {
	Channel Channel
	Uploads []Upload
}
