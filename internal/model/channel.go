package model

import "time"

// ResolvedChannel is the result of turning a raw query into a canonical
// channel identity. Handle is kept only when the query carried one.
type ResolvedChannel struct {
	ID     string `json:"id"`
	Handle string `json:"handle,omitempty"`
}

// Channel holds the public metadata of a YouTube channel as exposed by the
// uploads feed. SubscriberCount and PublishedAt stay nil when the source
// does not report them.
type Channel struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	Description     string     `json:"description"`
	Handle          string     `json:"handle,omitempty"`
	SubscriberCount *int64     `json:"subscriberCount,omitempty"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
}

// ChannelFeed is one channel's metadata plus its most recent uploads,
// newest first. It lives for the duration of a single request and is
// never persisted.
type ChannelFeed struct {
	Channel Channel `json:"channel"`
	Videos  []Video `json:"videos"`
}
