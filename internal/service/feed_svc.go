package service

import (
	"context"
	"sort"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/youtube"
)

// UploadSource fetches a channel's public metadata and recent uploads.
// A channel with zero uploads is a valid empty result, not a failure.
type UploadSource interface {
	FetchUploads(ctx context.Context, channelID string) (*youtube.Feed, error)
}

// FeedService retrieves and normalizes a channel's upload listing into the
// ChannelFeed shape the analyzers consume.
type FeedService struct {
	source     UploadSource
	maxUploads int
}

func NewFeedService(source UploadSource, maxUploads int) *FeedService {
	return &FeedService{source: source, maxUploads: maxUploads}
}

// Fetch returns the channel feed with videos ordered newest first and
// truncated to the configured maximum. Absent view counts and descriptions
// stay absent rather than defaulting to zero values.
func (s *FeedService) Fetch(ctx context.Context, resolved *model.ResolvedChannel) (*model.ChannelFeed, error) {
	raw, err := s.source.FetchUploads(ctx, resolved.ID)
	if err != nil {
		return nil, err
	}

	feed := &model.ChannelFeed{
		Channel: model.Channel{
			ID:              raw.Channel.ID,
			Title:           raw.Channel.Title,
			URL:             raw.Channel.URL,
			Description:     raw.Channel.Description,
			Handle:          resolved.Handle,
			SubscriberCount: raw.Channel.SubscriberCount,
			PublishedAt:     raw.Channel.PublishedAt,
		},
		Videos: make([]model.Video, 0, len(raw.Uploads)),
	}

	for _, up := range raw.Uploads {
		feed.Videos = append(feed.Videos, model.Video{
			ID:          up.ID,
			Title:       up.Title,
			PublishedAt: up.PublishedAt,
			Link:        up.Link,
			Description: up.Description,
			Views:       up.Views,
		})
	}

	sort.SliceStable(feed.Videos, func(i, j int) bool {
		return feed.Videos[i].PublishedAt.After(feed.Videos[j].PublishedAt)
	})
	if len(feed.Videos) > s.maxUploads {
		feed.Videos = feed.Videos[:s.maxUploads]
	}

	return feed, nil
}
