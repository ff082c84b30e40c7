package service

import (
	"context"
	"testing"
	"time"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/youtube"
)

type fakeSource struct {
	feed *youtube.Feed
	err  error
}

func (f *fakeSource) FetchUploads(ctx context.Context, channelID string) (*youtube.Feed, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.feed, nil
}

func TestFeedFetch_OrdersNewestFirst(t *testing.T) {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	views := int64(42)
	source := &fakeSource{feed: &youtube.Feed{
		Channel: youtube.Channel{ID: exampleID, Title: "Example Channel", URL: "https://www.youtube.com/channel/" + exampleID},
		Uploads: []youtube.Upload{
			{ID: "old", PublishedAt: base},
			{ID: "newest", PublishedAt: base.Add(14 * 24 * time.Hour), Views: &views},
			{ID: "middle", PublishedAt: base.Add(7 * 24 * time.Hour)},
		},
	}}

	svc := NewFeedService(source, 15)
	feed, err := svc.Fetch(context.Background(), &model.ResolvedChannel{ID: exampleID, Handle: "@examplechannel"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	wantOrder := []string{"newest", "middle", "old"}
	for i, want := range wantOrder {
		if feed.Videos[i].ID != want {
			t.Errorf("videos[%d] = %q, want %q", i, feed.Videos[i].ID, want)
		}
	}

	if feed.Channel.Handle != "@examplechannel" {
		t.Errorf("handle = %q, want propagated from resolution", feed.Channel.Handle)
	}

	if feed.Videos[0].Views == nil || *feed.Videos[0].Views != 42 {
		t.Errorf("views = %v, want 42", feed.Videos[0].Views)
	}
	// Unknown views stay unknown; they are never coerced to zero.
	if feed.Videos[1].Views != nil {
		t.Errorf("views = %v, want nil for missing counter", *feed.Videos[1].Views)
	}
}

func TestFeedFetch_TruncatesToMaxUploads(t *testing.T) {
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	uploads := make([]youtube.Upload, 0, 6)
	for i := 0; i < 6; i++ {
		uploads = append(uploads, youtube.Upload{
			ID:          string(rune('a' + i)),
			PublishedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	source := &fakeSource{feed: &youtube.Feed{
		Channel: youtube.Channel{ID: exampleID},
		Uploads: uploads,
	}}

	svc := NewFeedService(source, 4)
	feed, err := svc.Fetch(context.Background(), &model.ResolvedChannel{ID: exampleID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(feed.Videos) != 4 {
		t.Fatalf("got %d videos, want 4", len(feed.Videos))
	}
	// Truncation keeps the newest uploads.
	if feed.Videos[0].ID != "f" {
		t.Errorf("videos[0] = %q, want f", feed.Videos[0].ID)
	}
}

func TestFeedFetch_EmptyFeedIsValid(t *testing.T) {
	source := &fakeSource{feed: &youtube.Feed{
		Channel: youtube.Channel{ID: exampleID, Title: "Quiet Channel"},
	}}

	svc := NewFeedService(source, 15)
	feed, err := svc.Fetch(context.Background(), &model.ResolvedChannel{ID: exampleID})
	if err != nil {
		t.Fatalf("zero uploads must not fail: %v", err)
	}
	if len(feed.Videos) != 0 {
		t.Errorf("got %d videos, want 0", len(feed.Videos))
	}
	if feed.Channel.Title != "Quiet Channel" {
		t.Errorf("title = %q", feed.Channel.Title)
	}
}

func TestFeedFetch_PropagatesSourceError(t *testing.T) {
	source := &fakeSource{err: model.ErrUpstreamUnavailable}

	svc := NewFeedService(source, 15)
	_, err := svc.Fetch(context.Background(), &model.ResolvedChannel{ID: exampleID})
	if err != model.ErrUpstreamUnavailable {
		t.Errorf("err = %v, want source error unchanged", err)
	}
}
