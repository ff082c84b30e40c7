package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

const uploadsFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <yt:channelId>UCuAXFkgsw1L7xaCfnd5JJOw</yt:channelId>
  <title>Example Channel</title>
  <author>
    <name>Example Channel</name>
    <uri>https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw</uri>
  </author>
  <published>2015-03-01T12:00:00+00:00</published>
  <entry>
    <yt:videoId>dQw4w9WgXcQ</yt:videoId>
    <title>First Upload</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=dQw4w9WgXcQ"/>
    <published>2025-08-01T10:00:00+00:00</published>
    <media:group>
      <media:description>A guitar lesson for beginners</media:description>
      <media:community>
        <media:statistics views="1234"/>
      </media:community>
    </media:group>
  </entry>
  <entry>
    <yt:videoId>abc123def45</yt:videoId>
    <title>Second Upload</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123def45"/>
    <published>2025-08-08T10:00:00+00:00</published>
    <media:group>
      <media:description></media:description>
    </media:group>
  </entry>
</feed>`

const channelPageFixture = `<!DOCTYPE html><html><head>
<script>var ytInitialData = {"responseContext":{},"metadata":{"channelMetadataRenderer":{"title":"Example Channel","externalId":"UCuAXFkgsw1L7xaCfnd5JJOw","channelId":"UCuAXFkgsw1L7xaCfnd5JJOw"}}};</script>
</head><body></body></html>`

func TestFetchUploads_ParsesFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feeds/videos.xml" {
			t.Errorf("expected /feeds/videos.xml, got %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("channel_id"); got != "UCuAXFkgsw1L7xaCfnd5JJOw" {
			t.Errorf("channel_id = %q, want UCuAXFkgsw1L7xaCfnd5JJOw", got)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(uploadsFeedFixture))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	feed, err := client.FetchUploads(context.Background(), "UCuAXFkgsw1L7xaCfnd5JJOw")
	if err != nil {
		t.Fatalf("FetchUploads failed: %v", err)
	}

	if feed.Channel.Title != "Example Channel" {
		t.Errorf("channel title = %q, want %q", feed.Channel.Title, "Example Channel")
	}
	if feed.Channel.URL != "https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw" {
		t.Errorf("channel url = %q", feed.Channel.URL)
	}
	if feed.Channel.PublishedAt == nil {
		t.Fatal("channel publishedAt should be set from the feed")
	}
	if feed.Channel.SubscriberCount != nil {
		t.Error("subscriber count is not in the feed and must stay nil")
	}

	if len(feed.Uploads) != 2 {
		t.Fatalf("got %d uploads, want 2", len(feed.Uploads))
	}

	first := feed.Uploads[0]
	if first.ID != "dQw4w9WgXcQ" || first.Title != "First Upload" {
		t.Errorf("first upload = %+v", first)
	}
	if first.Views == nil || *first.Views != 1234 {
		t.Errorf("first upload views = %v, want 1234", first.Views)
	}
	if first.Description != "A guitar lesson for beginners" {
		t.Errorf("first upload description = %q", first.Description)
	}
	want := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("first upload publishedAt = %v, want %v", first.PublishedAt, want)
	}

	second := feed.Uploads[1]
	if second.Views != nil {
		t.Errorf("second upload has no statistics element, views must be nil, got %v", *second.Views)
	}
	if second.Description != "" {
		t.Errorf("second upload description = %q, want empty", second.Description)
	}
}

func TestFetchUploads_EmptyFeedIsNotAnError(t *testing.T) {
	empty := `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>Quiet Channel</title></feed>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(empty))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	feed, err := client.FetchUploads(context.Background(), "UCuAXFkgsw1L7xaCfnd5JJOw")
	if err != nil {
		t.Fatalf("empty feed should not fail: %v", err)
	}
	if len(feed.Uploads) != 0 {
		t.Errorf("got %d uploads, want 0", len(feed.Uploads))
	}
}

func TestFetchUploads_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxTries(1))

	_, err := client.FetchUploads(context.Background(), "UCdoesnotexist0000000000")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchUploads_ServerErrorMapsToUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxTries(1))

	_, err := client.FetchUploads(context.Background(), "UCuAXFkgsw1L7xaCfnd5JJOw")
	if !errors.Is(err, model.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestFetchUploads_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(uploadsFeedFixture))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxTries(3), WithRetryInterval(time.Millisecond))

	feed, err := client.FetchUploads(context.Background(), "UCuAXFkgsw1L7xaCfnd5JJOw")
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(feed.Uploads) != 2 {
		t.Errorf("got %d uploads, want 2", len(feed.Uploads))
	}
}

func TestResolveHandle_ExtractsChannelID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/@examplechannel" {
			t.Errorf("expected /@examplechannel, got %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(channelPageFixture))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	id, err := client.ResolveHandle(context.Background(), "@examplechannel")
	if err != nil {
		t.Fatalf("ResolveHandle failed: %v", err)
	}
	if id != "UCuAXFkgsw1L7xaCfnd5JJOw" {
		t.Errorf("id = %q, want UCuAXFkgsw1L7xaCfnd5JJOw", id)
	}
}

func TestResolveHandle_PageWithoutChannelID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>consent wall</body></html>"))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.ResolveHandle(context.Background(), "ghost")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveHandle_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxTries(1))

	_, err := client.ResolveHandle(context.Background(), "ghost")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
