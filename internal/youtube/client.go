package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	userAgent      = "GrowthPilot/1.0 (+https://github.com/mathieu-neron/GrowthPilot)"

	defaultMaxTries      = 3
	defaultRetryInterval = 500 * time.Millisecond
)

// channelIDRe finds the canonical channel ID embedded in a public channel
// page. Handles and vanity URLs always render it in the page metadata.
var channelIDRe = regexp.MustCompile(`"channelId":"(UC[A-Za-z0-9_-]{22})"`)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithMaxTries bounds the transport-level retry count.
func WithMaxTries(n uint) ClientOption {
	return func(c *Client) {
		c.maxTries = n
	}
}

// WithRetryInterval sets the initial retry backoff interval.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryInterval = d
	}
}

// Client fetches YouTube's public channel pages and uploads feeds. Retries
// and rate limiting live here, at the transport layer, never in the
// analysis logic above it.
type Client struct {
	baseURL       string
	httpClient    HTTPClient
	limiter       *rate.Limiter
	maxTries      uint
	retryInterval time.Duration
}

// NewClient creates a client for YouTube's public surfaces. The outbound
// limiter keeps bursts of analyze requests from hammering the upstream.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(4), 8),
		maxTries:      defaultMaxTries,
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ResolveHandle looks up the canonical channel ID behind a display handle
// by reading the public channel page.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimPrefix(handle, "@")
	pageURL := fmt.Sprintf("%s/@%s", c.baseURL, url.PathEscape(handle))

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return "", err
	}

	m := channelIDRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("%w: no channel behind handle %q", model.ErrNotFound, "@"+handle)
	}
	return string(m[1]), nil
}

// FetchUploads retrieves the channel's uploads Atom feed and normalizes it.
// A channel with zero uploads yields an empty Uploads slice, not an error.
func (c *Client) FetchUploads(ctx context.Context, channelID string) (*Feed, error) {
	feedURL := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", c.baseURL, url.QueryEscape(channelID))

	body, err := c.get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	var doc feedXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed uploads feed: %v", model.ErrUpstreamUnavailable, err)
	}

	feed := &Feed{
		Channel: Channel{
			ID:    channelID,
			Title: doc.Title,
			URL:   doc.Author.URI,
		},
	}
	if feed.Channel.URL == "" {
		feed.Channel.URL = fmt.Sprintf("https://www.youtube.com/channel/%s", channelID)
	}
	if !doc.Published.IsZero() {
		published := doc.Published
		feed.Channel.PublishedAt = &published
	}

	feed.Uploads = make([]Upload, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		up := Upload{
			ID:          e.VideoID,
			Title:       e.Title,
			Description: strings.TrimSpace(e.Media.Description),
			Link:        e.Link.Href,
			PublishedAt: e.Published,
		}
		if up.Link == "" {
			up.Link = fmt.Sprintf("https://www.youtube.com/watch?v=%s", e.VideoID)
		}
		// The views attribute is parsed as a string so a missing counter
		// stays distinguishable from a real zero.
		if raw := e.Media.Community.Statistics.Views; raw != "" {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				up.Views = &n
			}
		}
		feed.Uploads = append(feed.Uploads, up)
	}

	return feed, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("%w: build request: %v", model.ErrUpstreamUnavailable, err))
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Language", "en")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read response: %v", model.ErrUpstreamUnavailable, err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(model.ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, fmt.Errorf("%w: status %d", model.ErrUpstreamUnavailable, resp.StatusCode)
		default:
			return nil, backoff.Permanent(fmt.Errorf("%w: status %d", model.ErrUpstreamUnavailable, resp.StatusCode))
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
	)
}

// Atom mapping for the uploads feed. The namespaced tags follow the yt:
// and media: schemas the feed declares.
type feedXML struct {
	Title     string    `xml:"title"`
	ChannelID string    `xml:"http://www.youtube.com/xml/schemas/2015 channelId"`
	Published time.Time `xml:"published"`
	Author    struct {
		Name string `xml:"name"`
		URI  string `xml:"uri"`
	} `xml:"author"`
	Entries []entryXML `xml:"entry"`
}

type entryXML struct {
	VideoID   string    `xml:"http://www.youtube.com/xml/schemas/2015 videoId"`
	Title     string    `xml:"title"`
	Published time.Time `xml:"published"`
	Link      struct {
		Href string `xml:"href,attr"`
	} `xml:"link"`
	Media struct {
		Description string `xml:"description"`
		Community   struct {
			Statistics struct {
				Views string `xml:"views,attr"`
			} `xml:"statistics"`
		} `xml:"community"`
	} `xml:"http://search.yahoo.com/mrss/ group"`
}
