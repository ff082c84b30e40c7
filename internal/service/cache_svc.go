package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Resolve entries outlive report entries: handles move rarely, feeds move
// with every upload.
const (
	ResolveCacheTTL = time.Hour

	defaultReportTTL = 15 * time.Minute
)

// CacheService provides a Redis cache-aside layer for finished reports and
// handle resolutions, keyed by canonical channel ID and handle. Never
// ambient state: one explicit instance, bounded TTLs.
type CacheService struct {
	rdb       *redis.Client
	reportTTL time.Duration

	hits   prometheus.Counter
	misses prometheus.Counter

	hitCount  atomic.Int64
	missCount atomic.Int64
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string, reportTTL time.Duration) *CacheService {
	if reportTTL <= 0 {
		reportTTL = defaultReportTTL
	}

	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{reportTTL: reportTTL}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{reportTTL: reportTTL}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{reportTTL: reportTTL}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, reportTTL: reportTTL}
}

// InstrumentWith attaches hit/miss counters. Registered centrally with the
// rest of the collectors, handed in here to keep the registry in one place.
func (c *CacheService) InstrumentWith(hits, misses prometheus.Counter) {
	c.hits = hits
	c.misses = misses
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetReport retrieves a cached analysis report. Returns nil if not cached
// or cache is disabled.
func (c *CacheService) GetReport(ctx context.Context, channelID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, reportKey(channelID)).Bytes()
	if err == redis.Nil {
		c.countMiss()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.countHit()
	return data, nil
}

// SetReport stores a finished report.
func (c *CacheService) SetReport(ctx context.Context, channelID string, report interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, reportKey(channelID), b, c.reportTTL).Err()
}

// GetResolved retrieves a cached handle resolution. Returns "" when not cached.
func (c *CacheService) GetResolved(ctx context.Context, handle string) (string, error) {
	if c.rdb == nil {
		return "", nil
	}
	id, err := c.rdb.Get(ctx, resolveKey(handle)).Result()
	if err == redis.Nil {
		c.countMiss()
		return "", nil
	}
	if err != nil {
		return "", err
	}
	c.countHit()
	return id, nil
}

// SetResolved stores a handle resolution.
func (c *CacheService) SetResolved(ctx context.Context, handle, channelID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, resolveKey(handle), channelID, ResolveCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Counts returns the lifetime hit/miss totals for the stats endpoint.
func (c *CacheService) Counts() (hits, misses int64) {
	return c.hitCount.Load(), c.missCount.Load()
}

func (c *CacheService) countHit() {
	c.hitCount.Add(1)
	if c.hits != nil {
		c.hits.Inc()
	}
}

func (c *CacheService) countMiss() {
	c.missCount.Add(1)
	if c.misses != nil {
		c.misses.Inc()
	}
}

func reportKey(channelID string) string {
	return fmt.Sprintf("report:%s", channelID)
}

func resolveKey(handle string) string {
	return fmt.Sprintf("resolve:%s", handle)
}
