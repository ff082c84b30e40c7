package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

// AnalyzeService is the orchestrator: it sequences resolution, feed
// retrieval, the two independent analyses, and synthesis into one report.
// Either the full report is produced or an error kind surfaces; there is
// no partial-success mode.
type AnalyzeService struct {
	resolver *ResolverService
	feed     *FeedService
	cadence  *CadenceService
	keywords *KeywordService
	insights *InsightService
	cache    *CacheService
	timeout  time.Duration

	served  atomic.Int64
	failed  atomic.Int64
	startAt time.Time
}

func NewAnalyzeService(
	resolver *ResolverService,
	feed *FeedService,
	cadence *CadenceService,
	keywords *KeywordService,
	insights *InsightService,
	cache *CacheService,
	timeout time.Duration,
) *AnalyzeService {
	return &AnalyzeService{
		resolver: resolver,
		feed:     feed,
		cadence:  cadence,
		keywords: keywords,
		insights: insights,
		cache:    cache,
		timeout:  timeout,
		startAt:  time.Now(),
	}
}

// Analyze turns a raw query into a full report. Error kinds from the
// resolver and retriever propagate unchanged; the upstream deadline is
// enforced here so a stuck fetch surfaces as an upstream failure instead
// of hanging.
func (s *AnalyzeService) Analyze(ctx context.Context, query string) (*model.AnalysisReport, error) {
	report, err := s.analyze(ctx, query)
	if err != nil {
		s.failed.Add(1)
		return nil, err
	}
	s.served.Add(1)
	return report, nil
}

func (s *AnalyzeService) analyze(ctx context.Context, query string) (*model.AnalysisReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resolved, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, mapDeadline(err)
	}

	// Cache-aside on the canonical ID: check Redis first, fall back to the
	// pipeline, then populate.
	if s.cache != nil {
		cached, err := s.cache.GetReport(ctx, resolved.ID)
		if err != nil {
			log.Printf("cache: report get error: %v", err)
		} else if cached != nil {
			var report model.AnalysisReport
			if err := json.Unmarshal(cached, &report); err == nil {
				return &report, nil
			}
		}
	}

	feed, err := s.feed.Fetch(ctx, resolved)
	if err != nil {
		return nil, mapDeadline(err)
	}

	// Cadence and keyword extraction are independent pure computations;
	// run them concurrently and join before synthesis.
	var (
		stats    model.CadenceStats
		insights []model.KeywordInsight
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats = s.cadence.Analyze(feed.Videos)
	}()
	go func() {
		defer wg.Done()
		insights = s.keywords.Extract(feed.Videos)
	}()
	wg.Wait()

	actions, playbook := s.insights.Synthesize(feed, stats, insights)

	report := &model.AnalysisReport{
		Channel:         feed.Channel,
		LatestUploads:   feed.Videos,
		UploadCadence:   stats,
		KeywordInsights: insights,
		Actions:         actions,
		Playbook:        playbook,
	}

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, resolved.ID, report); err != nil {
			log.Printf("cache: report set error: %v", err)
		}
	}

	return report, nil
}

// Stats are the process counters served by /api/stats.
type Stats struct {
	AnalysesServed int64 `json:"analysesServed"`
	AnalysesFailed int64 `json:"analysesFailed"`
	CacheHits      int64 `json:"cacheHits"`
	CacheMisses    int64 `json:"cacheMisses"`
	UptimeSeconds  int64 `json:"uptimeSeconds"`
}

func (s *AnalyzeService) Stats() Stats {
	stats := Stats{
		AnalysesServed: s.served.Load(),
		AnalysesFailed: s.failed.Load(),
		UptimeSeconds:  int64(time.Since(s.startAt).Seconds()),
	}
	if s.cache != nil {
		stats.CacheHits, stats.CacheMisses = s.cache.Counts()
	}
	return stats
}

// mapDeadline folds a blown request deadline into the upstream error kind;
// a hung fetch is indistinguishable from an unavailable upstream to the
// caller.
func mapDeadline(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: upstream fetch timed out", model.ErrUpstreamUnavailable)
	}
	return err
}
