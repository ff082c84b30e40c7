package service

import (
	"math"
	"sort"
	"time"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

// cadenceWindow anchors the recent-uploads count on the latest upload's
// timestamp rather than wall-clock "now", so reports are reproducible.
// The boundary is inclusive.
const cadenceWindow = 30 * 24 * time.Hour

// CadenceService computes publishing-frequency statistics. Pure: no
// failure modes, empty input yields the "not enough data" state.
type CadenceService struct{}

func NewCadenceService() *CadenceService {
	return &CadenceService{}
}

// Analyze sorts defensively (input order never matters), then derives the
// average gap, the 30-day upload count, the consistency score, and the
// human-readable summary bucket.
func (s *CadenceService) Analyze(videos []model.Video) model.CadenceStats {
	sorted := make([]model.Video, len(videos))
	copy(sorted, videos)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	stats := model.CadenceStats{Summary: summarize(nil)}
	if len(sorted) == 0 {
		return stats
	}

	latest := sorted[len(sorted)-1].PublishedAt
	for _, v := range sorted {
		if latest.Sub(v.PublishedAt) <= cadenceWindow {
			stats.Last30Days++
		}
	}

	if len(sorted) < 2 {
		return stats
	}

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].PublishedAt.Sub(sorted[i-1].PublishedAt).Hours()/24)
	}

	mean := meanOf(gaps)
	stats.AverageDays = &mean

	// A single gap cannot claim consistency, so the score only leaves its
	// neutral 0 once two or more gaps exist.
	if len(gaps) >= 2 && mean > 0 {
		stats.ConsistencyScore = clamp01(1 - stddevOf(gaps, mean)/mean)
	}

	stats.Summary = summarize(stats.AverageDays)
	return stats
}

// summarize buckets the average interval into the labels the web client
// derives on its own from averageDays. The thresholds here and there must
// stay in lock-step.
func summarize(avgDays *float64) string {
	switch {
	case avgDays == nil || *avgDays == 0:
		return "Not enough data"
	case *avgDays < 1:
		return "Multiple uploads per day"
	case *avgDays < 2:
		return "~ every other day"
	case *avgDays < 4:
		return "2-3 videos per week"
	case *avgDays < 8:
		return "Weekly"
	case *avgDays < 15:
		return "Bi-weekly"
	case *avgDays < 30:
		return "Monthly"
	default:
		return "Sporadic"
	}
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddevOf(values []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
