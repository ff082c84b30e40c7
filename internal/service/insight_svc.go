package service

import (
	"fmt"
	"math"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

const (
	minActions = 2
	maxActions = 4

	lowConsistency = 0.5
	sparseMonth    = 4
)

// InsightService turns the cadence and keyword signals into recommended
// actions and a narrative playbook. Pure over its inputs with no
// randomness, so identical inputs always produce identical output.
type InsightService struct{}

func NewInsightService() *InsightService {
	return &InsightService{}
}

// Synthesize selects between 2 and 4 actions from a fixed, condition-gated
// catalog and fills the playbook templates with the channel title, top
// keyword, and cadence summary.
func (s *InsightService) Synthesize(feed *model.ChannelFeed, cadence model.CadenceStats, keywords []model.KeywordInsight) ([]model.ActionItem, model.Playbook) {
	title := feed.Channel.Title
	if title == "" {
		title = "Your channel"
	}
	topKeyword := "your niche"
	if len(keywords) > 0 {
		topKeyword = keywords[0].Keyword
	}

	var actions []model.ActionItem

	if len(feed.Videos) >= 2 && cadence.ConsistencyScore < lowConsistency {
		actions = append(actions, model.ActionItem{
			Title: "Tighten your schedule",
			Description: fmt.Sprintf(
				"Upload gaps vary widely (consistency %d%%). Pick one publish day and hold it for six weeks so subscribers and the algorithm can rely on you.",
				int(math.Round(cadence.ConsistencyScore*100))),
		})
	}

	if len(feed.Videos) > 0 && cadence.Last30Days < sparseMonth {
		actions = append(actions, model.ActionItem{
			Title: "Raise your near-term output",
			Description: fmt.Sprintf(
				"Only %d upload(s) landed in the 30 days before your latest video. Bank two videos ahead so a slow week never becomes a silent month.",
				cadence.Last30Days),
		})
	}

	if len(keywords) >= 2 {
		if keywords[0].Count >= 2*keywords[1].Count {
			actions = append(actions, model.ActionItem{
				Title: fmt.Sprintf("Double down on %q", topKeyword),
				Description: fmt.Sprintf(
					"%q shows up far more than any other theme in your recent uploads. Turn it into a named series with a recognizable thumbnail style.",
					topKeyword),
			})
		} else {
			actions = append(actions, model.ActionItem{
				Title: "Sharpen your positioning",
				Description: fmt.Sprintf(
					"No single theme dominates your recent titles. Lead with %q in your next three uploads and watch which framing holds attention.",
					topKeyword),
			})
		}
	}

	// Fixed fallbacks keep the floor at two recommendations even for
	// channels with nothing to flag.
	fallbacks := []model.ActionItem{
		{
			Title: "Audit your packaging",
			Description: fmt.Sprintf(
				"Rewrite your last five titles as questions or outcomes around %q and compare click-through once the next batch ships.",
				topKeyword),
		},
		{
			Title:       "Study your breakout upload",
			Description: "Find the recent video that outperformed its neighbors and list what its hook, length, and thumbnail did differently. Repeat two of those choices.",
		},
	}
	for _, fb := range fallbacks {
		if len(actions) >= minActions {
			break
		}
		actions = append(actions, fb)
	}
	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}

	playbook := model.Playbook{
		NarrativeHook: fmt.Sprintf(
			"%s is building momentum around %q. Lean into the story only this channel can tell about it.",
			title, topKeyword),
		CadenceFocus: cadenceFocus(cadence),
		PackagingTips: []string{
			fmt.Sprintf("Put %q in the first 40 characters of the title so it survives truncation.", topKeyword),
			"Design thumbnails around one face or one object; three-element thumbnails lose on small screens.",
			fmt.Sprintf("Open every video by naming the payoff a %q viewer came for, inside the first 15 seconds.", topKeyword),
		},
		CollaborationIdeas: []string{
			fmt.Sprintf("Trade guest segments with a similar-sized channel covering %q from another angle.", topKeyword),
			"Run a duet-style response to the most commented video in your niche this month.",
			fmt.Sprintf("Pitch a %q roundup to a newsletter or podcast your audience already reads.", topKeyword),
		},
	}

	return actions, playbook
}

func cadenceFocus(cadence model.CadenceStats) string {
	if cadence.AverageDays == nil {
		return "There is not enough upload history to read a rhythm yet. Ship the next three videos on a fixed weekday and the cadence picture will come into focus."
	}
	if cadence.ConsistencyScore >= 0.8 {
		return fmt.Sprintf(
			"Current rhythm: %s, and it is steady (consistency %d%%). Protect the streak; consistency is compounding.",
			cadence.Summary, int(math.Round(cadence.ConsistencyScore*100)))
	}
	return fmt.Sprintf(
		"Current rhythm: %s, but the gaps wobble (consistency %d%%). Aim for the same publish window each week before adding volume.",
		cadence.Summary, int(math.Round(cadence.ConsistencyScore*100)))
}
