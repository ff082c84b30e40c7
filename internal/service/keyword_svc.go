package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/pkg/stopwords"
)

var (
	tokenRe   = regexp.MustCompile(`[a-z0-9']+`)
	numericRe = regexp.MustCompile(`^[0-9]+$`)
)

// KeywordService ranks recurring terms across video titles and
// descriptions. Pure and idempotent: the same videos always produce the
// same ranked list.
type KeywordService struct {
	minLength int
	topN      int
}

func NewKeywordService(minLength, topN int) *KeywordService {
	return &KeywordService{minLength: minLength, topN: topN}
}

// Extract tokenizes on word boundaries, case-folds, strips stopwords,
// short tokens, and pure-numeric tokens, then ranks by frequency. Ties
// break lexicographically so the ordering is deterministic.
func (s *KeywordService) Extract(videos []model.Video) []model.KeywordInsight {
	counts := make(map[string]int)
	for _, v := range videos {
		s.countTokens(counts, v.Title)
		s.countTokens(counts, v.Description)
	}

	insights := make([]model.KeywordInsight, 0, len(counts))
	for keyword, count := range counts {
		insights = append(insights, model.KeywordInsight{Keyword: keyword, Count: count})
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].Count != insights[j].Count {
			return insights[i].Count > insights[j].Count
		}
		return insights[i].Keyword < insights[j].Keyword
	})

	if len(insights) > s.topN {
		insights = insights[:s.topN]
	}
	return insights
}

func (s *KeywordService) countTokens(counts map[string]int, text string) {
	if text == "" {
		return
	}
	for _, token := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		token = strings.Trim(token, "'")
		if len(token) < s.minLength {
			continue
		}
		if numericRe.MatchString(token) {
			continue
		}
		if stopwords.Is(token) {
			continue
		}
		counts[token]++
	}
}
