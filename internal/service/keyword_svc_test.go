package service

import (
	"reflect"
	"testing"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
)

func titled(titles ...string) []model.Video {
	videos := make([]model.Video, 0, len(titles))
	for _, t := range titles {
		videos = append(videos, model.Video{Title: t})
	}
	return videos
}

func TestKeywords_CaseFoldingAndCounting(t *testing.T) {
	svc := NewKeywordService(2, 10)
	got := svc.Extract(titled("Golang Tips", "GOLANG tricks", "golang"))

	if len(got) == 0 || got[0].Keyword != "golang" || got[0].Count != 3 {
		t.Fatalf("top keyword = %+v, want golang x3", got)
	}
}

func TestKeywords_StopwordsNeverSurface(t *testing.T) {
	svc := NewKeywordService(2, 10)
	got := svc.Extract(titled(
		"How to tune the guitar",
		"The guitar and your amp",
	))

	for _, kw := range got {
		switch kw.Keyword {
		case "how", "to", "the", "and", "your":
			t.Errorf("stopword %q surfaced in output", kw.Keyword)
		}
	}
	if len(got) == 0 || got[0].Keyword != "guitar" {
		t.Errorf("top keyword = %+v, want guitar", got)
	}
}

func TestKeywords_ShortAndNumericTokensDropped(t *testing.T) {
	svc := NewKeywordService(2, 10)
	got := svc.Extract(titled("x 2024 review", "x 2024 review"))

	for _, kw := range got {
		if kw.Keyword == "x" {
			t.Error("single-character token should be dropped")
		}
		if kw.Keyword == "2024" {
			t.Error("pure-numeric token should be dropped")
		}
	}
	if len(got) != 1 || got[0].Keyword != "review" {
		t.Errorf("got %+v, want only review", got)
	}
}

func TestKeywords_DescriptionsAreIncluded(t *testing.T) {
	svc := NewKeywordService(2, 10)
	videos := []model.Video{
		{Title: "Morning routine", Description: "A productivity walkthrough"},
	}
	got := svc.Extract(videos)

	found := false
	for _, kw := range got {
		if kw.Keyword == "productivity" {
			found = true
		}
	}
	if !found {
		t.Errorf("description token missing from %+v", got)
	}
}

func TestKeywords_TieBreaksLexicographically(t *testing.T) {
	svc := NewKeywordService(2, 10)
	got := svc.Extract(titled("zebra apple", "zebra apple"))

	if len(got) != 2 {
		t.Fatalf("got %d keywords, want 2", len(got))
	}
	if got[0].Keyword != "apple" || got[1].Keyword != "zebra" {
		t.Errorf("equal counts must order lexicographically, got %+v", got)
	}
}

func TestKeywords_TopNTruncation(t *testing.T) {
	svc := NewKeywordService(2, 3)
	got := svc.Extract(titled("alpha bravo charlie delta echo foxtrot"))

	if len(got) != 3 {
		t.Errorf("got %d keywords, want top 3", len(got))
	}
}

func TestKeywords_Idempotent(t *testing.T) {
	svc := NewKeywordService(2, 10)
	videos := titled(
		"Guitar lesson for beginners",
		"Guitar setup guide 2024",
		"Why your guitar sounds wrong",
	)

	first := svc.Extract(videos)
	second := svc.Extract(videos)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestKeywords_EmptyInput(t *testing.T) {
	svc := NewKeywordService(2, 10)
	if got := svc.Extract(nil); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}
