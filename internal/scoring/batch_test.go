package scoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/internal/scoring"
)

func TestScoreBatch(t *testing.T) {
	s := newScorer()
	texts := []string{
		"Duty and discipline keep my life in order.",
		"",
		"short",
		"Community and harmony matter most to me.",
	}

	items, err := s.ScoreBatch(context.Background(), texts, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != len(texts) {
		t.Fatalf("items: got %d, want %d", len(items), len(texts))
	}

	for i, item := range items {
		if item.Index != i {
			t.Errorf("item %d: index %d", i, item.Index)
		}
	}

	if items[0].Result == nil || items[0].Result.Dominant != ontology.Blue {
		t.Errorf("item 0: want blue result, got %+v", items[0])
	}
	if items[1].Result != nil || items[1].Reason != scoring.ReasonEmpty {
		t.Errorf("item 1: want empty rejection, got %+v", items[1])
	}
	if items[2].Result != nil || items[2].Reason != scoring.ReasonTooShort {
		t.Errorf("item 2: want too_short rejection, got %+v", items[2])
	}
	if items[2].Error == "" {
		t.Error("item 2: error message should be set")
	}
	if items[3].Result == nil || items[3].Result.Dominant != ontology.Green {
		t.Errorf("item 3: want green result, got %+v", items[3])
	}
}

func TestScoreBatchMatchesSequential(t *testing.T) {
	s := newScorer()
	texts := []string{
		"Power and strength win every fight.",
		"Tradition and ritual bind the tribe.",
		"Systems thinking reveals hidden patterns.",
		"Success comes from strategy and ambition.",
		"Wisdom and unity guide the planetary whole.",
	}

	items, err := s.ScoreBatch(context.Background(), texts, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, text := range texts {
		want, err := s.Score(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items[i].Result.Dominant != want.Dominant {
			t.Errorf("item %d: got %s, want %s", i, items[i].Result.Dominant, want.Dominant)
		}
	}
}

func TestScoreBatchCancelled(t *testing.T) {
	s := newScorer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ScoreBatch(ctx, []string{"Duty and discipline keep my life in order."}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err: got %v, want context.Canceled", err)
	}
}
