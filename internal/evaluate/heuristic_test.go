package evaluate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptquest/promptquest/internal/catalog"
)

func challenge(t *testing.T, id string) catalog.Challenge {
	t.Helper()
	ch, ok := catalog.Default().ByID(id)
	require.True(t, ok, "challenge %s", id)
	return ch
}

func TestHeuristic_PhotosynthesisScenario(t *testing.T) {
	h := NewHeuristicEvaluator()
	res := h.Judge("You are a science tutor. Explain photosynthesis to a 10-year-old in simple, friendly language.", challenge(t, "l1c1"))

	// Base 40, verb + audience + role cues, topic bonus.
	assert.Equal(t, 80, res.Score)
	assert.Equal(t, SourceLocal, res.Source)
	assert.Equal(t, LocalFeedback, res.Feedback)
	assert.Empty(t, res.Suggestions)
	assert.NotNil(t, res.Suggestions)
}

func TestHeuristic_CaseInsensitive(t *testing.T) {
	h := NewHeuristicEvaluator()
	lower := h.Judge("you are a tutor. explain photosynthesis to a 10-year-old.", challenge(t, "l1c1"))
	upper := h.Judge("YOU ARE A TUTOR. EXPLAIN PHOTOSYNTHESIS TO A 10-YEAR-OLD.", challenge(t, "l1c1"))
	assert.Equal(t, lower, upper)
}

func TestHeuristic_Scoring(t *testing.T) {
	tests := []struct {
		name       string
		submission string
		id         string
		want       int
	}{
		{"no cues", "Tell me about cats.", "l1c2", 40},
		{"all five cues", "You are a teacher. Explain, for students, in a bullet list, with one example.", "l1c2", 90},
		{"bonus needs photosynthesis challenge", "Explain photosynthesis.", "l1c2", 50},
		{"bonus on photosynthesis challenge", "Explain photosynthesis.", "l1c1", 60},
		{"audience variants", "Write for a year 8 class.", "l2c1", 50},
		{"audience without space", "for a 10year old", "l1c1", 50},
		{"role via act as", "Act as a coach.", "l2c1", 50},
		{"format via points", "Give me three points.", "l1c2", 50},
		{"riddle counts as example", "Here is a riddle.", "l2c3", 50},
	}
	h := NewHeuristicEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Judge(tt.submission, challenge(t, tt.id)).Score)
		})
	}
}

func TestHeuristic_LengthPenalty(t *testing.T) {
	h := NewHeuristicEvaluator()
	ch := challenge(t, "l1c2")

	atLimit := strings.Repeat("a", 600)
	assert.Equal(t, 40, h.Judge(atLimit, ch).Score)

	over := strings.Repeat("a", 601)
	res := h.Judge(over, ch)
	assert.Equal(t, 30, res.Score)
	assert.Contains(t, res.Suggestions, tipConcise)

	// Length is counted in characters, not bytes.
	multibyte := strings.Repeat("é", 600)
	assert.Equal(t, 40, h.Judge(multibyte, ch).Score)
}

func TestHeuristic_Tips(t *testing.T) {
	h := NewHeuristicEvaluator()

	t.Run("context challenge without role", func(t *testing.T) {
		res := h.Judge("Explain ratios.", challenge(t, "l2c1"))
		assert.Equal(t, []string{tipRole}, res.Suggestions)
	})

	t.Run("format challenge without explicit format", func(t *testing.T) {
		// "points" satisfies the score check but not the format tip.
		res := h.Judge("Summarise this in 3 points.", challenge(t, "l1c2"))
		assert.Equal(t, []string{tipFormat, tipVerb}, res.Suggestions)
	})

	t.Run("all four tips in order", func(t *testing.T) {
		ch := catalog.Challenge{ID: "x", Title: "X", Tags: []string{"context", "format"}}
		res := h.Judge(strings.Repeat("z", 700), ch)
		assert.Equal(t, []string{tipRole, tipFormat, tipConcise, tipVerb}, res.Suggestions)
	})

	t.Run("verb tip is unconditional", func(t *testing.T) {
		res := h.Judge("Photosynthesis for kids.", challenge(t, "l1c1"))
		assert.Equal(t, []string{tipVerb}, res.Suggestions)
	})
}

func TestHeuristic_EvaluateNeverFails(t *testing.T) {
	h := NewHeuristicEvaluator()
	for _, ch := range catalog.Default().All() {
		res, err := h.Evaluate(context.Background(), "", ch)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Score, 0)
		assert.LessOrEqual(t, res.Score, 100)
		assert.LessOrEqual(t, len(res.Suggestions), MaxSuggestions)
	}
}
