package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", c.Len())
	}

	wantIDs := []string{"l1c1", "l1c2", "l2c1", "l2c2", "l2c3"}
	for i, id := range wantIDs {
		ch, err := c.Get(i)
		if err != nil {
			t.Fatalf("Get(%d): %v", i, err)
		}
		if ch.ID != id {
			t.Errorf("Get(%d).ID = %q, want %q", i, ch.ID, id)
		}
	}

	levels := map[int]bool{}
	for _, ch := range c.All() {
		levels[ch.Level] = true
		if len(ch.Criteria) == 0 {
			t.Errorf("challenge %q has no criteria", ch.ID)
		}
	}
	if len(levels) < 2 {
		t.Errorf("expected at least two levels, got %d", len(levels))
	}
}

func TestDefaultCatalogContent(t *testing.T) {
	ch, ok := Default().ByID("l1c1")
	if !ok {
		t.Fatal("l1c1 not found")
	}
	if !strings.Contains(strings.ToLower(ch.Title), "photosynthesis") {
		t.Errorf("title = %q, want it to mention photosynthesis", ch.Title)
	}
	if !ch.HasTag("clarity") || ch.HasTag("format") {
		t.Errorf("unexpected tags %v", ch.Tags)
	}

	ch, _ = Default().ByID("l1c2")
	if !ch.HasTag("format") {
		t.Errorf("l1c2 should be tagged format, got %v", ch.Tags)
	}
	if ch.Example == "" || ch.Hint == "" {
		t.Error("expected hint and example on l1c2")
	}
}

func TestGetOutOfRange(t *testing.T) {
	c := Default()
	for _, i := range []int{-1, c.Len(), 100} {
		_, err := c.Get(i)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestByIDMissing(t *testing.T) {
	if _, ok := Default().ByID("nope"); ok {
		t.Fatal("expected ByID to miss")
	}
	if got := Default().IndexOf("nope"); got != -1 {
		t.Fatalf("IndexOf = %d, want -1", got)
	}
	if got := Default().IndexOf("l2c1"); got != 2 {
		t.Fatalf("IndexOf(l2c1) = %d, want 2", got)
	}
}

func TestReturnedChallengesAreCopies(t *testing.T) {
	c := Default()
	ch, _ := c.Get(0)
	ch.Criteria[0] = "mutated"
	ch.Tags[0] = "mutated"

	again, _ := c.Get(0)
	if again.Criteria[0] == "mutated" || again.Tags[0] == "mutated" {
		t.Fatal("catalog was mutated through a returned challenge")
	}
}

func validChallenge(id string) Challenge {
	return Challenge{
		ID:          id,
		Level:       1,
		Number:      1,
		Title:       "T",
		Description: "D",
		Criteria:    []string{"c"},
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		input   []Challenge
		wantErr string
	}{
		{"empty", nil, "no challenges"},
		{"duplicate id", []Challenge{validChallenge("a"), validChallenge("a")}, "duplicate challenge ID"},
		{"missing id", []Challenge{validChallenge("")}, "ID"},
		{"zero level", []Challenge{func() Challenge { c := validChallenge("a"); c.Level = 0; return c }()}, "Level"},
		{"no criteria", []Challenge{func() Challenge { c := validChallenge("a"); c.Criteria = nil; return c }()}, "Criteria"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "challenges: [unclosed"},
		{"missing challenges", "other: 1\n"},
		{"string level", "challenges:\n  - {id: a, level: one, number: 1, title: T, description: D, criteria: [c]}\n"},
		{"unknown field", "challenges:\n  - {id: a, level: 1, number: 1, title: T, description: D, criteria: [c], points: 3}\n"},
		{"duplicate tags", "challenges:\n  - {id: a, level: 1, number: 1, title: T, description: D, criteria: [c], tags: [x, x]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadValid(t *testing.T) {
	c, err := Load([]byte("challenges:\n  - {id: a, level: 1, number: 1, title: T, description: D, criteria: [c], tags: [format]}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ch, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ch.HasTag("format") {
		t.Fatalf("tags = %v", ch.Tags)
	}
}
