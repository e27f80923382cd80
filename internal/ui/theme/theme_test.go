package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStars(t *testing.T) {
	tests := []struct {
		n      int
		filled int
	}{
		{0, 0},
		{2, 2},
		{3, 3},
		{9, 3},
		{-1, 0},
	}
	for _, tt := range tests {
		got := Stars(tt.n)
		assert.Equal(t, tt.filled, strings.Count(got, "★"), "Stars(%d)", tt.n)
		assert.Equal(t, MaxStars-tt.filled, strings.Count(got, "☆"), "Stars(%d)", tt.n)
	}
}

func TestScore(t *testing.T) {
	assert.Contains(t, Score(72, true), "72/100")
	assert.Contains(t, Score(0, false), "0/100")
}

func TestMarker(t *testing.T) {
	assert.Contains(t, Marker(true, true), "✓")
	assert.Contains(t, Marker(true, false), "•")
	assert.Contains(t, Marker(false, false), "·")
}
