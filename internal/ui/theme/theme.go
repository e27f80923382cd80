// Package theme holds the lipgloss styles used for command output.
package theme

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Cards
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Outcomes
var (
	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Star = lipgloss.NewStyle().
		Foreground(Accent)

	StarEmpty = lipgloss.NewStyle().
			Foreground(Border)
)

// MaxStars is the top star rating.
const MaxStars = 3

// Stars renders n filled stars out of MaxStars.
func Stars(n int) string {
	n = max(0, min(MaxStars, n))
	return Star.Render(strings.Repeat("★", n)) + StarEmpty.Render(strings.Repeat("☆", MaxStars-n))
}

// Score renders a score with the pass or fail style.
func Score(score int, passed bool) string {
	style := Fail
	if passed {
		style = Pass
	}
	return style.Render(strconv.Itoa(score) + "/100")
}

// Marker renders the per-challenge status glyph: passed, attempted or
// untouched.
func Marker(attempted, passed bool) string {
	switch {
	case passed:
		return Pass.Render("✓")
	case attempted:
		return Star.Render("•")
	default:
		return StarEmpty.Render("·")
	}
}
