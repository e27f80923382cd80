package progress

import "github.com/promptquest/promptquest/internal/catalog"

// Stars rates a score from 0 to 3.
func Stars(score int) int {
	switch {
	case score >= 85:
		return 3
	case score >= 70:
		return 2
	case score >= 55:
		return 1
	default:
		return 0
	}
}

// RankTitle names a level.
func RankTitle(level int) string {
	switch {
	case level >= 3:
		return "Champion"
	case level == 2:
		return "Pathfinder"
	default:
		return "Explorer"
	}
}

// LevelOf returns the level of the current challenge, or 1 when the index
// is outside the catalog.
func LevelOf(s State, cat *catalog.Catalog) int {
	ch, err := cat.Get(s.CurrentIndex)
	if err != nil {
		return 1
	}
	return ch.Level
}

// Summary is a read-only digest of a State for display.
type Summary struct {
	Index     int // zero-based
	Total     int
	Points    int
	Streak    int
	Stars     int // for the current challenge's best score
	Level     int
	Rank      string
	Attempted int
	Completed int
}

// Summarize derives a Summary from s.
func Summarize(s State, cat *catalog.Catalog) Summary {
	sum := Summary{
		Index:  s.CurrentIndex,
		Total:  cat.Len(),
		Points: s.Points,
		Streak: s.Streak,
		Level:  LevelOf(s, cat),
	}
	sum.Rank = RankTitle(sum.Level)

	if ch, err := cat.Get(s.CurrentIndex); err == nil {
		if r, ok := s.Records[ch.ID]; ok {
			sum.Stars = Stars(r.BestScore)
		}
	}
	for _, ch := range cat.All() {
		if s.Attempted(ch.ID) {
			sum.Attempted++
		}
		if s.Completed(ch.ID) {
			sum.Completed++
		}
	}
	return sum
}
