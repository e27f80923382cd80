package progress

import "github.com/promptquest/promptquest/internal/evaluate"

// PassScore is the lowest passing score.
const PassScore = 60

// Passed reports whether score is a pass.
func Passed(score int) bool {
	return score >= PassScore
}

// Apply folds one evaluation of challengeID into s and returns the new
// state. s is not modified. The record is replaced only when the score
// strictly beats the previous best; points grow on every attempt; the
// streak grows on a pass and resets on a fail. CurrentIndex is untouched.
func Apply(s State, challengeID string, res evaluate.Result) State {
	next := s.Clone()
	score := evaluate.ClampScore(res.Score)

	prevBest := 0
	if r, ok := next.Records[challengeID]; ok {
		prevBest = r.BestScore
	}
	if score > prevBest {
		next.Records[challengeID] = Record{BestScore: score, BestFeedback: res.Feedback}
	}

	next.Points += score

	if Passed(score) {
		next.Streak++
	} else {
		next.Streak = 0
	}

	return next
}

// Improves reports whether res would replace the record for challengeID.
func Improves(s State, challengeID string, res evaluate.Result) bool {
	return evaluate.ClampScore(res.Score) > s.Records[challengeID].BestScore
}

// Advance moves to the next challenge, stopping at the last of n.
func Advance(s State, n int) State {
	return GoTo(s, s.CurrentIndex+1, n)
}

// Retreat moves to the previous challenge, stopping at the first.
func Retreat(s State, n int) State {
	return GoTo(s, s.CurrentIndex-1, n)
}

// GoTo moves to challenge i, clamped to [0, n-1].
func GoTo(s State, i, n int) State {
	next := s.Clone()
	next.CurrentIndex = clampIndex(i, n)
	return next
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return max(0, min(n-1, i))
}
