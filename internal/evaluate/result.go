// Package evaluate turns a learner's prompt and a challenge into a bounded
// score with feedback, using a remote judge with a local fallback.
package evaluate

import (
	"context"
	"math"

	"github.com/promptquest/promptquest/internal/catalog"
)

// Source tells where a Result came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

const (
	// MaxScore is the upper bound of every Result score.
	MaxScore = 100

	// MaxSuggestions caps the improvement tips on a Result.
	MaxSuggestions = 4
)

// Result is a single evaluation of a submission.
type Result struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
	Source      Source   `json:"source"`
}

// Evaluator scores a submission against a challenge.
type Evaluator interface {
	Evaluate(ctx context.Context, submission string, ch catalog.Challenge) (Result, error)
}

// Fallback is an evaluator that cannot fail.
type Fallback interface {
	Judge(submission string, ch catalog.Challenge) Result
}

// ClampScore bounds s to [0, MaxScore].
func ClampScore(s int) int {
	return max(0, min(MaxScore, s))
}

// roundClamp rounds f half away from zero and bounds it to [0, MaxScore].
// Non-finite values become 0.
func roundClamp(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return ClampScore(int(math.Round(math.Max(-1, math.Min(MaxScore+1, f)))))
}
