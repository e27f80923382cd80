// Package progress folds evaluation results into the learner's durable
// progress and derives ratings from it.
package progress

import "maps"

// Record is the best result achieved on one challenge.
type Record struct {
	BestScore    int
	BestFeedback string
}

// State is the learner's progression. The zero value is not ready for use;
// call New.
type State struct {
	// CurrentIndex is the position of the active challenge in the catalog.
	CurrentIndex int

	// Points is the sum of every rounded score ever awarded.
	Points int

	// Streak counts consecutive passing results.
	Streak int

	// Records holds the best result per challenge id.
	Records map[string]Record
}

// New returns the initial state: first challenge, no points, no records.
func New() State {
	return State{Records: make(map[string]Record)}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Records = maps.Clone(s.Records)
	if out.Records == nil {
		out.Records = make(map[string]Record)
	}
	return out
}

// Attempted reports whether the challenge has a record.
func (s State) Attempted(challengeID string) bool {
	_, ok := s.Records[challengeID]
	return ok
}

// Completed reports whether the challenge's best score passes.
func (s State) Completed(challengeID string) bool {
	r, ok := s.Records[challengeID]
	return ok && Passed(r.BestScore)
}
