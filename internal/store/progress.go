package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ProgressKey is the single key the learner snapshot is stored under.
const ProgressKey = "promptquest_progress_v1"

// ProgressSnapshot is the persisted wire form of the learner's progress.
type ProgressSnapshot struct {
	CurrentIndex int                   `json:"currentIndex"`
	Points       int                   `json:"points"`
	Streak       int                   `json:"streak"`
	Completed    map[string]RecordData `json:"completed"`
}

// RecordData is the persisted best result for one challenge.
type RecordData struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// ProgressRepo reads and writes the progress snapshot through a KV port.
type ProgressRepo struct {
	kv KV
}

// NewProgressRepo returns a ProgressRepo storing under ProgressKey in kv.
func NewProgressRepo(kv KV) *ProgressRepo {
	return &ProgressRepo{kv: kv}
}

// Load returns the stored snapshot, or nil if none exists. A value that
// exists but cannot be decoded yields an error wrapping
// ErrPersistenceUnreadable.
func (r *ProgressRepo) Load(ctx context.Context) (*ProgressSnapshot, error) {
	raw, err := r.kv.Get(ctx, ProgressKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return DecodeSnapshot(raw)
}

// Save replaces the stored snapshot.
func (r *ProgressRepo) Save(ctx context.Context, snap *ProgressSnapshot) error {
	out := *snap
	if out.Completed == nil {
		out.Completed = map[string]RecordData{}
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	return r.kv.Set(ctx, ProgressKey, raw)
}

// Clear removes the stored snapshot.
func (r *ProgressRepo) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, ProgressKey)
}

// DecodeSnapshot decodes a snapshot field by field. Only a top level that
// is not a JSON object is rejected; a field that is missing or of the
// wrong type keeps its zero value, including inside records; only null
// records are dropped. "currentChallengeIndex" is read when "currentIndex" is
// absent.
func DecodeSnapshot(raw []byte) (*ProgressSnapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceUnreadable, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: snapshot is null", ErrPersistenceUnreadable)
	}

	snap := &ProgressSnapshot{Completed: map[string]RecordData{}}

	idx, ok := decodeNumber(fields["currentIndex"])
	if !ok {
		idx, _ = decodeNumber(fields["currentChallengeIndex"])
	}
	snap.CurrentIndex = int(idx)
	if n, ok := decodeNumber(fields["points"]); ok {
		snap.Points = int(math.Round(n))
	}
	if n, ok := decodeNumber(fields["streak"]); ok {
		snap.Streak = int(n)
	}

	var completed map[string]json.RawMessage
	if raw, ok := fields["completed"]; ok && json.Unmarshal(raw, &completed) == nil {
		for id, rec := range completed {
			if r, ok := decodeRecord(rec); ok {
				snap.Completed[id] = r
			}
		}
	}

	return snap, nil
}

// decodeRecord keeps every non-null entry so the challenge still counts
// as attempted; a missing or non-numeric score reads as 0.
func decodeRecord(raw json.RawMessage) (RecordData, bool) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return RecordData{}, false
	}
	var rec RecordData
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return rec, true
	}
	if score, ok := decodeNumber(fields["score"]); ok {
		rec.Score = int(math.Round(score))
	}
	if raw, ok := fields["feedback"]; ok {
		_ = json.Unmarshal(raw, &rec.Feedback)
	}
	return rec, true
}

// decodeNumber reports a finite JSON number; any other value is rejected.
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	// Guard the int conversions against absurd magnitudes.
	return math.Max(math.Min(n, math.MaxInt32), math.MinInt32), true
}
