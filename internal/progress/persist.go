package progress

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/promptquest/promptquest/internal/logging"
	"github.com/promptquest/promptquest/internal/store"
)

// SnapshotStore reads and writes the persisted snapshot.
type SnapshotStore interface {
	Load(ctx context.Context) (*store.ProgressSnapshot, error)
	Save(ctx context.Context, snap *store.ProgressSnapshot) error
	Clear(ctx context.Context) error
}

// Persister loads and saves State. Neither direction ever fails the
// caller: unreadable data loads as absent, and save errors are logged and
// dropped.
type Persister struct {
	repo     SnapshotStore
	catalogN int
	log      *zap.Logger
}

// NewPersister returns a Persister for a catalog of catalogN challenges.
func NewPersister(repo SnapshotStore, catalogN int, log *zap.Logger) *Persister {
	return &Persister{repo: repo, catalogN: catalogN, log: logging.OrNop(log).Named("progress")}
}

// Load returns the persisted state, or false when there is none or it
// cannot be read.
func (p *Persister) Load(ctx context.Context) (State, bool) {
	snap, err := p.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrPersistenceUnreadable) {
			p.log.Warn("discarding unreadable progress snapshot", zap.Error(err))
		} else {
			p.log.Warn("failed to read progress snapshot", zap.Error(err))
		}
		return State{}, false
	}
	if snap == nil {
		return State{}, false
	}
	return FromSnapshot(snap, p.catalogN), true
}

// LoadOrNew returns the persisted state or the initial state.
func (p *Persister) LoadOrNew(ctx context.Context) State {
	if s, ok := p.Load(ctx); ok {
		return s
	}
	return New()
}

// Save persists s, best effort.
func (p *Persister) Save(ctx context.Context, s State) {
	if err := p.repo.Save(ctx, ToSnapshot(s)); err != nil {
		p.log.Warn("failed to save progress", zap.Error(err))
	}
}

// Clear removes the persisted state.
func (p *Persister) Clear(ctx context.Context) error {
	return p.repo.Clear(ctx)
}

// ToSnapshot converts s to its wire form.
func ToSnapshot(s State) *store.ProgressSnapshot {
	snap := &store.ProgressSnapshot{
		CurrentIndex: s.CurrentIndex,
		Points:       s.Points,
		Streak:       s.Streak,
		Completed:    make(map[string]store.RecordData, len(s.Records)),
	}
	for id, r := range s.Records {
		snap.Completed[id] = store.RecordData{Score: r.BestScore, Feedback: r.BestFeedback}
	}
	return snap
}

// FromSnapshot hydrates a State from its wire form, repairing values that
// break State's invariants.
func FromSnapshot(snap *store.ProgressSnapshot, catalogN int) State {
	s := New()
	s.CurrentIndex = clampIndex(snap.CurrentIndex, catalogN)
	s.Points = max(0, snap.Points)
	s.Streak = max(0, snap.Streak)
	for id, r := range snap.Completed {
		s.Records[id] = Record{
			BestScore:    max(0, min(100, r.Score)),
			BestFeedback: r.Feedback,
		}
	}
	return s
}
