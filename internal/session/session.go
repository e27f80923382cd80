// Package session orchestrates a learner's progress: it is the single
// writer of progress.State, routes submissions through the evaluation
// policy and persists every change.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/promptquest/promptquest/internal/catalog"
	"github.com/promptquest/promptquest/internal/evaluate"
	"github.com/promptquest/promptquest/internal/logging"
	"github.com/promptquest/promptquest/internal/progress"
)

// Judge scores a submission and never fails. *evaluate.Policy is the
// production implementation.
type Judge interface {
	Evaluate(ctx context.Context, submission string, ch catalog.Challenge) evaluate.Result
}

// Outcome is what a successful submission produced.
type Outcome struct {
	AttemptID   string
	ChallengeID string
	Result      evaluate.Result
	Stars       int
	Passed      bool
	Improved    bool // the record for the challenge was replaced
	Summary     progress.Summary
}

// Session holds the learner's state for one process.
type Session struct {
	cat       *catalog.Catalog
	judge     Judge
	persister *progress.Persister
	log       *zap.Logger

	busy *semaphore.Weighted

	mu    sync.Mutex
	state progress.State
	epoch uint64 // bumped by Reset
}

// New returns a Session hydrated from persister.
func New(ctx context.Context, cat *catalog.Catalog, judge Judge, persister *progress.Persister, log *zap.Logger) *Session {
	return &Session{
		cat:       cat,
		judge:     judge,
		persister: persister,
		log:       logging.OrNop(log).Named("session"),
		busy:      semaphore.NewWeighted(1),
		state:     persister.LoadOrNew(ctx),
	}
}

// Submit evaluates text against the current challenge and folds the
// result into the state.
func (s *Session) Submit(ctx context.Context, text string) (Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return Outcome{}, ErrEmptySubmission
	}
	if !s.busy.TryAcquire(1) {
		return Outcome{}, ErrBusy
	}
	defer s.busy.Release(1)

	s.mu.Lock()
	ch, err := s.cat.Get(s.state.CurrentIndex)
	epoch := s.epoch
	s.mu.Unlock()
	if err != nil {
		return Outcome{}, err
	}

	attemptID := uuid.NewString()
	log := s.log.With(zap.String("attempt_id", attemptID), zap.String("challenge_id", ch.ID))
	log.Debug("evaluating submission")

	res := s.judge.Evaluate(ctx, text, ch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, err := s.cat.Get(s.state.CurrentIndex); err != nil || cur.ID != ch.ID || s.epoch != epoch {
		log.Info("discarding stale evaluation", zap.Int("score", res.Score))
		return Outcome{}, ErrStale
	}

	improved := progress.Improves(s.state, ch.ID, res)
	s.state = progress.Apply(s.state, ch.ID, res)
	s.persister.Save(context.WithoutCancel(ctx), s.state)

	log.Debug("submission applied",
		zap.Int("score", res.Score),
		zap.String("source", string(res.Source)),
		zap.Bool("improved", improved),
	)

	return Outcome{
		AttemptID:   attemptID,
		ChallengeID: ch.ID,
		Result:      res,
		Stars:       progress.Stars(res.Score),
		Passed:      progress.Passed(res.Score),
		Improved:    improved,
		Summary:     progress.Summarize(s.state, s.cat),
	}, nil
}

// Current returns the active challenge and its zero-based index.
func (s *Session) Current() (catalog.Challenge, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, _ := s.cat.Get(s.state.CurrentIndex)
	return ch, s.state.CurrentIndex
}

// State returns a copy of the current state.
func (s *Session) State() progress.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Summary digests the current state.
func (s *Session) Summary() progress.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return progress.Summarize(s.state, s.cat)
}

// Next moves to the following challenge, stopping at the last one.
func (s *Session) Next(ctx context.Context) catalog.Challenge {
	return s.move(ctx, func(st progress.State) progress.State {
		return progress.Advance(st, s.cat.Len())
	})
}

// Prev moves to the preceding challenge, stopping at the first one.
func (s *Session) Prev(ctx context.Context) catalog.Challenge {
	return s.move(ctx, func(st progress.State) progress.State {
		return progress.Retreat(st, s.cat.Len())
	})
}

// GoTo moves to challenge i, clamped to the catalog.
func (s *Session) GoTo(ctx context.Context, i int) catalog.Challenge {
	return s.move(ctx, func(st progress.State) progress.State {
		return progress.GoTo(st, i, s.cat.Len())
	})
}

func (s *Session) move(ctx context.Context, fn func(progress.State) progress.State) catalog.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.state)
	if next.CurrentIndex != s.state.CurrentIndex {
		s.state = next
		s.persister.Save(ctx, s.state)
	}
	ch, _ := s.cat.Get(s.state.CurrentIndex)
	return ch
}

// Reset discards all progress, in memory and persisted.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = progress.New()
	s.epoch++
	return s.persister.Clear(ctx)
}
