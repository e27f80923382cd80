package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptquest/promptquest/internal/store"
)

func newTestPersister(t *testing.T) (*Persister, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	return NewPersister(store.NewProgressRepo(kv), 5, nil), kv
}

func TestPersister_LoadAbsent(t *testing.T) {
	p, _ := newTestPersister(t)

	_, ok := p.Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, New(), p.LoadOrNew(context.Background()))
}

func TestPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPersister(t)

	s := New()
	s = Apply(s, "l1c1", result(82, "Good structure."))
	s = Apply(s, "l2c1", result(40, "Too vague."))
	s = GoTo(s, 2, 5)

	p.Save(ctx, s)

	got, ok := p.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, s, got)
}

func TestPersister_CorruptLoadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	p, kv := newTestPersister(t)

	require.NoError(t, kv.Set(ctx, store.ProgressKey, []byte("{not json")))

	_, ok := p.Load(ctx)
	assert.False(t, ok)
}

func TestPersister_RepairsOutOfRangeValues(t *testing.T) {
	ctx := context.Background()
	p, kv := newTestPersister(t)

	raw := `{"currentIndex": 42, "points": -10, "streak": -2,
		"completed": {"l1c1": {"score": 140, "feedback": "x"}, "l1c2": {"score": -5, "feedback": "y"}}}`
	require.NoError(t, kv.Set(ctx, store.ProgressKey, []byte(raw)))

	got, ok := p.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, 4, got.CurrentIndex)
	assert.Equal(t, 0, got.Points)
	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, 100, got.Records["l1c1"].BestScore)
	assert.Equal(t, 0, got.Records["l1c2"].BestScore)
}

func TestPersister_RecordWithoutScoreCountsAsAttempted(t *testing.T) {
	ctx := context.Background()
	p, kv := newTestPersister(t)

	raw := `{"currentIndex": 0, "points": 12, "streak": 0, "completed": {"l1c2": {"feedback": "half-written"}}}`
	require.NoError(t, kv.Set(ctx, store.ProgressKey, []byte(raw)))

	got, ok := p.Load(ctx)
	require.True(t, ok)
	assert.True(t, got.Attempted("l1c2"))
	assert.False(t, got.Completed("l1c2"))
	assert.Equal(t, Record{BestScore: 0, BestFeedback: "half-written"}, got.Records["l1c2"])
}

func TestPersister_Clear(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPersister(t)

	p.Save(ctx, Apply(New(), "l1c1", result(90, "")))
	require.NoError(t, p.Clear(ctx))

	_, ok := p.Load(ctx)
	assert.False(t, ok)
}

type failingStore struct{}

func (failingStore) Load(context.Context) (*store.ProgressSnapshot, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) Save(context.Context, *store.ProgressSnapshot) error {
	return errors.New("disk on fire")
}

func (failingStore) Clear(context.Context) error {
	return errors.New("disk on fire")
}

func TestPersister_FailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	p := NewPersister(failingStore{}, 5, nil)

	assert.NotPanics(t, func() { p.Save(ctx, New()) })
	assert.Equal(t, New(), p.LoadOrNew(ctx))
	assert.Error(t, p.Clear(ctx))
}

func TestToSnapshot(t *testing.T) {
	s := Apply(New(), "l1c1", result(75, "ok"))
	s.CurrentIndex = 1

	snap := ToSnapshot(s)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 75, snap.Points)
	assert.Equal(t, 1, snap.Streak)
	assert.Equal(t, map[string]store.RecordData{"l1c1": {Score: 75, Feedback: "ok"}}, snap.Completed)

	empty := ToSnapshot(New())
	assert.NotNil(t, empty.Completed)
}
