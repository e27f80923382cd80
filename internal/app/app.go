// Package app assembles a PromptQuest process from its configuration.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/promptquest/promptquest/internal/catalog"
	"github.com/promptquest/promptquest/internal/evaluate"
	"github.com/promptquest/promptquest/internal/llm"
	"github.com/promptquest/promptquest/internal/logging"
	"github.com/promptquest/promptquest/internal/progress"
	"github.com/promptquest/promptquest/internal/session"
	"github.com/promptquest/promptquest/internal/store"
	"github.com/promptquest/promptquest/internal/telemetry"
)

// memoryDSN keeps the event log in process memory for the memory backend.
const memoryDSN = "file:promptquest?mode=memory&cache=shared"

// Options carries dependencies that override the configured ones.
type Options struct {
	Log         *zap.Logger  // built from Config when nil
	TraceWriter io.Writer    // span output; stderr when nil
	Provider    llm.Provider // replaces the configured judge when set
}

// App is the assembled process.
type App struct {
	Config  Config
	Log     *zap.Logger
	Store   *store.Store
	Catalog *catalog.Catalog
	Remote  *evaluate.RemoteEvaluator
	Session *session.Session

	kv       store.KV
	shutdown telemetry.Shutdown
}

// New builds every component. Close must be called on the result.
func New(ctx context.Context, cfg Config, opts Options) (_ *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := opts.Log
	if log == nil {
		if log, err = logging.New(cfg.LogMode, cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	a := &App{Config: cfg, Log: log, Catalog: catalog.Default()}
	defer func() {
		if err != nil {
			a.Close(context.WithoutCancel(ctx))
		}
	}()

	traceOut := opts.TraceWriter
	if traceOut == nil {
		traceOut = os.Stderr
	}
	if a.shutdown, err = telemetry.Setup(ctx, cfg.Trace, traceOut); err != nil {
		return nil, err
	}

	// Storage problems never stop a run: progress is kept in memory and
	// saves become best effort against whatever could be opened.
	if a.Store, err = openEventStore(cfg); err != nil {
		log.Warn("event log unavailable, keeping it in memory for this run", zap.Error(err))
		if a.Store, err = store.Open(memoryDSN); err != nil {
			return nil, err
		}
	}
	if a.kv, err = openKV(ctx, cfg, a.Store, log); err != nil {
		log.Warn("progress store unavailable, keeping progress in memory for this run",
			zap.String("store", cfg.Store),
			zap.Error(err),
		)
		a.kv, err = store.NewMemoryKV(), nil
	}

	provider := opts.Provider
	if provider == nil {
		provider = newJudgeProvider(ctx, cfg.LLM, a.Store.EventRepo(), log)
	}
	a.Remote = evaluate.NewRemoteEvaluator(provider, cfg.LLM.Timeout)
	policy := evaluate.NewDefaultPolicy(a.Remote, log)

	persister := progress.NewPersister(store.NewProgressRepo(a.kv), a.Catalog.Len(), log)
	a.Session = session.New(ctx, a.Catalog, policy, persister, log)

	log.Debug("app ready",
		zap.String("store", cfg.Store),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("judge_configured", a.Remote.Configured()),
	)
	return a, nil
}

// Close releases the stores and flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.kv != nil {
		errs = append(errs, a.kv.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.shutdown != nil {
		errs = append(errs, a.shutdown(ctx))
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return errors.Join(errs...)
}

func openEventStore(cfg Config) (*store.Store, error) {
	if cfg.Store == StoreMemory {
		return store.Open(memoryDSN)
	}
	path, err := ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// ResolveDBPath returns path with its directory created, or the default
// location when path is empty.
func ResolveDBPath(path string) (string, error) {
	if path == "" {
		return store.DefaultDBPath()
	}
	return path, store.EnsureDir(path)
}

func openKV(ctx context.Context, cfg Config, st *store.Store, log *zap.Logger) (store.KV, error) {
	switch cfg.Store {
	case StoreBadger:
		dir := cfg.BadgerDir
		if dir == "" {
			path, err := ResolveDBPath(cfg.DBPath)
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(filepath.Dir(path), "badger")
		}
		kv, err := store.OpenBadger(dir, log)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case StoreRedis:
		kv, err := store.OpenRedis(ctx, cfg.RedisAddr, log)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case StoreMemory:
		return store.NewMemoryKV(), nil
	default:
		return st.KV(), nil
	}
}

// newJudgeProvider builds the remote judge's provider, or returns nil when
// it cannot be built. The judge then runs unconfigured and every
// submission is scored locally.
func newJudgeProvider(ctx context.Context, cfg llm.Config, events store.EventRepo, log *zap.Logger) llm.Provider {
	p, err := llm.NewProvider(ctx, cfg, events, log)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		log.Debug("remote judge not configured", zap.Error(err))
		return nil
	case err != nil:
		log.Warn("remote judge unavailable, scoring locally",
			zap.String("provider", cfg.Provider),
			zap.Error(err),
		)
		return nil
	}
	return p
}
