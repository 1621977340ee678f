package uid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgconfig"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgpebble"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgroutine"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/raise-sistemas/jsr-uid/internal/uid/inbound"
	"github.com/raise-sistemas/jsr-uid/internal/uid/outbound"
	"github.com/raise-sistemas/jsr-uid/internal/uid/store"
	"github.com/raise-sistemas/jsr-uid/internal/uid/usecase"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	Clock     pkguid.Clock
}

type checkpointStore interface {
	usecase.Store
	Close() error
}

func New(dep Dependency) (func(context.Context) error, error) {
	gen := pkguid.NewGenerator(dep.Clock)
	if err := applyTag(dep.Config, "uid.application_tag", gen.SetApplicationTag); err != nil {
		return nil, err
	}
	if err := applyTag(dep.Config, "uid.worker_tag", gen.SetWorkerTag); err != nil {
		return nil, err
	}

	storage, err := newStore(dep.Config)
	if err != nil {
		return nil, err
	}

	var timeSource usecase.TimeSource
	if dep.Config.GetBool("uid.sync.enabled") {
		timeSource = outbound.NewTraceClient(outbound.TraceConfig{
			URL:        dep.Config.GetString("uid.sync.url"),
			Timeout:    dep.Config.GetDuration("uid.sync.timeout"),
			MaxRetries: uint64(max(dep.Config.GetInt("uid.sync.max_retries"), 0)),
		})
	}

	uc := usecase.New(usecase.Dependency{
		Generator:  gen,
		Store:      storage,
		TimeSource: timeSource,
	})

	if err := uc.Restore(dep.Context); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("uid: restore checkpoint: %w", err)
	}

	if timeSource != nil {
		interval := dep.Config.GetDuration("uid.sync.interval")
		dep.Goroutine.Go(dep.Context, "uid time sync", func(ctx context.Context) error {
			return uc.SyncLoop(ctx, interval)
		})
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	snap := gen.Snapshot()
	slog.Info("uid module ready",
		"application_tag", snap.ApplicationTag,
		"worker_tag", snap.WorkerTag,
		"floor", snap.FloorTimestamp,
		"sync", timeSource != nil,
	)

	return func(ctx context.Context) error {
		return errors.Join(uc.Checkpoint(ctx), storage.Close())
	}, nil
}

// applyTag sets a tag from config, or from a random fraction when the key is
// not set.
func applyTag(cfg pkgconfig.Config, key string, set func(float64) error) error {
	var v float64
	if cfg.IsSet(key) {
		v = cfg.GetFloat(key)
	} else {
		r, err := pkguid.RandomFraction()
		if err != nil {
			return fmt.Errorf("uid: random %s: %w", key, err)
		}
		v = r
	}

	if err := set(v); err != nil {
		return fmt.Errorf("uid: %s: %w", key, err)
	}
	return nil
}

func newStore(cfg pkgconfig.Config) (checkpointStore, error) {
	switch driver := strings.ToLower(cfg.GetString("uid.store.driver")); driver {
	case "", "memory":
		return store.NewInMemoryStore(), nil
	case "pebble":
		fsync, err := pkgpebble.ParseFsyncMode(cfg.GetString("uid.store.fsync"))
		if err != nil {
			return nil, fmt.Errorf("uid: %w", err)
		}

		db, err := pkgpebble.Open(pkgpebble.Options{
			DataDir:       cfg.GetString("uid.store.path"),
			Fsync:         fsync,
			FsyncInterval: time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("uid: open checkpoint store: %w", err)
		}
		return store.NewPebbleStore(db), nil
	default:
		return nil, fmt.Errorf("uid: unknown store driver %q", driver)
	}
}
