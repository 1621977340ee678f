package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgerror"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/raise-sistemas/jsr-uid/internal/uid/entity"
)

type Generator interface {
	Encode(now int64) (string, error)
	NextN(ctx context.Context, n int) ([]string, error)
	RaiseFloor(ms int64) (floor int64, raised bool, err error)
	Snapshot() pkguid.Snapshot
}

type Store interface {
	Load(ctx context.Context) (entity.Checkpoint, error)
	Save(ctx context.Context, cp entity.Checkpoint) error
}

type TimeSource interface {
	UnixSeconds(ctx context.Context) (float64, error)
}

type Dependency struct {
	Generator  Generator
	Store      Store
	TimeSource TimeSource
}

type Usecase struct {
	gen        Generator
	store      Store
	timeSource TimeSource

	// checkpointMu orders snapshot-then-save so a newer checkpoint is never
	// overwritten by an older one.
	checkpointMu sync.Mutex
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		gen:        dep.Generator,
		store:      dep.Store,
		timeSource: dep.TimeSource,
	}
}

// Restore raises the floor to what the last checkpoint allows, so a restart
// on a clock that went backwards cannot hand out old timestamps again.
func (u *Usecase) Restore(ctx context.Context) error {
	if u.store == nil {
		return nil
	}

	cp, err := u.store.Load(ctx)
	if errors.Is(err, pkgerror.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	floor, raised, err := u.gen.RaiseFloor(cp.MinFloor())
	if err != nil {
		return err
	}
	if !raised {
		return nil
	}
	slog.InfoContext(ctx, "floor restored from checkpoint", "floor", floor, "last_timestamp", cp.LastTimestamp)
	return nil
}

func (u *Usecase) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxBatch {
		return GenerateResult{}, pkgerror.NewInvalidInput(errors.New("count must be between 1 and 1000"))
	}
	if req.Timestamp != nil && count != 1 {
		return GenerateResult{}, pkgerror.NewInvalidInput(errors.New("count must be 1 when timestamp is set"))
	}

	var ids []string
	if req.Timestamp != nil {
		id, err := u.gen.Encode(*req.Timestamp)
		if err != nil {
			return GenerateResult{}, mapGenerateErr(err)
		}
		ids = []string{id}
	} else {
		var err error
		ids, err = u.gen.NextN(ctx, count)
		if err != nil {
			return GenerateResult{}, mapGenerateErr(err)
		}
	}

	if err := u.Checkpoint(ctx); err != nil {
		slog.WarnContext(ctx, "failed to save checkpoint", "error", err)
	}

	return GenerateResult{IDs: ids}, nil
}

func (u *Usecase) Decode(ctx context.Context, id string) (DecodeResult, error) {
	parts, err := pkguid.Decode(id)
	if err != nil {
		return DecodeResult{}, pkgerror.NewInvalidInput(err)
	}

	return DecodeResult{ID: id, Parts: parts}, nil
}

func (u *Usecase) State(ctx context.Context) StateResult {
	return StateResult{Snapshot: u.gen.Snapshot()}
}

// Sync reads the trusted time and raises the floor to it. The floor never
// moves backwards through Sync.
func (u *Usecase) Sync(ctx context.Context) (SyncResult, error) {
	if u.timeSource == nil {
		return SyncResult{}, pkgerror.NewServer(errors.New("time source is not configured"))
	}

	sec, err := u.timeSource.UnixSeconds(ctx)
	if err != nil {
		return SyncResult{}, pkgerror.NewUnavailable(err)
	}

	remote, err := pkguid.UnixSecondsToMillis(sec)
	if err != nil {
		return SyncResult{}, pkgerror.NewUnavailable(err)
	}

	floor, raised, err := u.gen.RaiseFloor(remote)
	if err != nil {
		return SyncResult{}, normalizeErr(err)
	}

	return SyncResult{
		RemoteTimestamp: remote,
		FloorTimestamp:  floor,
		Raised:          raised,
	}, nil
}

// SyncLoop calls Sync right away and then every interval until ctx is done.
// Failures are logged and leave the floor as it was. A non-positive interval
// syncs once.
func (u *Usecase) SyncLoop(ctx context.Context, interval time.Duration) error {
	u.syncOnce(ctx)
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			u.syncOnce(ctx)
		}
	}
}

// Checkpoint persists the current last timestamp and floor. Concurrent calls
// save one after the other, each with a snapshot taken after the previous
// save finished.
func (u *Usecase) Checkpoint(ctx context.Context) error {
	if u.store == nil {
		return nil
	}

	u.checkpointMu.Lock()
	defer u.checkpointMu.Unlock()

	snap := u.gen.Snapshot()
	return u.store.Save(ctx, entity.Checkpoint{
		LastTimestamp: snap.LastTimestamp,
		Floor:         snap.FloorTimestamp,
	})
}

func (u *Usecase) syncOnce(ctx context.Context) {
	result, err := u.Sync(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.ErrorContext(ctx, "time sync failed, floor unchanged", "error", err)
		}
		return
	}

	if result.Raised {
		slog.InfoContext(ctx, "floor raised from time sync", "floor", result.FloorTimestamp)
		return
	}
	slog.DebugContext(ctx, "time sync kept floor", "remote", result.RemoteTimestamp, "floor", result.FloorTimestamp)
}

func mapGenerateErr(err error) error {
	switch {
	case errors.Is(err, pkguid.ErrClockRegression):
		return pkgerror.NewConflict(err, "timestamp is below the floor timestamp")
	case errors.Is(err, pkguid.ErrSequenceExhausted):
		return pkgerror.NewConflict(err, "no ids left for this millisecond")
	case errors.Is(err, pkguid.ErrTimestampOutOfEra):
		return pkgerror.NewInvalidInput(err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pkgerror.NewTimeout(err)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
