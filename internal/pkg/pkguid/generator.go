package pkguid

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Clock is the time source of a Generator.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Generator produces packed IDs from a State.
//
// All methods are safe for concurrent use: encoding and every State mutation
// run under one mutex, so a floor update never interleaves with a floor check.
type Generator struct {
	mu    sync.Mutex
	state *State
	clock Clock
}

// NewGenerator creates a Generator whose floor is the clock's current time.
// A nil clock uses the system clock.
func NewGenerator(clock Clock) *Generator {
	if clock == nil {
		clock = realClock{}
	}

	return &Generator{
		state: NewState(clock.Now().UnixMilli()),
		clock: clock,
	}
}

// Encode packs now with the configured tags and returns the decimal ID.
//
// It fails with ErrClockRegression when now is below the floor, with
// ErrTimestampOutOfEra when now cannot be decoded back, and with
// ErrSequenceExhausted when the 1024 counter values of now are used up.
// The state is left untouched on failure.
func (g *Generator) Encode(now int64) (string, error) {
	id, err := g.EncodeID(now)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// EncodeID is Encode returning the numeric ID.
func (g *Generator) EncodeID(now int64) (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.encode(now)
}

// Next encodes at the current time. The timestamp used never goes below the
// last one issued, and when a millisecond runs out of counter values Next
// waits for the clock to move on.
func (g *Generator) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.next(ctx)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// NextN generates n IDs while holding the lock once and returns their
// decimal forms.
func (g *Generator) NextN(ctx context.Context, n int) ([]string, error) {
	ids, err := g.NextNID(ctx, n)

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return strs, err
}

// NextNID is NextN returning the numeric IDs. On error the IDs generated so
// far are returned with it.
func (g *Generator) NextNID(ctx context.Context, n int) ([]ID, error) {
	if n <= 0 {
		return []ID{}, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]ID, 0, n)
	for i := 0; i < n; i++ {
		id, err := g.next(ctx)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SetApplicationTag see State.SetApplicationTag.
func (g *Generator) SetApplicationTag(v float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.SetApplicationTag(v)
}

// SetWorkerTag see State.SetWorkerTag.
func (g *Generator) SetWorkerTag(v float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.SetWorkerTag(v)
}

// SetFloorTimestamp see State.SetFloorTimestamp.
func (g *Generator) SetFloorTimestamp(ms int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.SetFloorTimestamp(ms)
}

// RaiseFloor see State.RaiseFloor. The comparison and the update happen
// under the same lock as encoding, so concurrent callers can only move the
// floor forward.
func (g *Generator) RaiseFloor(ms int64) (floor int64, raised bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.RaiseFloor(ms)
}

// SetFloorFromUnixSeconds see State.SetFloorFromUnixSeconds.
func (g *Generator) SetFloorFromUnixSeconds(sec float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.SetFloorFromUnixSeconds(sec)
}

// Snapshot returns a copy of the current state.
func (g *Generator) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Snapshot()
}

func (g *Generator) next(ctx context.Context) (ID, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		now := g.clock.Now().UnixMilli()
		if now < g.state.lastTimestamp {
			now = g.state.lastTimestamp
		}

		id, err := g.encode(now)
		if !errors.Is(err, ErrSequenceExhausted) {
			return id, err
		}

		if err := g.waitNextMilli(ctx, now); err != nil {
			return 0, err
		}
	}
}

func (g *Generator) encode(now int64) (ID, error) {
	s := g.state
	if now < s.floor {
		return 0, &ClockRegressionError{Now: now, Floor: s.floor}
	}
	if !InEra(now) {
		return 0, fmt.Errorf("%w: %d", ErrTimestampOutOfEra, now)
	}

	var counter int64
	if now == s.lastTimestamp {
		counter = s.counter + 1
		if counter > MaxCounter {
			return 0, ErrSequenceExhausted
		}
	}

	id := pack(now, s.applicationTag, s.workerTag, counter)

	s.counter = counter
	s.lastTimestamp = now
	s.lastID = id

	return id, nil
}

func (g *Generator) waitNextMilli(ctx context.Context, last int64) error {
	ticker := time.NewTicker(time.Millisecond / 8)
	defer ticker.Stop()

	for g.clock.Now().UnixMilli() <= last {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// RandomFraction returns a uniformly distributed value in [0,1), suitable
// for SetApplicationTag and SetWorkerTag when no explicit tag is configured.
func RandomFraction() (float64, error) {
	var n uint64
	if err := binary.Read(rand.Reader, binary.BigEndian, &n); err != nil {
		return 0, err
	}

	return float64(n>>11) / (1 << 53), nil
}
