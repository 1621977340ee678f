package pkguid

import (
	"math"
)

// State is the identity and sequence state behind a Generator.
//
// State performs no locking; Generator serializes every access to it.
type State struct {
	applicationTag int64
	workerTag      int64
	lastTimestamp  int64
	counter        int64
	lastID         ID
	floor          int64
}

// Snapshot is a read-only copy of a State.
type Snapshot struct {
	ApplicationTag int64 `json:"application_tag"`
	WorkerTag      int64 `json:"worker_tag"`
	LastTimestamp  int64 `json:"last_timestamp"`
	Counter        int64 `json:"counter"`
	LastID         ID    `json:"last_id"`
	FloorTimestamp int64 `json:"floor_timestamp"`
}

// NewState returns a State whose floor is startMs.
func NewState(startMs int64) *State {
	return &State{floor: startMs}
}

// SetApplicationTag stores v as the 4-bit application tag.
//
// A fraction in (0,1) is scaled to round(v*15); any other value must be an
// integer and is reduced modulo 16.
func (s *State) SetApplicationTag(v float64) error {
	tag, err := scaleTag(v, MaxApplicationTag)
	if err != nil {
		return err
	}
	s.applicationTag = tag
	return nil
}

// SetWorkerTag stores v as the 11-bit worker tag using the same rule as
// SetApplicationTag with a scale of 2047 and a modulus of 2048.
func (s *State) SetWorkerTag(v float64) error {
	tag, err := scaleTag(v, MaxWorkerTag)
	if err != nil {
		return err
	}
	s.workerTag = tag
	return nil
}

// SetFloorTimestamp replaces the floor. Moving it backwards is allowed.
func (s *State) SetFloorTimestamp(ms int64) error {
	if ms < 0 {
		return ErrInvalidTimestamp
	}
	s.floor = ms
	return nil
}

// RaiseFloor moves the floor to ms when ms is above it and reports the floor
// in effect afterwards.
func (s *State) RaiseFloor(ms int64) (floor int64, raised bool, err error) {
	if ms < 0 {
		return s.floor, false, ErrInvalidTimestamp
	}
	if ms <= s.floor {
		return s.floor, false, nil
	}
	s.floor = ms
	return ms, true, nil
}

// SetFloorFromUnixSeconds rounds a Unix time in seconds to milliseconds and
// uses it as the floor.
func (s *State) SetFloorFromUnixSeconds(sec float64) error {
	ms, err := UnixSecondsToMillis(sec)
	if err != nil {
		return err
	}
	return s.SetFloorTimestamp(ms)
}

// Snapshot copies the current values.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		ApplicationTag: s.applicationTag,
		WorkerTag:      s.workerTag,
		LastTimestamp:  s.lastTimestamp,
		Counter:        s.counter,
		LastID:         s.lastID,
		FloorTimestamp: s.floor,
	}
}

// UnixSecondsToMillis converts a possibly fractional Unix time in seconds
// into whole milliseconds.
func UnixSecondsToMillis(sec float64) (int64, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return 0, ErrInvalidTimestamp
	}
	ms := math.Round(sec * 1000)
	if ms >= 1<<63 {
		return 0, ErrInvalidTimestamp
	}
	return int64(ms), nil
}

func scaleTag(v float64, limit int64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidTag
	}
	if v > 0 && v < 1 {
		return int64(math.Round(v * float64(limit))), nil
	}
	if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return 0, ErrInvalidTag
	}
	mod := limit + 1
	tag := int64(v) % mod
	if tag < 0 {
		tag += mod
	}
	return tag, nil
}
