package pkguid

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClockRegression is returned when an ID is requested for a timestamp below the floor.
	ErrClockRegression = errors.New("uid: timestamp is below the floor timestamp")
	// ErrMalformedID is returned when a value cannot be decoded as a packed ID.
	ErrMalformedID = errors.New("uid: malformed id")
	// ErrSequenceExhausted is returned when all counter values of a millisecond are used.
	ErrSequenceExhausted = errors.New("uid: counter exhausted for this millisecond")
	// ErrTimestampOutOfEra is returned for timestamps whose high bits are not 1,1.
	ErrTimestampOutOfEra = errors.New("uid: timestamp outside the supported era")
	// ErrInvalidTag is returned when a tag value is neither a fraction nor an integer.
	ErrInvalidTag = errors.New("uid: invalid tag value")
	// ErrInvalidTimestamp is returned for negative or non-finite floor values.
	ErrInvalidTimestamp = errors.New("uid: invalid timestamp")
)

// ClockRegressionError carries the rejected timestamp and the floor in force.
type ClockRegressionError struct {
	Now   int64
	Floor int64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("uid: timestamp %s is before floor %s",
		time.UnixMilli(e.Now).UTC().Format(time.RFC3339Nano),
		time.UnixMilli(e.Floor).UTC().Format(time.RFC3339Nano))
}

func (e *ClockRegressionError) Is(target error) bool {
	return target == ErrClockRegression
}

// MalformedIDError describes an input rejected by Decode.
type MalformedIDError struct {
	Input string
	Err   error
}

func (e *MalformedIDError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("uid: malformed id %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("uid: malformed id %q", e.Input)
}

func (e *MalformedIDError) Is(target error) bool {
	return target == ErrMalformedID
}

func (e *MalformedIDError) Unwrap() error {
	return e.Err
}
