package pkguid

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	_ fmt.Stringer             = ID(0)
	_ encoding.TextMarshaler   = ID(0)
	_ encoding.TextUnmarshaler = (*ID)(nil)
	_ json.Marshaler           = ID(0)
	_ json.Unmarshaler         = (*ID)(nil)
)

// ID is a packed 64-bit identifier.
type ID uint64

// Uint64 returns the raw value.
func (id ID) Uint64() uint64 {
	return uint64(id)
}

// String returns the base-10 form.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Base36 returns the upper-case base-36 form.
func (id ID) Base36() string {
	return strings.ToUpper(strconv.FormatUint(uint64(id), 36))
}

// Parts decomposes the ID.
func (id ID) Parts() Parts {
	return unpack(id)
}

// Time returns the timestamp embedded in the ID.
func (id ID) Time() time.Time {
	return id.Parts().Time()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON encodes the ID as a decimal string, since JSON numbers lose
// precision above 2^53 in most decoders.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string or a bare number.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = 0
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		return id.UnmarshalText(b)
	}
	if len(b) < 2 || b[len(b)-1] != '"' {
		return &MalformedIDError{Input: string(b), Err: errors.New("invalid JSON string")}
	}
	return id.UnmarshalText(b[1 : len(b)-1])
}

// ParseID parses the decimal form of an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &MalformedIDError{Input: s, Err: unwrapNumError(err)}
	}
	return ID(n), nil
}

// ParseBase36 parses the form produced by ID.Base36. Case is ignored.
func ParseBase36(s string) (ID, error) {
	n, err := strconv.ParseUint(strings.ToLower(s), 36, 64)
	if err != nil {
		return 0, &MalformedIDError{Input: s, Err: unwrapNumError(err)}
	}
	return ID(n), nil
}

func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err
	}
	return err
}
