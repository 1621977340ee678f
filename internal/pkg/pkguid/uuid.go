package pkguid

import "github.com/google/uuid"

// UUID generates RFC 9562 UUID strings, used for request correlation.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a time-ordered v7 UUID, or a random v4 one when the v7
// clock sequence cannot be read.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
