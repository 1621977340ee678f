package usecase

import "github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"

// MaxBatch caps how many IDs a single Generate call may return.
const MaxBatch = 1000

type GenerateRequest struct {
	// Timestamp pins the IDs to a millisecond; nil means the current time.
	Timestamp *int64
	Count     int
}

type GenerateResult struct {
	IDs []string
}

type DecodeResult struct {
	ID    string
	Parts pkguid.Parts
}

type StateResult struct {
	Snapshot pkguid.Snapshot
}

type SyncResult struct {
	RemoteTimestamp int64
	FloorTimestamp  int64
	Raised          bool
}
