package pkguid

import "time"

// Field widths of a packed ID, most-significant first.
const (
	TimestampBits   = 39
	ApplicationBits = 4
	WorkerBits      = 11
	CounterBits     = 10
)

const (
	counterShift     = 0
	workerShift      = CounterBits
	applicationShift = CounterBits + WorkerBits
	timestampShift   = CounterBits + WorkerBits + ApplicationBits

	timestampMask   uint64 = 1<<TimestampBits - 1
	applicationMask uint64 = 1<<ApplicationBits - 1
	workerMask      uint64 = 1<<WorkerBits - 1
	counterMask     uint64 = 1<<CounterBits - 1

	// eraBits are the two high bits of the 41-bit timestamp dropped on encode.
	eraBits uint64 = 0b11 << TimestampBits
)

// Limits of every field.
const (
	MaxApplicationTag = int64(applicationMask) // 15
	MaxWorkerTag      = int64(workerMask)      // 2047
	MaxCounter        = int64(counterMask)     // 1023

	// MinTimestamp is the first millisecond whose 41-bit form starts with 1,1.
	MinTimestamp = int64(eraBits)
	// MaxTimestamp is the last millisecond representable in 41 bits.
	MaxTimestamp = int64(1<<(TimestampBits+2) - 1)
)

// Parts is the decomposed form of a packed ID.
type Parts struct {
	Timestamp      int64 `json:"timestamp"`
	ApplicationTag int64 `json:"application_tag"`
	WorkerTag      int64 `json:"worker_tag"`
	Counter        int64 `json:"counter"`
}

// Time returns the timestamp part as a UTC time.
func (p Parts) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// InEra reports whether ms can be packed and decoded back unchanged.
func InEra(ms int64) bool {
	return ms >= MinTimestamp && ms <= MaxTimestamp
}

func pack(ms, application, worker, counter int64) ID {
	v := (uint64(ms)&timestampMask)<<timestampShift |
		uint64(application)<<applicationShift |
		uint64(worker)<<workerShift
	// counter owns the low bits, which are still zero here
	return ID(v + uint64(counter))
}

func unpack(id ID) Parts {
	v := uint64(id)
	return Parts{
		Timestamp:      int64(eraBits | (v>>timestampShift)&timestampMask),
		ApplicationTag: int64((v >> applicationShift) & applicationMask),
		WorkerTag:      int64((v >> workerShift) & workerMask),
		Counter:        int64((v >> counterShift) & counterMask),
	}
}
