// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy. Depending on the use case you can generate:
//   - String IDs (for example UUIDs, used for request correlation).
//   - Packed 64-bit IDs produced by Generator.
//
// A packed ID carries, most-significant bit first, 39 bits of millisecond
// timestamp, a 4-bit application tag, an 11-bit worker tag and a 10-bit
// per-millisecond counter. The two highest bits of the 41-bit millisecond
// timestamp are always 1,1 for dates between 2022-04-06T17:50:41.664Z and
// 2039-09-07T15:47:35.551Z, so they are dropped on encode and restored on
// decode. Timestamps outside that range are refused by the encoder.
package pkguid
