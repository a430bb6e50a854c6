// Package persistence implements the self-describing snapshot container for
// flat slot arrays.
//
// A snapshot is a fixed 40-byte header followed by the raw record payload,
// optionally compressed. The header carries the record geometry and a CRC32
// of the uncompressed payload, so a consumer can validate a snapshot before
// trusting its bytes. The payload itself is the same record array produced
// by the zero-copy path; only the container differs.
//
// Snapshots are for transport and non-mmap persistence. For zero-copy
// loading, store the raw record array without this container.
package persistence
