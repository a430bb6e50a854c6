package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	// Magic identifies snapshot files (ASCII: "SIFK").
	Magic = 0x5349464B
	// Version is the current snapshot format version (v1.0.0).
	Version = 0x00010000

	// HeaderSize is the byte length of the fixed snapshot header.
	HeaderSize = 40

	// maxPayloadSize guards against absurd allocations when reading a
	// corrupt or hostile header.
	maxPayloadSize = 1 << 40
)

// Compression identifies the payload compression codec.
type Compression uint32

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// String returns a string representation of the Compression codec.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidMagic       = errors.New("persistence: invalid magic number")
	ErrInvalidVersion     = errors.New("persistence: unsupported version")
	ErrInvalidCompression = errors.New("persistence: unknown compression codec")
	ErrInvalidGeometry    = errors.New("persistence: payload does not match record geometry")
	ErrChecksumMismatch   = errors.New("persistence: checksum mismatch")
)

// Header is the fixed header at the start of every snapshot.
// All multi-byte fields are little-endian on disk.
type Header struct {
	Magic       uint32
	Version     uint32
	Compression uint32
	RecordSize  uint32 // bytes per record
	RecordCount uint64
	PayloadSize uint64 // compressed payload length in bytes
	Checksum    uint32 // CRC32 (IEEE) of the uncompressed record bytes
	_           [4]byte
}

// WriteHeader writes h to w in the on-disk layout.
func WriteHeader(w io.Writer, h *Header) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// ReadHeader reads and validates a snapshot header from r.
func ReadHeader(r io.Reader) (*Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("persistence: read header: %w", err)
	}

	if h.Magic != Magic {
		return nil, ErrInvalidMagic
	}
	if h.Version != Version {
		return nil, ErrInvalidVersion
	}
	if Compression(h.Compression) > CompressionLZ4 {
		return nil, ErrInvalidCompression
	}
	if h.PayloadSize > maxPayloadSize {
		return nil, fmt.Errorf("persistence: payload size %d exceeds limit", h.PayloadSize)
	}

	return &h, nil
}

// Checksum computes the CRC32 (IEEE) checksum of data. CRC32 detects
// accidental corruption; it is not tamper-proof.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
