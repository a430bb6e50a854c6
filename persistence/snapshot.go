package persistence

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Options contains configuration options for writing a snapshot.
type Options struct {
	// Compression selects the payload codec.
	Compression Compression
}

// DefaultOptions contains the default configuration options for snapshots.
var DefaultOptions = Options{
	Compression: CompressionNone,
}

// WithCompression selects the payload compression codec.
func WithCompression(c Compression) func(o *Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// WriteSnapshot writes records as a snapshot to w.
//
// records must be a whole number of recordSize-byte records; the checksum is
// computed over the uncompressed bytes before any compression is applied.
func WriteSnapshot(w io.Writer, records []byte, recordSize int, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if recordSize <= 0 {
		return fmt.Errorf("persistence: invalid record size %d", recordSize)
	}
	if len(records)%recordSize != 0 {
		return fmt.Errorf("%w: %d bytes with record size %d", ErrInvalidGeometry, len(records), recordSize)
	}

	payload, err := compress(records, opts.Compression)
	if err != nil {
		return err
	}

	h := &Header{
		Magic:       Magic,
		Version:     Version,
		Compression: uint32(opts.Compression),
		RecordSize:  uint32(recordSize),
		RecordCount: uint64(len(records) / recordSize),
		PayloadSize: uint64(len(payload)),
		Checksum:    Checksum(records),
	}
	if err := WriteHeader(w, h); err != nil {
		return fmt.Errorf("persistence: write header: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("persistence: write payload: %w", err)
	}
	return nil
}

// ReadSnapshot reads a snapshot from r, returning the uncompressed record
// bytes and the validated header.
//
// The records are freshly allocated and owned by the caller. Corruption
// anywhere (magic, version, codec, geometry, checksum) is reported as an
// error rather than returning questionable bytes.
func ReadSnapshot(r io.Reader) ([]byte, *Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, nil, err
	}

	// Read up to the declared payload length instead of allocating it up
	// front, so a hostile header cannot demand memory the stream never
	// delivers.
	payload, err := io.ReadAll(io.LimitReader(r, int64(h.PayloadSize)))
	if err != nil {
		return nil, nil, fmt.Errorf("persistence: read payload: %w", err)
	}
	if uint64(len(payload)) != h.PayloadSize {
		return nil, nil, fmt.Errorf("persistence: read payload: %w", io.ErrUnexpectedEOF)
	}

	records, err := decompress(payload, Compression(h.Compression))
	if err != nil {
		return nil, nil, err
	}

	// Both geometry fields are header-controlled and their product can
	// overflow, so validate by division.
	if h.RecordSize == 0 ||
		uint64(len(records))%uint64(h.RecordSize) != 0 ||
		uint64(len(records))/uint64(h.RecordSize) != h.RecordCount {
		return nil, nil, fmt.Errorf("%w: got %d bytes, want %d records of %d bytes",
			ErrInvalidGeometry, len(records), h.RecordCount, h.RecordSize)
	}
	if Checksum(records) != h.Checksum {
		return nil, nil, ErrChecksumMismatch
	}

	return records, h, nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("persistence: create zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("persistence: lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("persistence: lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, ErrInvalidCompression
	}
}

func decompress(payload []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("persistence: create zstd decoder: %w", err)
		}
		defer dec.Close()
		records, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("persistence: zstd decompress: %w", err)
		}
		return records, nil
	case CompressionLZ4:
		records, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, fmt.Errorf("persistence: lz4 decompress: %w", err)
		}
		return records, nil
	default:
		return nil, ErrInvalidCompression
	}
}
