package kdtree

import (
	"io"
	"reflect"
	"unsafe"

	"github.com/adamreichold/sif-kdtree/persistence"
)

// WriteSnapshot writes the tree to w in the self-describing snapshot format,
// optionally compressed (see persistence.WithCompression).
//
// Unlike the raw Bytes form, a snapshot carries its record geometry and a
// checksum, so a reader can reject corrupt or mismatched data instead of
// misinterpreting it.
func (t *Tree[P, O]) WriteSnapshot(w io.Writer, optFns ...func(o *persistence.Options)) error {
	if err := checkPlain(reflect.TypeFor[Slot[P, O]]()); err != nil {
		return err
	}
	var record Slot[P, O]
	return persistence.WriteSnapshot(w, t.Bytes(), int(unsafe.Sizeof(record)), optFns...)
}

// ReadSnapshot reads a snapshot from r into an owned tree.
//
// The snapshot's record size must match the slot instantiation exactly;
// a mismatch is reported as *ErrLayoutMismatch. The snapshot's checksum and
// geometry are validated by the persistence layer before any bytes are
// trusted.
func ReadSnapshot[P Point[P], O Object[P]](r io.Reader) (*Tree[P, O], error) {
	if err := checkPlain(reflect.TypeFor[Slot[P, O]]()); err != nil {
		return nil, err
	}

	records, header, err := persistence.ReadSnapshot(r)
	if err != nil {
		return nil, err
	}

	var record Slot[P, O]
	size := int(unsafe.Sizeof(record))
	if int(header.RecordSize) != size {
		return nil, &ErrLayoutMismatch{
			BufferSize:       len(records),
			RecordSize:       size,
			HeaderRecordSize: int(header.RecordSize),
		}
	}

	// Copy into a freshly allocated slot array rather than viewing the
	// decoded payload; the result is owned and always correctly aligned.
	slots := make([]Slot[P, O], header.RecordCount)
	if len(slots) > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(&slots[0])), len(records))
		copy(dst, records)
	}
	return &Tree[P, O]{slots: slots}, nil
}
