package kdtree

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ErrLayoutMismatch indicates that a byte buffer or snapshot cannot be a
// slot array: the buffer length is not a multiple of the record size, or a
// snapshot declares a record size that disagrees with the slot instantiation.
type ErrLayoutMismatch struct {
	BufferSize int
	RecordSize int

	// HeaderRecordSize is the record size declared by a snapshot header when
	// the mismatch was detected against one, zero otherwise.
	HeaderRecordSize int
}

func (e *ErrLayoutMismatch) Error() string {
	if e.HeaderRecordSize != 0 {
		return fmt.Sprintf("kdtree: snapshot record size %d does not match slot size %d", e.HeaderRecordSize, e.RecordSize)
	}
	return fmt.Sprintf("kdtree: buffer size %d is not a multiple of record size %d", e.BufferSize, e.RecordSize)
}

// ErrMisalignedBuffer indicates that a byte buffer does not satisfy the
// alignment the slot type requires for in-place reinterpretation.
type ErrMisalignedBuffer struct {
	Align int
}

func (e *ErrMisalignedBuffer) Error() string {
	return fmt.Sprintf("kdtree: buffer is not aligned to %d bytes", e.Align)
}

// ErrUnsupportedRecord indicates that a slot instantiation is not plain
// fixed-layout data and therefore cannot be reinterpreted from raw bytes.
type ErrUnsupportedRecord struct {
	Type reflect.Type
}

func (e *ErrUnsupportedRecord) Error() string {
	return fmt.Sprintf("kdtree: record contains %s, which is not fixed-layout plain data", e.Type)
}

// Bytes returns the tree's backing slot array as raw bytes, without copying.
//
// The returned slice aliases the tree's memory and uses the machine's native
// endianness and struct layout: byte-level compatibility across machines is
// a contract between producer and consumer, not something Bytes can enforce.
// Writing the slice to a file yields exactly the format View and Open read.
//
// Bytes panics if the slot instantiation is not plain data; use types
// without pointers, slices, maps or strings.
func (t *Tree[P, O]) Bytes() []byte {
	if len(t.slots) == 0 {
		return nil
	}
	if err := checkPlain(reflect.TypeFor[Slot[P, O]]()); err != nil {
		panic(err)
	}
	size := int(unsafe.Sizeof(t.slots[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&t.slots[0])), len(t.slots)*size)
}

// View reinterprets data as a tree without copying.
//
// data is typically a memory-mapped file written via Bytes; the returned
// tree borrows it and must not outlive it. The buffer's length must be an
// exact multiple of the record size and its start must satisfy the record
// alignment; both are validated, because misinterpreting foreign bytes as
// slots is otherwise undefined behavior. The bytes themselves are trusted to
// satisfy the tree invariants; run Verify on buffers from untrusted sources.
func View[P Point[P], O Object[P]](data []byte) (*Tree[P, O], error) {
	if err := checkPlain(reflect.TypeFor[Slot[P, O]]()); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return &Tree[P, O]{}, nil
	}

	var record Slot[P, O]
	size := int(unsafe.Sizeof(record))
	if len(data)%size != 0 {
		return nil, &ErrLayoutMismatch{BufferSize: len(data), RecordSize: size}
	}

	align := unsafe.Alignof(record)
	ptr := unsafe.Pointer(unsafe.SliceData(data))
	if uintptr(ptr)%align != 0 {
		return nil, &ErrMisalignedBuffer{Align: int(align)}
	}

	slots := unsafe.Slice((*Slot[P, O])(ptr), len(data)/size)
	return &Tree[P, O]{slots: slots}, nil
}

// checkPlain walks a type and rejects anything whose byte representation is
// not self-contained fixed-size data.
func checkPlain(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkPlain(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := checkPlain(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	default:
		return &ErrUnsupportedRecord{Type: t}
	}
}
