package kdtree

import (
	"io"

	"github.com/adamreichold/sif-kdtree/internal/mmap"
)

// Open memory-maps the raw slot array stored at path and reinterprets it as
// a tree without copying.
//
// The file must contain exactly the bytes produced by Bytes on a tree of the
// same slot instantiation, written on a machine with the same endianness and
// struct layout. The returned closer unmaps the file; the tree must not be
// used after closing it.
func Open[P Point[P], O Object[P]](path string) (*Tree[P, O], io.Closer, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}

	t, err := View[P, O](f.Data)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	return t, f, nil
}
