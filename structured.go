package kdtree

import (
	"github.com/adamreichold/sif-kdtree/codec"
)

// Encode serializes the tree through c (codec.Default when nil), preserving
// slot order. The slot and object types must be representable in the chosen
// codec; for JSON that means exported fields, for gob the usual gob rules.
//
// Structured serialization trades the zero-copy property for portability:
// the bytes are endianness- and layout-independent, at the cost of a real
// decode on load.
func (t *Tree[P, O]) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(t.slots)
}

// Decode reconstructs a tree previously produced by Encode with the same
// codec.
//
// Decode restores the slot array as-is; run Verify afterwards when the bytes
// come from an untrusted source.
func Decode[P Point[P], O Object[P]](c codec.Codec, data []byte) (*Tree[P, O], error) {
	if c == nil {
		c = codec.Default
	}
	var slots []Slot[P, O]
	if err := c.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return &Tree[P, O]{slots: slots}, nil
}
