package kdtree

import (
	"fmt"
	"iter"
)

// Object is the bounding-volume capability required of indexed items.
//
// The tree never inspects an object beyond these two methods, so any shape
// with an axis-aligned bounding box can be indexed. Objects must not change
// for the lifetime of the tree.
type Object[P Point[P]] interface {
	// Bounds returns an axis-aligned box guaranteed to contain the object.
	Bounds() Box[P]

	// DistSquared returns a lower bound on the squared distance from pt to
	// the object. It may equal the true distance (point objects) or be a
	// conservative underestimate (distance to a bounding box), but it must
	// never overestimate: nearest-neighbour pruning depends on that.
	DistSquared(pt P) float64
}

// Slot is one record of the flat tree: the object placed at this position
// and the tight bounding box of the whole subtree rooted here.
//
// Slots are stored as a single contiguous array with implicit topology: the
// children of slot i live at slots 2i+1 and 2i+2. A Slot must therefore be
// plain data of fixed size; the raw slot array is the tree's persistent form.
type Slot[P Point[P], O Object[P]] struct {
	Object O
	Bounds Box[P]
}

// Tree is an immutable k-d tree over a flat slot array.
//
// A Tree is created once, by New, NewParallel, View, Open, ReadSnapshot or
// Decode, and never mutated afterwards. Any number of goroutines may query
// it concurrently without synchronization.
type Tree[P Point[P], O Object[P]] struct {
	slots []Slot[P, O]
}

// Len returns the number of indexed objects.
func (t *Tree[P, O]) Len() int { return len(t.slots) }

// At returns the object stored at slot i, 0 <= i < Len().
//
// Slot positions are stable for the lifetime of the tree, so they can be
// used as compact object identifiers, e.g. with Mask and WithFilter.
func (t *Tree[P, O]) At(i int) O { return t.slots[i].Object }

// All returns an iterator over every indexed object in slot order.
func (t *Tree[P, O]) All() iter.Seq[O] {
	return func(yield func(O) bool) {
		for i := range t.slots {
			if !yield(t.slots[i].Object) {
				return
			}
		}
	}
}

// ErrCorrupt indicates that a tree's slot array violates a structural
// invariant. It is reported by Verify, typically after reinterpreting an
// untrusted byte buffer.
type ErrCorrupt struct {
	Slot   int
	Reason string
}

func (e *ErrCorrupt) Error() string {
	return fmt.Sprintf("kdtree: corrupt slot %d: %s", e.Slot, e.Reason)
}

// Verify checks the structural invariants of the slot array:
//
//   - the bounding box stored at every slot is the exact union of its own
//     object's bounds and both children's subtree boxes, and
//   - for every internal node some axis separates the left subtree, the
//     node's object and the right subtree (the splitting axis itself is not
//     persisted, so existence is checked).
//
// Trees built by New or NewParallel always pass. Verify is intended for
// storage reloaded from foreign bytes, where a corrupt buffer would
// otherwise silently weaken or break query results.
func (t *Tree[P, O]) Verify() error {
	n := len(t.slots)
	if n == 0 {
		return nil
	}

	for i := n - 1; i >= 0; i-- {
		want := t.slots[i].Object.Bounds()
		if l := 2*i + 1; l < n {
			want = want.Union(t.slots[l].Bounds)
		}
		if r := 2*i + 2; r < n {
			want = want.Union(t.slots[r].Bounds)
		}
		if !want.equal(t.slots[i].Bounds) {
			return &ErrCorrupt{Slot: i, Reason: "stored bounds are not the exact union of the subtree"}
		}
	}

	var zero P
	dim := zero.Dim()

	// Walk bottom-up collecting the per-axis range of object centers in each
	// subtree, and require a separating axis at every internal node.
	var walk func(i int) ([]float64, []float64, error)
	walk = func(i int) ([]float64, []float64, error) {
		b := t.slots[i].Object.Bounds()
		lo := make([]float64, dim)
		hi := make([]float64, dim)
		for axis := 0; axis < dim; axis++ {
			c := b.center(axis)
			lo[axis], hi[axis] = c, c
		}

		l, r := 2*i+1, 2*i+2
		var llo, lhi, rlo, rhi []float64
		var err error
		if l < n {
			if llo, lhi, err = walk(l); err != nil {
				return nil, nil, err
			}
		}
		if r < n {
			if rlo, rhi, err = walk(r); err != nil {
				return nil, nil, err
			}
		}

		if l < n {
			separated := false
			for axis := 0; axis < dim; axis++ {
				c := b.center(axis)
				if lhi[axis] <= c && (r >= n || c <= rlo[axis]) {
					separated = true
					break
				}
			}
			if !separated {
				return nil, nil, &ErrCorrupt{Slot: i, Reason: "no axis separates the left and right subtrees"}
			}
		}

		for axis := 0; axis < dim; axis++ {
			if l < n {
				lo[axis] = min(lo[axis], llo[axis])
				hi[axis] = max(hi[axis], lhi[axis])
			}
			if r < n {
				lo[axis] = min(lo[axis], rlo[axis])
				hi[axis] = max(hi[axis], rhi[axis])
			}
		}
		return lo, hi, nil
	}

	_, _, err := walk(0)
	return err
}
