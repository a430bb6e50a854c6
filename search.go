package kdtree

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Query decides which parts of the tree a region search explores.
//
// Visit is invoked with a subtree's bounding box before the subtree is
// descended into; returning false prunes the node, its object and both
// children. Matches is the object-level predicate: a subtree box passing
// Visit is necessary but not sufficient for an individual object to match.
type Query[P Point[P], O Object[P]] interface {
	// Visit reports whether a subtree with the given bounding box may
	// contain matches.
	Visit(bounds Box[P]) bool

	// Matches reports whether an individual object satisfies the query.
	Matches(obj O) bool
}

// Search returns a lazy iterator over the objects matching query.
//
// The traversal is depth-first in pre-order, visits the tree exactly once
// and reports each matching object exactly once. Breaking out of the range
// loop stops the traversal; the sequence cannot be restarted.
func (t *Tree[P, O]) Search(query Query[P, O]) iter.Seq[O] {
	return func(yield func(O) bool) {
		if len(t.slots) > 0 {
			t.searchSlot(0, query, yield)
		}
	}
}

func (t *Tree[P, O]) searchSlot(i int, query Query[P, O], yield func(O) bool) bool {
	s := &t.slots[i]
	if !query.Visit(s.Bounds) {
		return true
	}
	if query.Matches(s.Object) && !yield(s.Object) {
		return false
	}
	if l := 2*i + 1; l < len(t.slots) {
		if !t.searchSlot(l, query, yield) {
			return false
		}
	}
	if r := 2*i + 2; r < len(t.slots) {
		return t.searchSlot(r, query, yield)
	}
	return true
}

// Mask runs query and collects the positions of all matching slots into a
// roaring bitmap.
//
// Masks are cheap to intersect and union, which makes them a convenient
// pre-filter for nearest-neighbour search: combine several region queries
// into one bitmap and pass it to NearestK via WithBitmapFilter.
func (t *Tree[P, O]) Mask(query Query[P, O]) *roaring.Bitmap {
	mask := roaring.New()
	var walk func(i int)
	walk = func(i int) {
		if i >= len(t.slots) {
			return
		}
		s := &t.slots[i]
		if !query.Visit(s.Bounds) {
			return
		}
		if query.Matches(s.Object) {
			mask.Add(uint32(i))
		}
		walk(2*i + 1)
		walk(2*i + 2)
	}
	walk(0)
	return mask
}

var (
	_ Query[Point2, Point2] = WithinBox[Point2, Point2]{}
	_ Query[Point2, Point2] = WithinDistance[Point2, Point2]{}
)

// WithinBox is a query yielding all objects whose bounds overlap a given
// axis-aligned box.
type WithinBox[P Point[P], O Object[P]] struct {
	box Box[P]
}

// NewWithinBox constructs a box query from the corner with the smallest and
// the corner with the largest coordinate values.
func NewWithinBox[P Point[P], O Object[P]](lower, upper P) WithinBox[P, O] {
	return WithinBox[P, O]{box: Box[P]{Min: lower, Max: upper}}
}

func (q WithinBox[P, O]) Visit(bounds Box[P]) bool { return q.box.Intersects(bounds) }

func (q WithinBox[P, O]) Matches(obj O) bool { return q.box.Intersects(obj.Bounds()) }

// WithinDistance is a query yielding all objects within a given Euclidean
// distance of a central point.
type WithinDistance[P Point[P], O Object[P]] struct {
	center      P
	distSquared float64
}

// NewWithinDistance constructs a distance query from the center and the
// largest allowed Euclidean distance to it.
func NewWithinDistance[P Point[P], O Object[P]](center P, distance float64) WithinDistance[P, O] {
	return WithinDistance[P, O]{center: center, distSquared: distance * distance}
}

func (q WithinDistance[P, O]) Visit(bounds Box[P]) bool {
	return bounds.DistSquared(q.center) <= q.distSquared
}

func (q WithinDistance[P, O]) Matches(obj O) bool {
	return obj.DistSquared(q.center) <= q.distSquared
}
