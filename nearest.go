package kdtree

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/adamreichold/sif-kdtree/internal/queue"
)

// Neighbor is one result of a k-nearest search.
type Neighbor[O any] struct {
	Object      O
	DistSquared float64
}

// SearchOptions contains configuration options for nearest-neighbour
// searches.
type SearchOptions struct {
	// Filter restricts candidates to slot positions for which it returns
	// true. Nil admits everything. Pruning still uses the full subtree
	// bounds, so a filter narrows results without weakening correctness.
	Filter func(slot uint32) bool
}

// WithFilter restricts a nearest-neighbour search to slots accepted by
// filter.
func WithFilter(filter func(slot uint32) bool) func(o *SearchOptions) {
	return func(o *SearchOptions) {
		o.Filter = filter
	}
}

// WithBitmapFilter restricts a nearest-neighbour search to the slot
// positions contained in mask, typically produced by Mask.
func WithBitmapFilter(mask *roaring.Bitmap) func(o *SearchOptions) {
	return func(o *SearchOptions) {
		o.Filter = mask.Contains
	}
}

// Nearest returns the single object closest to pt, or false for an empty
// tree.
//
// Branch-and-bound: a subtree is pruned as soon as the lower-bound distance
// from pt to its bounding box cannot beat the best distance found so far,
// and the child nearer to pt is descended first so that a tight bound is
// found early. Between equidistant objects the traversal order decides.
func (t *Tree[P, O]) Nearest(pt P) (O, bool) {
	var zero O
	if len(t.slots) == 0 {
		return zero, false
	}

	s := nearestState[P, O]{slots: t.slots, target: pt, best: -1}
	s.walk(0)

	if s.best < 0 {
		return zero, false
	}
	return t.slots[s.best].Object, true
}

type nearestState[P Point[P], O Object[P]] struct {
	slots       []Slot[P, O]
	target      P
	distSquared float64
	best        int
}

func (s *nearestState[P, O]) walk(i int) {
	slot := &s.slots[i]

	if s.best >= 0 && slot.Bounds.DistSquared(s.target) >= s.distSquared {
		return
	}

	if d := slot.Object.DistSquared(s.target); s.best < 0 || d < s.distSquared {
		s.distSquared, s.best = d, i
	}

	l, r := 2*i+1, 2*i+2
	if r < len(s.slots) {
		if s.slots[r].Bounds.DistSquared(s.target) < s.slots[l].Bounds.DistSquared(s.target) {
			l, r = r, l
		}
		s.walk(l)
		s.walk(r)
	} else if l < len(s.slots) {
		s.walk(l)
	}
}

// NearestK returns up to k objects closest to pt, ordered by increasing
// distance.
//
// The same branch-and-bound rule as Nearest generalizes through a bounded
// max-heap of candidates: once k candidates are held, the heap top is the
// distance to beat.
func (t *Tree[P, O]) NearestK(pt P, k int, optFns ...func(o *SearchOptions)) []Neighbor[O] {
	if k <= 0 || len(t.slots) == 0 {
		return nil
	}

	var opts SearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if k > len(t.slots) {
		k = len(t.slots)
	}
	candidates := queue.NewMax(k)

	var walk func(i int)
	walk = func(i int) {
		slot := &t.slots[i]

		if candidates.Len() == k {
			worst, _ := candidates.Top()
			if slot.Bounds.DistSquared(pt) >= worst.DistSquared {
				return
			}
		}

		if opts.Filter == nil || opts.Filter(uint32(i)) {
			d := slot.Object.DistSquared(pt)
			if candidates.Len() < k {
				candidates.Push(queue.Candidate{Slot: uint32(i), DistSquared: d})
			} else if worst, _ := candidates.Top(); d < worst.DistSquared {
				candidates.Pop()
				candidates.Push(queue.Candidate{Slot: uint32(i), DistSquared: d})
			}
		}

		l, r := 2*i+1, 2*i+2
		if r < len(t.slots) {
			if t.slots[r].Bounds.DistSquared(pt) < t.slots[l].Bounds.DistSquared(pt) {
				l, r = r, l
			}
			walk(l)
			walk(r)
		} else if l < len(t.slots) {
			walk(l)
		}
	}
	walk(0)

	results := make([]Neighbor[O], candidates.Len())
	for i := candidates.Len() - 1; i >= 0; i-- {
		c, _ := candidates.Pop()
		results[i] = Neighbor[O]{Object: t.slots[c.Slot].Object, DistSquared: c.DistSquared}
	}
	return results
}
