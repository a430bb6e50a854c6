// Package queue provides the bounded candidate heap used by k-nearest
// searches.
package queue

// Candidate is one entry in a candidate queue: a slot position and its
// squared distance to the query point.
type Candidate struct {
	Slot        uint32
	DistSquared float64
}

// Max is a max-heap of candidates ordered by distance. Keeping the worst
// candidate on top makes it a bounded best-k collector: once the heap holds
// k entries, Top is the distance to beat.
//
// Value-based storage, no pointer indirection.
type Max struct {
	items []Candidate
}

// NewMax returns an empty heap with the given capacity pre-allocated.
func NewMax(capacity int) *Max {
	return &Max{items: make([]Candidate, 0, capacity)}
}

// Len returns the number of candidates in the heap.
func (q *Max) Len() int { return len(q.items) }

// Top returns the candidate with the largest distance without removing it.
func (q *Max) Top() (Candidate, bool) {
	if len(q.items) == 0 {
		return Candidate{}, false
	}
	return q.items[0], true
}

// Push inserts a candidate while maintaining the heap invariant.
func (q *Max) Push(c Candidate) {
	q.items = append(q.items, c)
	q.siftUp(len(q.items) - 1)
}

// Pop removes and returns the candidate with the largest distance.
func (q *Max) Pop() (Candidate, bool) {
	n := len(q.items)
	if n == 0 {
		return Candidate{}, false
	}
	root := q.items[0]
	last := q.items[n-1]
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

func (q *Max) less(i, j int) bool {
	return q.items[i].DistSquared > q.items[j].DistSquared
}

func (q *Max) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *Max) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
