package kdtree

import (
	"log/slog"
	"math"
	"math/bits"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options contains configuration options for building a tree.
type Options struct {
	// ParallelThreshold is the window size above which NewParallel forks the
	// two subtree recursions into separate tasks. Smaller windows are always
	// built sequentially; forking them would cost more than it saves.
	ParallelThreshold int

	// MaxGoroutines caps the number of additional worker goroutines used by
	// NewParallel. Zero or negative means GOMAXPROCS.
	MaxGoroutines int

	// Logger receives a debug summary of the build. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions contains the default configuration options for building.
var DefaultOptions = Options{
	ParallelThreshold: 1024,
}

// New builds a tree from objects.
//
// New takes ownership of the slice: it is reordered in place while
// partitioning and must not be used by the caller afterwards. Any finite
// collection builds successfully; objects with degenerate bounding boxes are
// accepted as-is and merely weaken pruning.
func New[P Point[P], O Object[P]](objects []O, optFns ...func(o *Options)) *Tree[P, O] {
	return build[P](objects, false, optFns)
}

// NewParallel builds a tree from objects using fork-join parallelism.
//
// After a window is partitioned, the two sub-windows occupy disjoint index
// ranges of the input and write to disjoint slot ranges of the output, so
// they are processed concurrently with no synchronization beyond the join.
// The result is identical to New on the same input.
//
// The object type must be safe to hand between goroutines; plain value
// objects always are.
func NewParallel[P Point[P], O Object[P]](objects []O, optFns ...func(o *Options)) *Tree[P, O] {
	return build[P](objects, true, optFns)
}

func build[P Point[P], O Object[P]](objects []O, parallel bool, optFns []func(o *Options)) *Tree[P, O] {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ParallelThreshold < 2 {
		opts.ParallelThreshold = 2
	}

	start := time.Now()

	b := &builder[P, O]{
		slots:     make([]Slot[P, O], len(objects)),
		threshold: opts.ParallelThreshold,
	}
	if parallel && len(objects) >= opts.ParallelThreshold {
		workers := opts.MaxGoroutines
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		b.sem = semaphore.NewWeighted(int64(workers))
	}

	if len(objects) > 0 {
		b.place(objects, 0)
	}
	summarize(b.slots)

	if opts.Logger != nil {
		opts.Logger.Debug("kdtree build complete",
			slog.Int("objects", len(objects)),
			slog.Bool("parallel", b.sem != nil),
			slog.Duration("elapsed", time.Since(start)),
		)
	}

	return &Tree[P, O]{slots: b.slots}
}

type builder[P Point[P], O Object[P]] struct {
	slots     []Slot[P, O]
	threshold int
	sem       *semaphore.Weighted // nil for sequential builds
}

// place recursively partitions window into the subtree rooted at slot.
// Distinct calls always touch disjoint window and slot ranges, which is what
// makes the forked variant race-free.
func (b *builder[P, O]) place(window []O, slot int) {
	if len(window) == 1 {
		b.slots[slot].Object = window[0]
		return
	}

	axis := spreadAxis[P](window)
	k := leftSubtreeSize(len(window))
	selectNth[P](window, k, axis)
	b.slots[slot].Object = window[k]

	left, right := window[:k], window[k+1:]

	if b.sem != nil && len(window) >= b.threshold && b.sem.TryAcquire(1) {
		var g errgroup.Group
		g.Go(func() error {
			defer b.sem.Release(1)
			if len(left) > 0 {
				b.place(left, 2*slot+1)
			}
			return nil
		})
		if len(right) > 0 {
			b.place(right, 2*slot+2)
		}
		_ = g.Wait()
		return
	}

	if len(left) > 0 {
		b.place(left, 2*slot+1)
	}
	if len(right) > 0 {
		b.place(right, 2*slot+2)
	}
}

// summarize fills in the subtree bounding boxes. Children always live at
// higher indices than their parent, so a single reverse pass visits every
// subtree bottom-up. Running it after placement also makes the summaries
// independent of build order: sequential and parallel builds agree exactly.
func summarize[P Point[P], O Object[P]](slots []Slot[P, O]) {
	n := len(slots)
	for i := n - 1; i >= 0; i-- {
		bounds := slots[i].Object.Bounds()
		if l := 2*i + 1; l < n {
			bounds = bounds.Union(slots[l].Bounds)
		}
		if r := 2*i + 2; r < n {
			bounds = bounds.Union(slots[r].Bounds)
		}
		slots[i].Bounds = bounds
	}
}

// leftSubtreeSize returns the number of nodes in the left subtree of the
// root of a complete binary tree with n nodes. The partition rank must match
// the implicit layout exactly or slots would be left empty.
func leftSubtreeSize(n int) int {
	if n <= 1 {
		return 0
	}
	h := bits.Len(uint(n)) - 1 // depth of the deepest level
	lastHalf := 1 << (h - 1)   // capacity of the left subtree's deepest level
	last := n - (1<<h - 1)     // nodes actually on the deepest level
	return lastHalf - 1 + min(last, lastHalf)
}

// spreadAxis returns the dimension with the greatest spread of object
// centers across the window. Splitting along it partitions skewed inputs far
// better than a fixed round-robin axis.
func spreadAxis[P Point[P], O Object[P]](window []O) int {
	var zero P
	dim := zero.Dim()

	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for axis := 0; axis < dim; axis++ {
		lo[axis] = math.Inf(1)
		hi[axis] = math.Inf(-1)
	}

	for i := range window {
		bounds := window[i].Bounds()
		for axis := 0; axis < dim; axis++ {
			c := bounds.center(axis)
			lo[axis] = min(lo[axis], c)
			hi[axis] = max(hi[axis], c)
		}
	}

	axis := 0
	spread := math.Inf(-1)
	for a := 0; a < dim; a++ {
		if s := hi[a] - lo[a]; s > spread {
			axis, spread = a, s
		}
	}
	return axis
}

func centerOf[P Point[P], O Object[P]](obj O, axis int) float64 {
	return obj.Bounds().center(axis)
}

// selectNth partially sorts window so that the element with the k-th
// smallest center coordinate along axis ends up at index k, everything
// before it is not greater and everything after it is not smaller.
// Quickselect with a median-of-three pivot: linear expected time and fully
// deterministic, so ties always break the same way.
func selectNth[P Point[P], O Object[P]](window []O, k, axis int) {
	lo, hi := 0, len(window)-1
	for lo < hi {
		p := partition[P](window, lo, hi, axis)
		switch {
		case p == k:
			return
		case p < k:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

func partition[P Point[P], O Object[P]](window []O, lo, hi, axis int) int {
	mid := lo + (hi-lo)/2
	if centerOf[P](window[mid], axis) < centerOf[P](window[lo], axis) {
		window[lo], window[mid] = window[mid], window[lo]
	}
	if centerOf[P](window[hi], axis) < centerOf[P](window[lo], axis) {
		window[lo], window[hi] = window[hi], window[lo]
	}
	if centerOf[P](window[hi], axis) < centerOf[P](window[mid], axis) {
		window[mid], window[hi] = window[hi], window[mid]
	}
	window[mid], window[hi] = window[hi], window[mid]

	pivot := centerOf[P](window[hi], axis)
	i := lo
	for j := lo; j < hi; j++ {
		if centerOf[P](window[j], axis) < pivot {
			window[i], window[j] = window[j], window[i]
			i++
		}
	}
	window[i], window[hi] = window[hi], window[i]
	return i
}
