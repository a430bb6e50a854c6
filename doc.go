// Package kdtree provides an immutable k-d tree over user-defined objects,
// stored as one flat, contiguous array with an implicit (pointer-free)
// topology.
//
// Because the tree is a plain array of fixed-size records, it can be
// persisted as raw bytes and reloaded with zero deserialization cost,
// including directly from a memory-mapped file.
//
// # Quick Start
//
//	points := []kdtree.Point2{{0, 0}, {1, 1}, {2, 2}, {3, 0}, {0, 3}}
//
//	tree := kdtree.New[kdtree.Point2](points)
//
//	nearest, ok := tree.Nearest(kdtree.Point2{1, 0})
//
//	within := kdtree.NewWithinDistance[kdtree.Point2, kdtree.Point2](kdtree.Point2{0, 0}, 1.5)
//	for p := range tree.Search(within) {
//	    fmt.Println(p)
//	}
//
// Arbitrary object types participate by implementing the two-method Object
// interface: an axis-aligned bounding box and a lower bound on the squared
// distance to a query point. Points, spheres, segments and polygon bounding
// boxes all fit this contract.
//
// # Construction
//
// New consumes the input slice and reorders it while building; NewParallel
// does the same using fork-join parallelism over disjoint sub-windows. Both
// produce identical per-slot bounding summaries. The tree never changes after
// construction, so any number of goroutines may query it concurrently.
//
// # Persistence
//
// Three interchange forms are supported, from fastest to most portable:
//
//   - Bytes/View/Open: the raw slot array, reinterpreted in place (native
//     endianness; producer and consumer must agree on the record layout).
//   - WriteSnapshot/ReadSnapshot: a self-describing checksummed container
//     with optional zstd or lz4 compression.
//   - Encode/Decode: structured serialization through a pluggable codec
//     (JSON or gob).
package kdtree
