package kdtree_test

import (
	"bytes"
	"fmt"
	"log"
	"sort"

	kdtree "github.com/adamreichold/sif-kdtree"
	"github.com/adamreichold/sif-kdtree/persistence"
)

// Example_regionSearch demonstrates building a tree and collecting all
// points within a distance of a query point.
func Example_regionSearch() {
	points := []kdtree.Point2{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 2}}

	tree := kdtree.New[kdtree.Point2](points)

	query := kdtree.NewWithinDistance[kdtree.Point2, kdtree.Point2](kdtree.Point2{0, 0}, 1.0)

	var within []kdtree.Point2
	for p := range tree.Search(query) {
		within = append(within, p)
	}
	sort.Slice(within, func(i, j int) bool {
		if within[i][0] != within[j][0] {
			return within[i][0] < within[j][0]
		}
		return within[i][1] < within[j][1]
	})

	for _, p := range within {
		fmt.Println(p)
	}
	// Output:
	// [0 0]
	// [0 1]
	// [1 0]
}

// Example_nearest demonstrates nearest-neighbour search.
func Example_nearest() {
	points := []kdtree.Point2{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 2}}

	tree := kdtree.New[kdtree.Point2](points)

	nearest, ok := tree.Nearest(kdtree.Point2{0.4, 0.1})
	fmt.Println(nearest, ok)

	for _, n := range tree.NearestK(kdtree.Point2{0, 0}, 3) {
		fmt.Println(n.DistSquared)
	}
	// Output:
	// [0 0] true
	// 0
	// 1
	// 1
}

// Example_snapshot demonstrates persisting a tree and reading it back.
func Example_snapshot() {
	points := []kdtree.Point2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	tree := kdtree.New[kdtree.Point2](points)

	var buf bytes.Buffer
	if err := tree.WriteSnapshot(&buf, persistence.WithCompression(persistence.CompressionZstd)); err != nil {
		log.Fatal(err)
	}

	restored, err := kdtree.ReadSnapshot[kdtree.Point2, kdtree.Point2](&buf)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(restored.Len())
	// Output: 4
}
