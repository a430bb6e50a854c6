package kdtree

import (
	"math/rand"
)

// rect is a test object with a real extent, to exercise the box-based
// capability rather than only degenerate point boxes.
type rect struct {
	Lo, Hi Point2
}

func (r rect) Bounds() Box[Point2] { return Box[Point2]{Min: r.Lo, Max: r.Hi} }

func (r rect) DistSquared(pt Point2) float64 { return r.Bounds().DistSquared(pt) }

// matchAll admits every subtree and every object.
type matchAll[P Point[P], O Object[P]] struct{}

func (matchAll[P, O]) Visit(Box[P]) bool { return true }

func (matchAll[P, O]) Matches(O) bool { return true }

func randomPoints(rng *rand.Rand, n int) []Point2 {
	points := make([]Point2, n)
	for i := range points {
		points[i] = Point2{rng.Float64(), rng.Float64()}
	}
	return points
}

func randomRects(rng *rand.Rand, n int) []rect {
	rects := make([]rect, n)
	for i := range rects {
		lo := Point2{rng.Float64(), rng.Float64()}
		rects[i] = rect{
			Lo: lo,
			Hi: Point2{lo[0] + 0.1*rng.Float64(), lo[1] + 0.1*rng.Float64()},
		}
	}
	return rects
}
