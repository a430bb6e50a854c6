package kdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBox(t *testing.T) {
	t.Run("Union", func(t *testing.T) {
		a := Box[Point2]{Min: Point2{0, 0}, Max: Point2{1, 1}}
		b := Box[Point2]{Min: Point2{-1, 0.5}, Max: Point2{0.5, 2}}

		u := a.Union(b)
		assert.Equal(t, Point2{-1, 0}, u.Min)
		assert.Equal(t, Point2{1, 2}, u.Max)
	})

	t.Run("Contains", func(t *testing.T) {
		b := Box[Point2]{Min: Point2{0, 0}, Max: Point2{1, 1}}

		assert.True(t, b.Contains(Point2{0.5, 0.5}))
		assert.True(t, b.Contains(Point2{0, 1}), "boundary is included")
		assert.False(t, b.Contains(Point2{1.1, 0.5}))
		assert.False(t, b.Contains(Point2{0.5, -0.1}))
	})

	t.Run("Intersects", func(t *testing.T) {
		b := Box[Point2]{Min: Point2{0, 0}, Max: Point2{1, 1}}

		assert.True(t, b.Intersects(Box[Point2]{Min: Point2{0.5, 0.5}, Max: Point2{2, 2}}))
		assert.True(t, b.Intersects(Box[Point2]{Min: Point2{1, 1}, Max: Point2{2, 2}}), "touching counts")
		assert.False(t, b.Intersects(Box[Point2]{Min: Point2{1.5, 0}, Max: Point2{2, 1}}))
	})

	t.Run("DistSquared", func(t *testing.T) {
		b := Box[Point2]{Min: Point2{0, 0}, Max: Point2{1, 1}}

		assert.Equal(t, 0.0, b.DistSquared(Point2{0.5, 0.5}), "inside")
		assert.Equal(t, 0.0, b.DistSquared(Point2{1, 0}), "boundary")
		assert.Equal(t, 1.0, b.DistSquared(Point2{2, 0.5}))
		assert.Equal(t, 2.0, b.DistSquared(Point2{2, 2}))
	})
}

func TestPoint2(t *testing.T) {
	p := Point2{1, 2}

	assert.Equal(t, 2, p.Dim())
	assert.Equal(t, 1.0, p.Coord(0))
	assert.Equal(t, 2.0, p.Coord(1))
	assert.Equal(t, 8.0, p.DistSquared(Point2{3, 4}))
	assert.Equal(t, Point2{1, 1}, p.Min(Point2{3, 1}))
	assert.Equal(t, Point2{3, 2}, p.Max(Point2{3, 1}))
	assert.Equal(t, Box[Point2]{Min: p, Max: p}, p.Bounds())
}

func TestPoint3(t *testing.T) {
	p := Point3{1, 2, 3}

	assert.Equal(t, 3, p.Dim())
	assert.Equal(t, 3.0, p.Coord(2))
	assert.Equal(t, 3.0, p.DistSquared(Point3{2, 3, 4}))
	assert.Equal(t, Point3{1, 2, 0}, p.Min(Point3{4, 5, 0}))
	assert.Equal(t, Point3{4, 5, 3}, p.Max(Point3{4, 5, 0}))
	assert.Equal(t, Box[Point3]{Min: p, Max: p}, p.Bounds())
}
