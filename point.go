package kdtree

// Point is the coordinate capability required of the point type a tree is
// indexed over. Implementations must be plain value types of fixed size;
// the zero value must be usable (Dim in particular is called on it).
type Point[P any] interface {
	// Dim returns the number of dimensions.
	Dim() int

	// Coord returns the coordinate along the given axis, 0 <= axis < Dim().
	Coord(axis int) float64

	// DistSquared returns the squared Euclidean distance to other.
	DistSquared(other P) float64

	// Min returns the componentwise minimum of the receiver and other.
	Min(other P) P

	// Max returns the componentwise maximum of the receiver and other.
	Max(other P) P
}

// Box is an axis-aligned bounding box, represented by the corner with the
// smallest and the corner with the largest coordinate values.
type Box[P Point[P]] struct {
	Min P
	Max P
}

// Union returns the smallest box enclosing both b and other.
func (b Box[P]) Union(other Box[P]) Box[P] {
	return Box[P]{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Contains reports whether pt lies inside b (boundary included).
func (b Box[P]) Contains(pt P) bool {
	for axis := 0; axis < pt.Dim(); axis++ {
		c := pt.Coord(axis)
		if b.Min.Coord(axis) > c || b.Max.Coord(axis) < c {
			return false
		}
	}
	return true
}

// Intersects reports whether b and other overlap (touching counts).
func (b Box[P]) Intersects(other Box[P]) bool {
	for axis := 0; axis < b.Min.Dim(); axis++ {
		if b.Min.Coord(axis) > other.Max.Coord(axis) || b.Max.Coord(axis) < other.Min.Coord(axis) {
			return false
		}
	}
	return true
}

// DistSquared returns the squared distance from pt to the closest point of b.
// It is zero when pt lies inside b and never overestimates the distance to
// anything contained in b, which is what makes it a valid pruning bound.
func (b Box[P]) DistSquared(pt P) float64 {
	var sum float64
	for axis := 0; axis < pt.Dim(); axis++ {
		c := pt.Coord(axis)
		if lo := b.Min.Coord(axis); c < lo {
			d := lo - c
			sum += d * d
		} else if hi := b.Max.Coord(axis); c > hi {
			d := c - hi
			sum += d * d
		}
	}
	return sum
}

// center returns the midpoint of b along the given axis.
func (b Box[P]) center(axis int) float64 {
	return (b.Min.Coord(axis) + b.Max.Coord(axis)) / 2
}

// equal reports whether b and other have identical corner coordinates.
func (b Box[P]) equal(other Box[P]) bool {
	for axis := 0; axis < b.Min.Dim(); axis++ {
		if b.Min.Coord(axis) != other.Min.Coord(axis) || b.Max.Coord(axis) != other.Max.Coord(axis) {
			return false
		}
	}
	return true
}

var (
	_ Point[Point2]  = Point2{}
	_ Object[Point2] = Point2{}
	_ Point[Point3]  = Point3{}
	_ Object[Point3] = Point3{}
)

// Point2 is a point in two-dimensional real space. It satisfies both Point
// and Object, so a tree of bare points is Tree[Point2, Point2].
type Point2 [2]float64

func (p Point2) Dim() int { return 2 }

func (p Point2) Coord(axis int) float64 { return p[axis] }

// DistSquared returns the squared Euclidean distance to other.
func (p Point2) DistSquared(other Point2) float64 {
	dx := p[0] - other[0]
	dy := p[1] - other[1]
	return dx*dx + dy*dy
}

func (p Point2) Min(other Point2) Point2 {
	return Point2{min(p[0], other[0]), min(p[1], other[1])}
}

func (p Point2) Max(other Point2) Point2 {
	return Point2{max(p[0], other[0]), max(p[1], other[1])}
}

// Bounds returns the degenerate box covering just p.
func (p Point2) Bounds() Box[Point2] { return Box[Point2]{Min: p, Max: p} }

// Point3 is a point in three-dimensional real space. It satisfies both Point
// and Object.
type Point3 [3]float64

func (p Point3) Dim() int { return 3 }

func (p Point3) Coord(axis int) float64 { return p[axis] }

// DistSquared returns the squared Euclidean distance to other.
func (p Point3) DistSquared(other Point3) float64 {
	dx := p[0] - other[0]
	dy := p[1] - other[1]
	dz := p[2] - other[2]
	return dx*dx + dy*dy + dz*dz
}

func (p Point3) Min(other Point3) Point3 {
	return Point3{min(p[0], other[0]), min(p[1], other[1]), min(p[2], other[2])}
}

func (p Point3) Max(other Point3) Point3 {
	return Point3{max(p[0], other[0]), max(p[1], other[1]), max(p[2], other[2])}
}

// Bounds returns the degenerate box covering just p.
func (p Point3) Bounds() Box[Point3] { return Box[Point3]{Min: p, Max: p} }
