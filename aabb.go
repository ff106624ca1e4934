// Package aabbtree implements a dynamic axis-aligned bounding box tree for
// two-dimensional broad-phase overlap queries, with optional periodic
// boundary handling.
//
// # Reading Guide
//
// Start with these two files:
//   - aabb.go: Point and AABB primitives (merge, overlap, containment)
//   - tree.go: the dynamic tree — fattened leaves, surface-area-heuristic
//     insertion, AVL balancing, and periodic-image queries
//
// The tree is a broad phase: Query may return false positives, which callers
// narrow with an exact geometric test, but it never omits an entry whose
// stored AABB truly intersects the query region.
package aabbtree

// Point is a position in 2D space.
type Point [2]float64

// Add returns p shifted by the given offsets.
func (p Point) Add(dx, dy float64) Point {
	return Point{p[0] + dx, p[1] + dy}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Lower Point
	Upper Point
}

// NewAABB builds a box from explicit bounds.
func NewAABB(lower, upper Point) AABB {
	return AABB{Lower: lower, Upper: upper}
}

// OfSphere returns the tight bounding box of a circle.
func OfSphere(center Point, radius float64) AABB {
	return AABB{
		Lower: Point{center[0] - radius, center[1] - radius},
		Upper: Point{center[0] + radius, center[1] + radius},
	}
}

// Merge returns the smallest box enclosing both a and b.
func Merge(a, b AABB) AABB {
	return AABB{
		Lower: Point{min(a.Lower[0], b.Lower[0]), min(a.Lower[1], b.Lower[1])},
		Upper: Point{max(a.Upper[0], b.Upper[0]), max(a.Upper[1], b.Upper[1])},
	}
}

// Overlaps reports whether the two boxes intersect. When touchIsOverlap is
// true, boxes sharing only an edge or corner count as overlapping; the broad
// phase uses this mode so no candidate pair is dropped before the exact test.
func (a AABB) Overlaps(b AABB, touchIsOverlap bool) bool {
	if touchIsOverlap {
		return a.Lower[0] <= b.Upper[0] && a.Upper[0] >= b.Lower[0] &&
			a.Lower[1] <= b.Upper[1] && a.Upper[1] >= b.Lower[1]
	}
	return a.Lower[0] < b.Upper[0] && a.Upper[0] > b.Lower[0] &&
		a.Lower[1] < b.Upper[1] && a.Upper[1] > b.Lower[1]
}

// Contains reports whether b lies entirely inside a.
func (a AABB) Contains(b AABB) bool {
	return a.Lower[0] <= b.Lower[0] && a.Lower[1] <= b.Lower[1] &&
		a.Upper[0] >= b.Upper[0] && a.Upper[1] >= b.Upper[1]
}

// Center returns the midpoint of the box.
func (a AABB) Center() Point {
	return Point{0.5 * (a.Lower[0] + a.Upper[0]), 0.5 * (a.Lower[1] + a.Upper[1])}
}

// SurfaceArea returns the perimeter of the box, the 2D analogue of surface
// area used by the insertion cost heuristic.
func (a AABB) SurfaceArea() float64 {
	wx := a.Upper[0] - a.Lower[0]
	wy := a.Upper[1] - a.Lower[1]
	return 2 * (wx + wy)
}

// Fattened returns the box enlarged on each axis by the given fraction of
// that axis' extent.
func (a AABB) Fattened(skinThickness float64) AABB {
	sx := skinThickness * (a.Upper[0] - a.Lower[0])
	sy := skinThickness * (a.Upper[1] - a.Lower[1])
	return AABB{
		Lower: Point{a.Lower[0] - sx, a.Lower[1] - sy},
		Upper: Point{a.Upper[0] + sx, a.Upper[1] + sy},
	}
}

// Shifted returns the box translated by (dx, dy).
func (a AABB) Shifted(dx, dy float64) AABB {
	return AABB{Lower: a.Lower.Add(dx, dy), Upper: a.Upper.Add(dx, dy)}
}
