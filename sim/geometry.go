package sim

import (
	"github.com/Dakror/aabbtree"
)

// Point aliases the tree library's position type so geometry, engine, and
// index speak the same coordinates.
type Point = aabbtree.Point

// Box is the simulation domain: one edge length and one periodicity flag per
// axis. Periodicity is fixed at construction and never changes.
type Box struct {
	Size     Point
	Periodic [2]bool
}

// SquareBox returns a periodic square box with the given edge length.
func SquareBox(length float64) Box {
	return Box{Size: Point{length, length}, Periodic: [2]bool{true, true}}
}

// Wrap maps a position back into [0, Size) on each periodic axis. A
// coordinate can be at most one box length out of range, which holds for any
// trial displacement smaller than the box.
func (b Box) Wrap(p Point) Point {
	for i := 0; i < 2; i++ {
		if !b.Periodic[i] {
			continue
		}
		if p[i] < 0 {
			p[i] += b.Size[i]
		} else if p[i] >= b.Size[i] {
			p[i] -= b.Size[i]
		}
	}
	return p
}

// MinimumImage returns the shortest separation vector a-b under the box's
// periodic wraparound. Requires each periodic edge to be at least twice the
// largest interaction cutoff, a precondition validated by Config.
func (b Box) MinimumImage(a, p Point) Point {
	var sep Point
	for i := 0; i < 2; i++ {
		sep[i] = a[i] - p[i]
		if !b.Periodic[i] {
			continue
		}
		if sep[i] < -0.5*b.Size[i] {
			sep[i] += b.Size[i]
		} else if sep[i] >= 0.5*b.Size[i] {
			sep[i] -= b.Size[i]
		}
	}
	return sep
}

// Overlaps reports whether two discs at a and p overlap, given the squared
// sum of their radii. The comparison is strict: a pair at exactly the cutoff
// distance is touching, not overlapping. No epsilon is applied anywhere.
func (b Box) Overlaps(a, p Point, cutoffSq float64) bool {
	sep := b.MinimumImage(a, p)
	return sep[0]*sep[0]+sep[1]*sep[1] < cutoffSq
}
