package sim

import (
	"github.com/Dakror/aabbtree"
)

// SpatialIndex is the broad-phase contract the engine requires, one instance
// per species. Entries are keyed by the particle's slot index, stable for
// the particle's lifetime.
//
// Query may over-report (false positives are filtered by the exact geometry
// test) but must never omit an entry whose region truly intersects the query
// region — that is the index's core correctness contract.
type SpatialIndex interface {
	// Insert registers a new entry under id with its bounding region.
	Insert(id uint, region aabbtree.AABB) error
	// Update replaces the bounding region of an existing entry. Callers
	// must pass the region enclosing the entry's actual current position.
	Update(id uint, region aabbtree.AABB) error
	// Query appends to buf the ids of entries whose stored region
	// intersects region, returning the extended slice.
	Query(region aabbtree.AABB, buf []uint) []uint
}

// treeIndex adapts an AABB tree to the SpatialIndex contract.
type treeIndex struct {
	tree *aabbtree.Tree
}

// NewTreeIndex builds a SpatialIndex backed by a dynamic AABB tree. The
// skin-thickness fraction fattens stored regions so small accepted moves
// avoid a tree reinsertion; capacity is a sizing hint.
func NewTreeIndex(skinThickness float64, box Box, capacity int) SpatialIndex {
	return &treeIndex{
		tree: aabbtree.New(skinThickness, box.Periodic, box.Size, capacity),
	}
}

func (t *treeIndex) Insert(id uint, region aabbtree.AABB) error {
	return t.tree.Insert(id, region)
}

func (t *treeIndex) Update(id uint, region aabbtree.AABB) error {
	_, err := t.tree.Update(id, region)
	return err
}

func (t *treeIndex) Query(region aabbtree.AABB, buf []uint) []uint {
	return t.tree.Query(region, buf)
}
