package aabbtree

import (
	"fmt"
	"slices"
)

const nullNode = -1

// node is one slot in the tree's contiguous node pool. Unused slots are
// chained through next to form the free list.
type node struct {
	aabb   AABB // fattened box for leaves, union of children for branches
	parent int
	next   int
	left   int
	right  int
	height int // 0 for leaves, -1 for free slots
	id     uint
}

func (n *node) isLeaf() bool { return n.left == nullNode }

// Tree is a dynamic AABB tree. Leaves are stored with a fattened bounding
// box so that small movements do not force a reinsertion on every Update.
//
// Not safe for concurrent use.
type Tree struct {
	pool     []node
	root     int
	freeList int

	leaves        map[uint]int
	skinThickness float64
	periodicity   [2]bool
	boxSize       Point

	// Widest fattened leaf box seen per axis. Bounds how far any stored box
	// can overhang a periodic seam; grows monotonically, never shrinks on
	// Remove (over-reporting an image query is allowed, omitting one is not).
	maxLeafExtent Point

	stack []int // reused traversal stack
}

// New creates a tree for a box of the given size. skinThickness is the
// fattening fraction applied to inserted AABBs, periodicity flags each axis,
// and capacity is a sizing hint for the expected number of entries.
func New(skinThickness float64, periodicity [2]bool, boxSize Point, capacity int) *Tree {
	if capacity < 1 {
		capacity = 1
	}
	t := &Tree{
		pool:          make([]node, capacity),
		root:          nullNode,
		leaves:        make(map[uint]int, capacity),
		skinThickness: skinThickness,
		periodicity:   periodicity,
		boxSize:       boxSize,
		stack:         make([]int, 0, 64),
	}
	t.initFreeList(0)
	return t
}

func (t *Tree) initFreeList(from int) {
	for i := from; i < len(t.pool); i++ {
		t.pool[i].next = i + 1
		t.pool[i].height = -1
	}
	t.pool[len(t.pool)-1].next = nullNode
	t.freeList = from
}

func (t *Tree) allocateNode() int {
	if t.freeList == nullNode {
		grown := make([]node, 2*len(t.pool))
		copy(grown, t.pool)
		from := len(t.pool)
		t.pool = grown
		t.initFreeList(from)
	}
	i := t.freeList
	t.freeList = t.pool[i].next
	n := &t.pool[i]
	n.parent = nullNode
	n.left = nullNode
	n.right = nullNode
	n.height = 0
	return i
}

func (t *Tree) freeNode(i int) {
	t.pool[i].next = t.freeList
	t.pool[i].height = -1
	t.freeList = i
}

// Insert registers a new entry. The id must be unique within the tree and
// stable for the entry's lifetime.
func (t *Tree) Insert(id uint, aabb AABB) error {
	if _, ok := t.leaves[id]; ok {
		return fmt.Errorf("aabbtree: id %d already inserted", id)
	}
	leaf := t.allocateNode()
	t.pool[leaf].aabb = aabb.Fattened(t.skinThickness)
	t.pool[leaf].id = id
	t.leaves[id] = leaf
	t.noteLeafExtent(t.pool[leaf].aabb)
	t.insertLeaf(leaf)
	return nil
}

func (t *Tree) noteLeafExtent(aabb AABB) {
	for k := 0; k < 2; k++ {
		if w := aabb.Upper[k] - aabb.Lower[k]; w > t.maxLeafExtent[k] {
			t.maxLeafExtent[k] = w
		}
	}
}

// Remove deletes an entry from the tree.
func (t *Tree) Remove(id uint) error {
	leaf, ok := t.leaves[id]
	if !ok {
		return fmt.Errorf("aabbtree: id %d not present", id)
	}
	delete(t.leaves, id)
	t.removeLeaf(leaf)
	t.freeNode(leaf)
	return nil
}

// Update replaces the bounding box of an existing entry. When the new box
// still lies inside the stored fattened box the tree is left untouched and
// Update reports false; otherwise the leaf is reinserted and Update reports
// true.
func (t *Tree) Update(id uint, aabb AABB) (bool, error) {
	leaf, ok := t.leaves[id]
	if !ok {
		return false, fmt.Errorf("aabbtree: id %d not present", id)
	}
	if t.pool[leaf].aabb.Contains(aabb) {
		return false, nil
	}
	t.removeLeaf(leaf)
	t.pool[leaf].aabb = aabb.Fattened(t.skinThickness)
	t.noteLeafExtent(t.pool[leaf].aabb)
	t.insertLeaf(leaf)
	return true, nil
}

// Count returns the number of entries.
func (t *Tree) Count() int { return len(t.leaves) }

// Height returns the height of the tree, -1 when empty.
func (t *Tree) Height() int {
	if t.root == nullNode {
		return -1
	}
	return t.pool[t.root].height
}

// Query appends to buf the ids of all entries whose stored box intersects
// the query box, and returns the extended slice. Near a periodic boundary
// the wrapped images of the query box are tested as well, so an overlap
// across the seam is never missed. Passing a nil buf is fine.
func (t *Tree) Query(aabb AABB, buf []uint) []uint {
	start := len(buf)
	buf = t.queryRaw(aabb, buf, buf[start:])
	for _, img := range t.periodicImages(aabb) {
		buf = t.queryRaw(img, buf, buf[start:])
	}
	return buf
}

// QueryID is Query against the stored (fattened) box of an existing entry,
// with the entry itself excluded from the result.
func (t *Tree) QueryID(id uint, buf []uint) ([]uint, error) {
	leaf, ok := t.leaves[id]
	if !ok {
		return buf, fmt.Errorf("aabbtree: id %d not present", id)
	}
	start := len(buf)
	buf = t.Query(t.pool[leaf].aabb, buf)
	out := buf[:start]
	for _, c := range buf[start:] {
		if c != id {
			out = append(out, c)
		}
	}
	return out, nil
}

// periodicImages returns the shifted copies of aabb that must also be
// queried. An image is needed both when aabb itself pokes past a periodic
// boundary and when aabb lies close enough to a boundary that a stored box
// overhanging the seam from the other side could reach it; maxLeafExtent
// bounds that overhang. Up to two shifts per axis (a narrow box can make
// both seams of an axis reachable) plus their combinations.
func (t *Tree) periodicImages(aabb AABB) []AABB {
	axisShifts := func(k int) []float64 {
		if !t.periodicity[k] {
			return nil
		}
		var s []float64
		if aabb.Lower[k] < t.maxLeafExtent[k] {
			s = append(s, t.boxSize[k])
		}
		if aabb.Upper[k] > t.boxSize[k]-t.maxLeafExtent[k] {
			s = append(s, -t.boxSize[k])
		}
		return s
	}
	xs := axisShifts(0)
	ys := axisShifts(1)

	var images []AABB
	for _, sx := range xs {
		images = append(images, aabb.Shifted(sx, 0))
	}
	for _, sy := range ys {
		images = append(images, aabb.Shifted(0, sy))
	}
	for _, sx := range xs {
		for _, sy := range ys {
			images = append(images, aabb.Shifted(sx, sy))
		}
	}
	return images
}

// queryRaw walks the tree for a single query box. seen is the slice of ids
// already collected for this logical query; hits found again through a
// periodic image are not repeated.
func (t *Tree) queryRaw(aabb AABB, buf []uint, seen []uint) []uint {
	if t.root == nullNode {
		return buf
	}
	t.stack = t.stack[:0]
	t.stack = append(t.stack, t.root)
	for len(t.stack) > 0 {
		i := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		n := &t.pool[i]
		if !n.aabb.Overlaps(aabb, true) {
			continue
		}
		if n.isLeaf() {
			if !slices.Contains(seen, n.id) {
				buf = append(buf, n.id)
			}
		} else {
			t.stack = append(t.stack, n.left, n.right)
		}
	}
	return buf
}

// insertLeaf descends to the cheapest sibling by the surface area heuristic,
// splices in a new branch node, then walks back up refitting and balancing.
func (t *Tree) insertLeaf(leaf int) {
	if t.root == nullNode {
		t.root = leaf
		t.pool[leaf].parent = nullNode
		return
	}

	leafAABB := t.pool[leaf].aabb
	index := t.root
	for !t.pool[index].isLeaf() {
		left := t.pool[index].left
		right := t.pool[index].right

		area := t.pool[index].aabb.SurfaceArea()
		combinedArea := Merge(t.pool[index].aabb, leafAABB).SurfaceArea()

		// Cost of creating a new parent for this node and the leaf.
		cost := 2 * combinedArea
		// Minimum cost of pushing the leaf further down the tree.
		inheritanceCost := 2 * (combinedArea - area)

		costLeft := t.descendCost(left, leafAABB) + inheritanceCost
		costRight := t.descendCost(right, leafAABB) + inheritanceCost

		if cost < costLeft && cost < costRight {
			break
		}
		if costLeft < costRight {
			index = left
		} else {
			index = right
		}
	}

	sibling := index
	oldParent := t.pool[sibling].parent
	newParent := t.allocateNode()
	t.pool[newParent].parent = oldParent
	t.pool[newParent].aabb = Merge(leafAABB, t.pool[sibling].aabb)
	t.pool[newParent].height = t.pool[sibling].height + 1

	if oldParent != nullNode {
		if t.pool[oldParent].left == sibling {
			t.pool[oldParent].left = newParent
		} else {
			t.pool[oldParent].right = newParent
		}
	} else {
		t.root = newParent
	}
	t.pool[newParent].left = sibling
	t.pool[newParent].right = leaf
	t.pool[sibling].parent = newParent
	t.pool[leaf].parent = newParent

	t.refitUpward(t.pool[leaf].parent)
}

func (t *Tree) descendCost(child int, leafAABB AABB) float64 {
	merged := Merge(leafAABB, t.pool[child].aabb).SurfaceArea()
	if t.pool[child].isLeaf() {
		return merged
	}
	return merged - t.pool[child].aabb.SurfaceArea()
}

func (t *Tree) removeLeaf(leaf int) {
	if leaf == t.root {
		t.root = nullNode
		return
	}

	parent := t.pool[leaf].parent
	grandParent := t.pool[parent].parent
	var sibling int
	if t.pool[parent].left == leaf {
		sibling = t.pool[parent].right
	} else {
		sibling = t.pool[parent].left
	}

	if grandParent != nullNode {
		if t.pool[grandParent].left == parent {
			t.pool[grandParent].left = sibling
		} else {
			t.pool[grandParent].right = sibling
		}
		t.pool[sibling].parent = grandParent
		t.freeNode(parent)
		t.refitUpward(grandParent)
	} else {
		t.root = sibling
		t.pool[sibling].parent = nullNode
		t.freeNode(parent)
	}
}

func (t *Tree) refitUpward(index int) {
	for index != nullNode {
		index = t.balance(index)
		left := t.pool[index].left
		right := t.pool[index].right
		t.pool[index].height = 1 + max(t.pool[left].height, t.pool[right].height)
		t.pool[index].aabb = Merge(t.pool[left].aabb, t.pool[right].aabb)
		index = t.pool[index].parent
	}
}

// balance performs one AVL rotation at index if its subtrees differ in
// height by more than one, returning the node now occupying index's place.
func (t *Tree) balance(iA int) int {
	a := &t.pool[iA]
	if a.isLeaf() || a.height < 2 {
		return iA
	}

	iB := a.left
	iC := a.right
	diff := t.pool[iC].height - t.pool[iB].height

	if diff > 1 {
		return t.rotate(iA, iC)
	}
	if diff < -1 {
		return t.rotate(iA, iB)
	}
	return iA
}

// rotate lifts child iUp above its parent iA and returns iUp.
func (t *Tree) rotate(iA, iUp int) int {
	iL := t.pool[iUp].left
	iR := t.pool[iUp].right

	// Swap iA and iUp.
	t.pool[iUp].left = iA
	t.pool[iUp].parent = t.pool[iA].parent
	t.pool[iA].parent = iUp

	if t.pool[iUp].parent != nullNode {
		p := t.pool[iUp].parent
		if t.pool[p].left == iA {
			t.pool[p].left = iUp
		} else {
			t.pool[p].right = iUp
		}
	} else {
		t.root = iUp
	}

	// Attach the shallower grandchild back under iA.
	var keep, move int
	if t.pool[iL].height > t.pool[iR].height {
		keep, move = iL, iR
	} else {
		keep, move = iR, iL
	}
	t.pool[iUp].right = keep
	if t.pool[iA].left == iUp {
		t.pool[iA].left = move
	} else {
		t.pool[iA].right = move
	}
	t.pool[move].parent = iA

	t.pool[iA].aabb = Merge(t.pool[t.pool[iA].left].aabb, t.pool[t.pool[iA].right].aabb)
	t.pool[iA].height = 1 + max(t.pool[t.pool[iA].left].height, t.pool[t.pool[iA].right].height)
	t.pool[iUp].aabb = Merge(t.pool[t.pool[iUp].left].aabb, t.pool[t.pool[iUp].right].aabb)
	t.pool[iUp].height = 1 + max(t.pool[t.pool[iUp].left].height, t.pool[t.pool[iUp].right].height)
	return iUp
}

// validateStructure checks parent/child links and refit invariants below
// index. Used by tests.
func (t *Tree) validateStructure(index int) error {
	if index == nullNode {
		return nil
	}
	n := &t.pool[index]
	if index == t.root && n.parent != nullNode {
		return fmt.Errorf("root has a parent")
	}
	if n.isLeaf() {
		if n.right != nullNode || n.height != 0 {
			return fmt.Errorf("malformed leaf %d", index)
		}
		return nil
	}
	left, right := n.left, n.right
	if t.pool[left].parent != index || t.pool[right].parent != index {
		return fmt.Errorf("bad parent link under %d", index)
	}
	if n.height != 1+max(t.pool[left].height, t.pool[right].height) {
		return fmt.Errorf("stale height at %d", index)
	}
	if !n.aabb.Contains(Merge(t.pool[left].aabb, t.pool[right].aabb)) {
		return fmt.Errorf("stale box at %d", index)
	}
	if err := t.validateStructure(left); err != nil {
		return err
	}
	return t.validateStructure(right)
}
