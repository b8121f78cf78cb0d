package quadtree

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Body is a point mass indexed by the tree: a real particle at a leaf, or a
// mass-weighted aggregate at a subdivided node (ID 0).
type Body struct {
	ID     uint64
	Pos    mgl32.Vec2
	Mass   float32
	Radius float32
}

// maxDepth bounds subdivision so coincident or near-coincident positions
// cannot recurse forever. On hitting the bound the incoming body is folded
// into the node's aggregate instead of being placed structurally.
const maxDepth = 48

// Node holds a bounding box and either one real body (leaf) or the aggregate
// of every body in its subtree (subdivided). Child slots are indexed 0..3 by
// quadrant; each node exclusively owns its children.
type Node struct {
	Box      BoundingBox
	Body     Body
	Children [4]*Node
}

// Subdivided reports whether at least one child slot is occupied.
func (n *Node) Subdivided() bool {
	for _, c := range n.Children {
		if c != nil {
			return true
		}
	}
	return false
}

// Tree is a 4-ary spatial index over point masses. It is rebuilt from
// scratch every simulation step; nothing persists across rebuilds.
type Tree struct {
	root *Node
}

// New returns an empty tree covering box.
func New(box BoundingBox) *Tree {
	return &Tree{root: &Node{Box: box}}
}

// FromBodies builds a tree covering box and inserts the bodies in input
// order.
func FromBodies(box BoundingBox, bodies []Body) *Tree {
	t := New(box)
	for _, b := range bodies {
		t.Insert(b)
	}
	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Mass returns the aggregate mass of everything indexed.
func (t *Tree) Mass() float32 {
	return t.root.Body.Mass
}

// combine returns the mass-weighted aggregate of a and b.
// See https://en.wikipedia.org/wiki/Center_of_mass#A_system_of_particles
func combine(a, b Body) Body {
	m := a.Mass + b.Mass
	pos := a.Pos.Mul(a.Mass).Add(b.Pos.Mul(b.Mass)).Mul(1 / m)
	return Body{Pos: pos, Mass: m}
}

// Insert adds b to the index. Bodies positioned outside the root box are
// silently dropped. Every subdivided node on the path down has its aggregate
// updated before the descent continues, so ancestors reflect b's mass even
// while it is still being placed.
func (t *Tree) Insert(b Body) {
	if !t.root.Box.Contains(b.Pos) {
		return
	}
	if t.root.Body.Mass == 0 && !t.root.Subdivided() {
		t.root.Body = b
		return
	}

	node := t.root
	depth := 0
	for node.Subdivided() {
		node.Body = combine(node.Body, b)
		q := node.Box.Quadrant(b.Pos)
		if node.Children[q] == nil {
			node.Children[q] = &Node{Box: node.Box.Child(q), Body: b}
			return
		}
		node = node.Children[q]
		depth++
	}

	// node is a leaf with an occupant: subdivide until the occupant and the
	// incoming body land in different quadrants.
	for {
		if depth >= maxDepth {
			node.Body = combine(node.Body, b)
			return
		}
		occupant := node.Body
		qOcc := node.Box.Quadrant(occupant.Pos)
		qNew := node.Box.Quadrant(b.Pos)
		node.Body = combine(occupant, b)
		node.Children[qOcc] = &Node{Box: node.Box.Child(qOcc), Body: occupant}
		if qOcc != qNew {
			node.Children[qNew] = &Node{Box: node.Box.Child(qNew), Body: b}
			return
		}
		node = node.Children[qOcc]
		depth++
	}
}

// ForEachSource walks the tree from query point p and calls visit for every
// node accepted as a force source under the opening-angle criterion: a leaf
// is always accepted; a subdivided node is accepted when s/d < theta, where
// s is its box side and d the distance from p to its aggregate position.
// Nodes at zero distance from p are skipped. Smaller theta forces deeper
// descent; theta 0 degenerates into exact pairwise summation over leaves.
func (t *Tree) ForEachSource(p mgl32.Vec2, theta float32, visit func(Body)) {
	stack := []*Node{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Body.Mass == 0 {
			continue
		}
		d := math32.Hypot(node.Body.Pos.X()-p.X(), node.Body.Pos.Y()-p.Y())
		if d == 0 {
			continue
		}
		if !node.Subdivided() || node.Box.Length()/d < theta {
			visit(node.Body)
			continue
		}
		for _, c := range node.Children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
}

// ForEachNeighbor locates the leaf holding body id by descending toward pos,
// then calls visit for every other real body stored in the subtree rooted at
// the last subdivided node on that path. It is a local probe: only bodies
// sharing the same or an adjacent small cell are visited. No-op when id is
// not indexed at pos (e.g. the body was dropped at insert time).
func (t *Tree) ForEachNeighbor(id uint64, pos mgl32.Vec2, visit func(Body)) {
	parent := t.root
	node := t.root
	for node.Subdivided() {
		q := node.Box.Quadrant(pos)
		if node.Children[q] == nil {
			return
		}
		parent = node
		node = node.Children[q]
	}
	if node.Body.ID != id {
		return
	}

	stack := []*Node{parent}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.Subdivided() && n.Body.ID != 0 && n.Body.ID != id {
			visit(n.Body)
		}
		for _, c := range n.Children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
}
