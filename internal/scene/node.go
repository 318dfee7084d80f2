// Package scene is a minimal transform hierarchy: nodes with a local
// position and orientation, parented to other nodes. It carries no geometry;
// the puzzle model and the renderer only need world transforms and
// re-parenting.
package scene

import "github.com/SeamusWaldron/cubie/internal/quat"

// Node is an element of the scene graph.
type Node struct {
	Name        string
	Position    quat.Vec3 // relative to parent
	Orientation quat.Quat // relative to parent

	parent   *Node
	children []*Node
}

// NewNode creates a detached node at the origin with identity orientation.
func NewNode(name string) *Node {
	return &Node{Name: name, Orientation: quat.Identity()}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list, so callers may re-parent while
// iterating.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add makes child a child of n, keeping its local transform. The child is
// removed from its previous parent first.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It is a no-op if child is not a child of n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Attach re-parents child under n while preserving its world transform.
func (n *Node) Attach(child *Node) {
	wp := child.WorldPosition()
	wo := child.WorldOrientation()

	n.Add(child)

	inv := n.WorldOrientation().Conjugate()
	child.Orientation = inv.Mul(wo).Normalize()
	child.Position = inv.Rotate(wp.Sub(n.WorldPosition()))
}

// WorldOrientation returns the orientation of n in world space.
func (n *Node) WorldOrientation() quat.Quat {
	if n.parent == nil {
		return n.Orientation
	}
	return n.parent.WorldOrientation().Mul(n.Orientation)
}

// WorldPosition returns the position of n in world space.
func (n *Node) WorldPosition() quat.Vec3 {
	if n.parent == nil {
		return n.Position
	}
	return n.parent.WorldPosition().Add(n.parent.WorldOrientation().Rotate(n.Position))
}

// ToLocal converts a world-space point into n's local frame.
func (n *Node) ToLocal(p quat.Vec3) quat.Vec3 {
	return n.WorldOrientation().Conjugate().Rotate(p.Sub(n.WorldPosition()))
}
