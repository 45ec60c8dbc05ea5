// Package scene provides a minimal transform-node graph used as the
// in-process stand-in for the rendering engine's scene graph. Nodes carry
// local TRS transforms; joints are tagged nodes so bone lookups never
// confuse a mesh with a skeleton joint.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind tags what a node represents.
type Kind int

const (
	// KindNode is a plain transform/mesh node.
	KindNode Kind = iota
	// KindJoint is a skeleton joint usable as an attachment target.
	KindJoint
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindJoint {
		return "joint"
	}
	return "node"
}

// Node is one element of a transform hierarchy.
type Node struct {
	Name     string
	Kind     Kind
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Children []*Node

	parent *Node
}

// New creates a detached node with identity transform.
func New(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Attach parents child under n. A child already attached elsewhere is
// detached first; attaching keeps the child's local transform as-is.
func (n *Node) Attach(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.Children = append(n.Children, child)
}

// Detach removes n from its parent. Detaching a root is a no-op.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// WorldScale returns the componentwise product of the scales along the
// chain from the root down to n. Skinned rigs routinely bake small
// non-uniform scales into ancestor joints; attachment math needs the
// accumulated value, not the local one.
func (n *Node) WorldScale() mgl64.Vec3 {
	ws := mgl64.Vec3{1, 1, 1}
	for cur := n; cur != nil; cur = cur.parent {
		ws = mgl64.Vec3{
			ws.X() * cur.Scale.X(),
			ws.Y() * cur.Scale.Y(),
			ws.Z() * cur.Scale.Z(),
		}
	}
	return ws
}

// Walk visits n and every descendant in depth-first order. The visitor
// returning false prunes the subtree below that node.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Clone returns a detached deep copy of n and its whole subtree. The
// inventory equips clones so the loaded template stays pristine. The
// child->parent links make the tree cyclic, so cloning recurses over
// Children explicitly instead of handing the graph to a generic copier.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Name:     n.Name,
		Kind:     n.Kind,
		Position: n.Position,
		Rotation: n.Rotation,
		Scale:    n.Scale,
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			cc := c.Clone()
			cc.parent = out
			out.Children = append(out.Children, cc)
		}
	}
	return out
}

// Find returns the first node in the subtree with the given name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(cur *Node) bool {
		if found != nil {
			return false
		}
		if cur.Name == name {
			found = cur
			return false
		}
		return true
	})
	return found
}

// CountJoints returns how many joint-tagged nodes the subtree contains.
func (n *Node) CountJoints() int {
	count := 0
	n.Walk(func(cur *Node) bool {
		if cur.Kind == KindJoint {
			count++
		}
		return true
	})
	return count
}
