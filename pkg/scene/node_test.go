package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAttachDetach(t *testing.T) {
	root := New("root", KindNode)
	child := New("child", KindNode)

	root.Attach(child)
	if child.Parent() != root {
		t.Fatal("child should be parented under root")
	}
	if len(root.Children) != 1 {
		t.Fatalf("root should have 1 child, got %d", len(root.Children))
	}

	// Re-attaching under another node moves it.
	other := New("other", KindNode)
	other.Attach(child)
	if child.Parent() != other {
		t.Error("child should have moved to other")
	}
	if len(root.Children) != 0 {
		t.Errorf("root should have 0 children after move, got %d", len(root.Children))
	}

	child.Detach()
	if child.Parent() != nil {
		t.Error("detached child should have nil parent")
	}
}

func TestWorldScale_Accumulates(t *testing.T) {
	root := New("root", KindNode)
	root.Scale = mgl64.Vec3{2, 2, 2}
	mid := New("mid", KindJoint)
	mid.Scale = mgl64.Vec3{0.5, 1, 4}
	leaf := New("leaf", KindJoint)
	leaf.Scale = mgl64.Vec3{3, 3, 3}

	root.Attach(mid)
	mid.Attach(leaf)

	ws := leaf.WorldScale()
	want := mgl64.Vec3{3, 6, 24}
	if !ws.ApproxEqual(want) {
		t.Errorf("world scale = %v, want %v", ws, want)
	}
}

func TestClone_DetachedAndIndependent(t *testing.T) {
	root := New("sword", KindNode)
	root.Scale = mgl64.Vec3{1, 2, 3}
	blade := New("blade", KindNode)
	root.Attach(blade)

	holder := New("holder", KindNode)
	holder.Attach(root)

	clone := root.Clone()
	if clone.Parent() != nil {
		t.Error("clone should be detached")
	}
	if len(clone.Children) != 1 || clone.Children[0].Name != "blade" {
		t.Fatal("clone should carry the subtree")
	}
	if clone.Children[0].Parent() != clone {
		t.Error("clone subtree parent pointers should lead to the clone")
	}

	// Mutating the clone must not touch the original.
	clone.Scale = mgl64.Vec3{9, 9, 9}
	clone.Children[0].Name = "edited"
	if root.Scale != (mgl64.Vec3{1, 2, 3}) {
		t.Error("original scale mutated through clone")
	}
	if root.Children[0].Name != "blade" {
		t.Error("original child mutated through clone")
	}
}

func TestClone_DeepHierarchy(t *testing.T) {
	root := New("armor", KindNode)
	plate := New("plate", KindNode)
	strap := New("strap", KindNode)
	buckle := New("buckle", KindNode)
	root.Attach(plate)
	plate.Attach(strap)
	strap.Attach(buckle)

	clone := root.Clone()

	got := clone.Find("buckle")
	if got == nil {
		t.Fatal("clone should carry the full depth of the subtree")
	}
	if got == buckle {
		t.Fatal("clone shares a node with the original")
	}
	if got.Parent() == nil || got.Parent().Parent() == nil || got.Parent().Parent().Parent() != clone {
		t.Error("parent chain should lead back to the clone root")
	}

	// A cloned instance re-attaches without disturbing the original tree.
	joint := New("hand", KindJoint)
	joint.Attach(clone)
	if root.Parent() != nil {
		t.Error("original template should stay detached")
	}
}

func TestFindAndCountJoints(t *testing.T) {
	root := New("Armature", KindNode)
	hips := New("Hips", KindJoint)
	spine := New("Spine", KindJoint)
	mesh := New("Body", KindNode)
	root.Attach(hips)
	hips.Attach(spine)
	root.Attach(mesh)

	if got := root.Find("Spine"); got != spine {
		t.Error("Find should locate nested joint")
	}
	if got := root.Find("nope"); got != nil {
		t.Error("Find of missing name should return nil")
	}
	if got := root.CountJoints(); got != 2 {
		t.Errorf("CountJoints = %d, want 2", got)
	}
}
