// Package skeleton flattens a character's joint hierarchy into a
// searchable arena. The index is a read-only view: topology is fixed after
// model load, so it is built once and queried by name matching, equipment
// attachment and rig mapping.
package skeleton

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/rigforge/pkg/scene"
)

// ErrNoSkeleton is returned when the loaded graph contains no joints.
var ErrNoSkeleton = errors.New("skeleton: no joints in graph")

// JointID indexes a joint inside an Index arena.
type JointID int

// NoJoint is the id used for a missing parent (roots) or failed lookups.
const NoJoint JointID = -1

// Joint is one flattened skeleton joint. Parent/Children are arena ids,
// not pointers, so the index can be copied and inspected freely.
type Joint struct {
	ID         JointID
	Name       string
	Parent     JointID
	Children   []JointID
	Node       *scene.Node
	WorldScale mgl64.Vec3
}

// IsRoot reports whether the joint has no joint-typed parent.
func (j Joint) IsRoot() bool {
	return j.Parent == NoJoint
}

// Index is the flattened joint arena for one loaded character.
type Index struct {
	joints []Joint
	byName map[string]JointID
}

// Build walks the scene graph and flattens every joint-tagged node into an
// arena, resolving parent/children links and accumulated world scale.
// Non-joint nodes may appear anywhere in the hierarchy; they contribute
// their scale to descendants but are not indexed.
func Build(root *scene.Node) (*Index, error) {
	if root == nil {
		return nil, ErrNoSkeleton
	}

	idx := &Index{byName: make(map[string]JointID)}
	idx.walk(root, NoJoint)
	if len(idx.joints) == 0 {
		return nil, ErrNoSkeleton
	}
	return idx, nil
}

func (x *Index) walk(n *scene.Node, parent JointID) {
	current := parent
	if n.Kind == scene.KindJoint {
		id := JointID(len(x.joints))
		x.joints = append(x.joints, Joint{
			ID:         id,
			Name:       n.Name,
			Parent:     parent,
			Node:       n,
			WorldScale: n.WorldScale(),
		})
		if _, dup := x.byName[n.Name]; !dup {
			x.byName[n.Name] = id
		}
		if parent != NoJoint {
			x.joints[parent].Children = append(x.joints[parent].Children, id)
		}
		current = id
	}
	for _, c := range n.Children {
		x.walk(c, current)
	}
}

// Len returns the number of indexed joints.
func (x *Index) Len() int {
	return len(x.joints)
}

// ListAll returns every joint in arena order. The slice is shared; callers
// must not mutate it.
func (x *Index) ListAll() []Joint {
	return x.joints
}

// Root returns the first joint with no joint-typed parent.
func (x *Index) Root() (Joint, error) {
	for _, j := range x.joints {
		if j.IsRoot() {
			return j, nil
		}
	}
	return Joint{}, ErrNoSkeleton
}

// Get returns the joint for an id.
func (x *Index) Get(id JointID) (Joint, bool) {
	if id < 0 || int(id) >= len(x.joints) {
		return Joint{}, false
	}
	return x.joints[id], true
}

// ByName returns the joint with the exact given name.
func (x *Index) ByName(name string) (Joint, bool) {
	id, ok := x.byName[name]
	if !ok {
		return Joint{}, false
	}
	return x.joints[id], true
}

// Names returns every joint name in arena order.
func (x *Index) Names() []string {
	names := make([]string, len(x.joints))
	for i, j := range x.joints {
		names[i] = j.Name
	}
	return names
}
