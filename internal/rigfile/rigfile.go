// Package rigfile loads rig and equipment descriptors from YAML files.
// Descriptors are a test and CLI stand-in for real model importers: they
// describe the same node graphs a glTF or FBX loader would produce.
package rigfile

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/rigforge/pkg/attach"
	"github.com/Faultbox/rigforge/pkg/scene"
)

// NodeSpec is one node in a rig descriptor. Rotation is Euler XYZ in
// degrees; a zero scale means "unscaled" and loads as (1,1,1).
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Joint    bool       `yaml:"joint,omitempty"`
	Position [3]float64 `yaml:"position,omitempty"`
	Rotation [3]float64 `yaml:"rotation,omitempty"`
	Scale    [3]float64 `yaml:"scale,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`
}

// RigFile is a complete rig descriptor.
type RigFile struct {
	Name string   `yaml:"name,omitempty"`
	Root NodeSpec `yaml:"root"`
}

// LoadRig reads and builds the node graph from a rig descriptor file.
func LoadRig(path string) (*scene.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rig file: %w", err)
	}
	return ParseRig(data)
}

// ParseRig builds the node graph from rig descriptor bytes.
func ParseRig(data []byte) (*scene.Node, error) {
	var rf RigFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rig file: %w", err)
	}
	if rf.Root.Name == "" {
		return nil, fmt.Errorf("rig file has no root node")
	}
	return buildNode(rf.Root), nil
}

func buildNode(spec NodeSpec) *scene.Node {
	kind := scene.KindNode
	if spec.Joint {
		kind = scene.KindJoint
	}
	n := scene.New(spec.Name, kind)
	n.Position = mgl64.Vec3{spec.Position[0], spec.Position[1], spec.Position[2]}
	n.Rotation = eulerDegToQuat(spec.Rotation)
	if s := (mgl64.Vec3{spec.Scale[0], spec.Scale[1], spec.Scale[2]}); s != (mgl64.Vec3{}) {
		n.Scale = s
	}
	for _, c := range spec.Children {
		n.Attach(buildNode(c))
	}
	return n
}

// ItemSpec is one equipment entry: which slot it fills, its object
// graph, and optional offset overrides applied after equipping.
type ItemSpec struct {
	Slot     string     `yaml:"slot"`
	Object   NodeSpec   `yaml:"object"`
	Position [3]float64 `yaml:"position,omitempty"`
	Rotation [3]float64 `yaml:"rotation,omitempty"`
	Scale    float64    `yaml:"scale,omitempty"`
}

// EquipFile is a complete equipment descriptor.
type EquipFile struct {
	Items []ItemSpec `yaml:"items"`
}

// LoadEquip reads an equipment descriptor file.
func LoadEquip(path string) (*EquipFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading equip file: %w", err)
	}
	var ef EquipFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("parsing equip file: %w", err)
	}
	for i, item := range ef.Items {
		if item.Slot == "" {
			return nil, fmt.Errorf("equip item %d has no slot", i)
		}
		if item.Object.Name == "" {
			return nil, fmt.Errorf("equip item %d (%s) has no object", i, item.Slot)
		}
	}
	return &ef, nil
}

// BuildObject constructs the item's object graph.
func (i ItemSpec) BuildObject() *scene.Node {
	return buildNode(i.Object)
}

// Offsets converts the item's overrides into attachment offsets. Items
// without an explicit scale multiplier keep the neutral 1.0.
func (i ItemSpec) Offsets() attach.Offsets {
	off := attach.DefaultOffsets()
	off.Position = mgl64.Vec3{i.Position[0], i.Position[1], i.Position[2]}
	off.Rotation = mgl64.Vec3{
		mgl64.DegToRad(i.Rotation[0]),
		mgl64.DegToRad(i.Rotation[1]),
		mgl64.DegToRad(i.Rotation[2]),
	}
	if i.Scale != 0 {
		off.Scale = i.Scale
	}
	return off
}

func eulerDegToQuat(deg [3]float64) mgl64.Quat {
	if deg == ([3]float64{}) {
		return mgl64.QuatIdent()
	}
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(deg[0]),
		mgl64.DegToRad(deg[1]),
		mgl64.DegToRad(deg[2]),
		mgl64.XYZ,
	)
}
