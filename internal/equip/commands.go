package equip

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/rigforge/pkg/attach"
	"github.com/Faultbox/rigforge/pkg/scene"
)

// toggleCommand equips or unequips one slot. It holds the slot id and,
// for an unequip, a value snapshot of the offsets in effect, never the
// EquippedItem itself: the live instance may be discarded and rebuilt
// between execute and undo.
type toggleCommand struct {
	inv   *Inventory
	slot  SlotID
	equip bool

	restore *attach.Offsets
}

func (c *toggleCommand) Name() string {
	if c.equip {
		return fmt.Sprintf("equip %s", c.slot)
	}
	return fmt.Sprintf("unequip %s", c.slot)
}

func (c *toggleCommand) Execute() error {
	if c.equip {
		return c.inv.applyEquip(c.slot)
	}
	if eq := c.inv.equipped[c.slot]; eq != nil {
		off := eq.Offsets
		c.restore = &off
	}
	c.inv.applyUnequip(c.slot)
	return nil
}

func (c *toggleCommand) Undo() error {
	if c.equip {
		c.inv.applyUnequip(c.slot)
		return nil
	}
	// Re-equip restores the slot defaults; the snapshot then brings back
	// the offsets the user actually saw before the unequip.
	if err := c.inv.applyEquip(c.slot); err != nil {
		return err
	}
	if c.restore != nil {
		c.inv.applyOffsets(c.slot, *c.restore)
	}
	return nil
}

// offsetCommand changes a slot's offsets, holding before/after value
// copies. Replaying against a meanwhile-unequipped slot is a harmless
// no-op by design of applyOffsets.
type offsetCommand struct {
	inv    *Inventory
	slot   SlotID
	before attach.Offsets
	after  attach.Offsets
}

func (c *offsetCommand) Name() string {
	return fmt.Sprintf("adjust %s offsets", c.slot)
}

func (c *offsetCommand) Execute() error {
	c.inv.applyOffsets(c.slot, c.after)
	return nil
}

func (c *offsetCommand) Undo() error {
	c.inv.applyOffsets(c.slot, c.before)
	return nil
}

// transformState is a value snapshot of a node's local TRS.
type transformState struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// TransformCommand records a generic node transform change (e.g. from a
// gizmo drag) as before/after value snapshots.
type TransformCommand struct {
	node   *scene.Node
	label  string
	before transformState
	after  transformState
}

// NewTransformCommand snapshots the node's current transform as "before"
// and the given state as "after".
func NewTransformCommand(node *scene.Node, label string, position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) *TransformCommand {
	return &TransformCommand{
		node:   node,
		label:  label,
		before: transformState{node.Position, node.Rotation, node.Scale},
		after:  transformState{position, rotation, scale},
	}
}

// Name returns the command's display label.
func (c *TransformCommand) Name() string {
	return c.label
}

// Execute applies the after-state.
func (c *TransformCommand) Execute() error {
	c.apply(c.after)
	return nil
}

// Undo restores the before-state.
func (c *TransformCommand) Undo() error {
	c.apply(c.before)
	return nil
}

func (c *TransformCommand) apply(s transformState) {
	c.node.Position = s.Position
	c.node.Rotation = s.Rotation
	c.node.Scale = s.Scale
}
