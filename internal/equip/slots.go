// Package equip owns loaded equipment items and the per-slot equip state
// machine. Equipping clones the loaded template, resolves the target joint
// through the bone matcher, compensates the transform for the joint's
// accumulated scale and parents the clone under the joint. All mutations
// that matter to the user go through the reversible-operation log.
package equip

import "github.com/Faultbox/rigforge/pkg/attach"

// SlotID names an attachment point category, independent of which joint
// it resolves to on a given skeleton.
type SlotID string

// Known slots.
const (
	SlotWeapon SlotID = "weapon"
	SlotShield SlotID = "shield"
	SlotHelmet SlotID = "helmet"
	SlotChest  SlotID = "chest"
	SlotLegs   SlotID = "legs"
	SlotBoots  SlotID = "boots"
	SlotBack   SlotID = "back"
)

// SlotDefinition is static per-slot configuration: which canonical joint
// to search for and the offsets applied on a fresh equip. The table is
// process-wide constant; it is never mutated at runtime.
type SlotDefinition struct {
	ID          SlotID         `yaml:"id"`
	DisplayName string         `yaml:"display_name"`
	TargetJoint string         `yaml:"target_joint"`
	Defaults    attach.Offsets `yaml:"defaults"`
}

// DefaultSlots is the built-in slot table. Chest and back deliberately
// share a target joint: equipped items are keyed by slot, not by joint.
func DefaultSlots() []SlotDefinition {
	return []SlotDefinition{
		{ID: SlotWeapon, DisplayName: "Weapon", TargetJoint: "RightHand", Defaults: attach.DefaultOffsets()},
		{ID: SlotShield, DisplayName: "Shield", TargetJoint: "LeftHand", Defaults: attach.DefaultOffsets()},
		{ID: SlotHelmet, DisplayName: "Helmet", TargetJoint: "Head", Defaults: attach.DefaultOffsets()},
		{ID: SlotChest, DisplayName: "Chest Armor", TargetJoint: "Spine2", Defaults: attach.DefaultOffsets()},
		{ID: SlotLegs, DisplayName: "Leg Armor", TargetJoint: "Hips", Defaults: attach.DefaultOffsets()},
		{ID: SlotBoots, DisplayName: "Boots", TargetJoint: "RightFoot", Defaults: attach.DefaultOffsets()},
		{ID: SlotBack, DisplayName: "Back", TargetJoint: "Spine2", Defaults: attach.DefaultOffsets()},
	}
}
