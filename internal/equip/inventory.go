package equip

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/rigforge/internal/history"
	"github.com/Faultbox/rigforge/pkg/attach"
	"github.com/Faultbox/rigforge/pkg/bonematch"
	"github.com/Faultbox/rigforge/pkg/scene"
	"github.com/Faultbox/rigforge/pkg/skeleton"
)

// Item is one loaded asset occupying a slot. The template graph is never
// rendered or parented directly; equips operate on clones so the template
// stays pristine for re-equip.
type Item struct {
	ID         uuid.UUID
	Slot       SlotID
	Template   *scene.Node
	SourceFile string

	equipped bool
}

// IsEquipped reports whether a live instance of this item is attached.
func (i *Item) IsEquipped() bool {
	return i.equipped
}

// EquippedItem is the live attached instance for one slot. The joint
// world scale and the object's pre-attach scale are captured exactly once
// here, at attach time; offset recomputation reuses them so compensation
// never compounds on itself.
type EquippedItem struct {
	Slot    SlotID
	Joint   skeleton.Joint
	Object  *scene.Node
	Offsets attach.Offsets

	boneWorldScale mgl64.Vec3
	originalScale  mgl64.Vec3
}

// Inventory is the per-character equipment state: one optional item per
// slot, one optional equipped instance per slot. Single-threaded by
// contract; it lives exactly as long as one loaded character.
type Inventory struct {
	defs  map[SlotID]SlotDefinition
	order []SlotID

	items    map[SlotID]*Item
	equipped map[SlotID]*EquippedItem

	idx     *skeleton.Index
	matcher *bonematch.Matcher
	hist    *history.Log
	log     *zap.Logger
}

// New creates an inventory over a built skeleton index. A nil slot table
// installs DefaultSlots.
func New(idx *skeleton.Index, matcher *bonematch.Matcher, hist *history.Log, logger *zap.Logger, slots []SlotDefinition) *Inventory {
	if matcher == nil {
		matcher = bonematch.NewMatcher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if slots == nil {
		slots = DefaultSlots()
	}
	inv := &Inventory{
		defs:     make(map[SlotID]SlotDefinition, len(slots)),
		items:    make(map[SlotID]*Item),
		equipped: make(map[SlotID]*EquippedItem),
		idx:      idx,
		matcher:  matcher,
		hist:     hist,
		log:      logger,
	}
	for _, def := range slots {
		inv.defs[def.ID] = def
		inv.order = append(inv.order, def.ID)
	}
	return inv
}

// Slots returns the slot ids in table order.
func (inv *Inventory) Slots() []SlotID {
	return inv.order
}

// Definition returns the static configuration for a slot.
func (inv *Inventory) Definition(slot SlotID) (SlotDefinition, bool) {
	def, ok := inv.defs[slot]
	return def, ok
}

// ItemIn returns the loaded item for a slot, or nil.
func (inv *Inventory) ItemIn(slot SlotID) *Item {
	return inv.items[slot]
}

// EquippedIn returns the live equipped instance for a slot, or nil.
func (inv *Inventory) EquippedIn(slot SlotID) *EquippedItem {
	return inv.equipped[slot]
}

// LoadIntoSlot stores a template in a slot, replacing any existing item.
// A replaced item that is equipped is unequipped first. The slot is
// always Loaded afterwards.
func (inv *Inventory) LoadIntoSlot(slot SlotID, template *scene.Node, fileName string) (*Item, error) {
	if _, ok := inv.defs[slot]; !ok {
		return nil, ErrInvalidSlot
	}
	if old := inv.items[slot]; old != nil && old.equipped {
		inv.applyUnequip(slot)
	}
	item := &Item{
		ID:         uuid.New(),
		Slot:       slot,
		Template:   template,
		SourceFile: fileName,
	}
	inv.items[slot] = item
	inv.log.Info("item loaded",
		zap.String("slot", string(slot)),
		zap.String("file", fileName),
		zap.String("id", item.ID.String()))
	return item, nil
}

// Remove empties a slot, implicitly unequipping first. Returns false for
// an already-empty slot.
func (inv *Inventory) Remove(slot SlotID) bool {
	item := inv.items[slot]
	if item == nil {
		return false
	}
	if item.equipped {
		inv.applyUnequip(slot)
	}
	delete(inv.items, slot)
	return true
}

// Equip attaches the slot's item to its target joint, recording a
// reversible command. Returns (false, nil) for an empty slot; a
// *BoneNotFoundError aborts only this slot and leaves it Loaded.
func (inv *Inventory) Equip(slot SlotID) (bool, error) {
	if _, ok := inv.defs[slot]; !ok {
		return false, ErrInvalidSlot
	}
	if inv.items[slot] == nil {
		return false, nil
	}
	cmd := &toggleCommand{inv: inv, slot: slot, equip: true}
	if err := inv.hist.Execute(cmd); err != nil {
		return false, err
	}
	return true, nil
}

// Unequip detaches and discards the slot's live instance; the loaded
// template is unaffected. Returns false when nothing is equipped.
func (inv *Inventory) Unequip(slot SlotID) bool {
	if inv.equipped[slot] == nil {
		return false
	}
	cmd := &toggleCommand{inv: inv, slot: slot, equip: false}
	if err := inv.hist.Execute(cmd); err != nil {
		inv.log.Warn("unequip failed", zap.String("slot", string(slot)), zap.Error(err))
		return false
	}
	return true
}

// UpdateOffsets recomputes and re-applies the attach transform with new
// offsets, through the log. No-op returning false when the slot is not
// equipped. Callers debounce: one call per logical user gesture.
func (inv *Inventory) UpdateOffsets(slot SlotID, offsets attach.Offsets) bool {
	eq := inv.equipped[slot]
	if eq == nil {
		return false
	}
	cmd := &offsetCommand{inv: inv, slot: slot, before: eq.Offsets, after: offsets}
	if err := inv.hist.Execute(cmd); err != nil {
		inv.log.Warn("offset update failed", zap.String("slot", string(slot)), zap.Error(err))
		return false
	}
	return true
}

// EquipAll equips every loaded, currently-unequipped slot. Slots whose
// target joint is missing are skipped and reported; the rest proceed.
func (inv *Inventory) EquipAll() (int, error) {
	count := 0
	var errs []error
	for _, slot := range inv.order {
		item := inv.items[slot]
		if item == nil || item.equipped {
			continue
		}
		ok, err := inv.Equip(slot)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			count++
		}
	}
	return count, errors.Join(errs...)
}

// UnequipAll unconditionally clears every equipped slot and returns how
// many were cleared.
func (inv *Inventory) UnequipAll() int {
	count := 0
	for _, slot := range inv.order {
		if inv.equipped[slot] == nil {
			continue
		}
		if inv.Unequip(slot) {
			count++
		}
	}
	return count
}

// Reset tears the session down for a model reload: every equipped
// instance is detached, all items dropped and the operation log cleared.
// No partial-reload state may leak into the next character.
func (inv *Inventory) Reset() {
	for _, slot := range inv.order {
		if inv.equipped[slot] != nil {
			inv.applyUnequip(slot)
		}
	}
	inv.items = make(map[SlotID]*Item)
	if inv.hist != nil {
		inv.hist.Clear()
	}
}

// applyEquip performs the actual attach. Called from commands only.
func (inv *Inventory) applyEquip(slot SlotID) error {
	def := inv.defs[slot]
	item := inv.items[slot]
	if item == nil {
		return ErrSlotEmpty
	}
	if inv.equipped[slot] != nil {
		inv.applyUnequip(slot)
	}

	match := inv.matcher.Lookup(def.TargetJoint, inv.idx.ListAll())
	if match == nil {
		return &BoneNotFoundError{Slot: slot, Joint: def.TargetJoint}
	}
	if match.Ties > 0 {
		inv.log.Warn("ambiguous joint lookup",
			zap.String("slot", string(slot)),
			zap.String("target", def.TargetJoint),
			zap.String("chosen", match.Joint.Name),
			zap.Int("ties", match.Ties))
	}

	clone := item.Template.Clone()
	originalScale := clone.Scale
	tr := attach.Compute(match.Joint.WorldScale, def.Defaults, originalScale)
	clone.Position = tr.Position
	clone.Rotation = tr.Rotation
	clone.Scale = tr.Scale
	match.Joint.Node.Attach(clone)

	inv.equipped[slot] = &EquippedItem{
		Slot:           slot,
		Joint:          match.Joint,
		Object:         clone,
		Offsets:        def.Defaults,
		boneWorldScale: match.Joint.WorldScale,
		originalScale:  originalScale,
	}
	item.equipped = true
	inv.log.Info("equipped",
		zap.String("slot", string(slot)),
		zap.String("joint", match.Joint.Name),
		zap.Int("score", match.Score))
	return nil
}

// applyUnequip detaches and discards the live instance. Called from
// commands and from replace/remove/reset paths.
func (inv *Inventory) applyUnequip(slot SlotID) {
	eq := inv.equipped[slot]
	if eq == nil {
		return
	}
	eq.Object.Detach()
	delete(inv.equipped, slot)
	if item := inv.items[slot]; item != nil {
		item.equipped = false
	}
	inv.log.Info("unequipped", zap.String("slot", string(slot)))
}

// applyOffsets recomputes the attach transform from the attach-time
// cached scales and persists the new offsets. No-op when not equipped.
func (inv *Inventory) applyOffsets(slot SlotID, offsets attach.Offsets) {
	eq := inv.equipped[slot]
	if eq == nil {
		return
	}
	tr := attach.Compute(eq.boneWorldScale, offsets, eq.originalScale)
	eq.Object.Position = tr.Position
	eq.Object.Rotation = tr.Rotation
	eq.Object.Scale = tr.Scale
	eq.Offsets = offsets
}
