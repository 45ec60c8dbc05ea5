package equip

import (
	"errors"
	"fmt"
)

// ErrInvalidSlot marks an unknown slot id. This is a programmer error;
// the UI boundary is expected to reject it before it reaches the core.
var ErrInvalidSlot = errors.New("equip: unknown slot")

// ErrSlotEmpty marks an internal command replay against a slot whose
// item was removed. Routine UI-driven empty-slot calls return false, not
// this error.
var ErrSlotEmpty = errors.New("equip: slot has no loaded item")

// BoneNotFoundError reports that a slot's target joint is absent from the
// loaded skeleton. It aborts only the one equip attempt that raised it.
type BoneNotFoundError struct {
	Slot  SlotID
	Joint string
}

// Error returns the single human-readable message surfaced to the user.
func (e *BoneNotFoundError) Error() string {
	return fmt.Sprintf("cannot equip %s: joint %q not found in skeleton", e.Slot, e.Joint)
}
