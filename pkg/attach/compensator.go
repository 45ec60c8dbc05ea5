// Package attach computes the local transform that makes an object
// parented under a skeleton joint render at a stable world-space size and
// offset. Joints in skinned rigs often carry small non-uniform accumulated
// scales (unit conversions baked in at export time); naive parenting under
// such a joint renders the object at the wrong size and makes offset
// sliders feel non-linear.
package attach

import "github.com/go-gl/mathgl/mgl64"

// Offsets is the user-tunable triple applied on top of compensation:
// desired world-space position, Euler XYZ rotation in radians, and a
// uniform scale multiplier.
type Offsets struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
}

// DefaultOffsets returns the neutral offsets (no displacement, no
// rotation, unit scale).
func DefaultOffsets() Offsets {
	return Offsets{Scale: 1}
}

// Transform is the computed parent-local TRS to apply to the attached
// object.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Compute derives the local transform for an object attached under a
// joint with the given accumulated world scale.
//
// Position is divided componentwise by the joint's world scale so the
// offset lands at the intended world distance. The object's own pre-attach
// scale is likewise divided by the joint's world scale, then multiplied by
// the user's uniform multiplier, so the object renders at a size
// independent of the joint's scale quirks. Rotation passes through
// uncompensated; skeleton scale is assumed non-shearing.
//
// Recomputation after an offsets change must pass the same jointWorldScale
// and objectOriginalScale captured at attach time, never the live object
// scale, or the compensation compounds on itself.
func Compute(jointWorldScale mgl64.Vec3, offsets Offsets, objectOriginalScale mgl64.Vec3) Transform {
	ws := sanitizeScale(jointWorldScale)
	return Transform{
		Position: mgl64.Vec3{
			offsets.Position.X() / ws.X(),
			offsets.Position.Y() / ws.Y(),
			offsets.Position.Z() / ws.Z(),
		},
		Rotation: mgl64.AnglesToQuat(offsets.Rotation.X(), offsets.Rotation.Y(), offsets.Rotation.Z(), mgl64.XYZ),
		Scale: mgl64.Vec3{
			objectOriginalScale.X() / ws.X() * offsets.Scale,
			objectOriginalScale.Y() / ws.Y() * offsets.Scale,
			objectOriginalScale.Z() / ws.Z() * offsets.Scale,
		},
	}
}

// sanitizeScale replaces zero components with 1 so a degenerate joint
// scale cannot produce Inf/NaN transforms.
func sanitizeScale(s mgl64.Vec3) mgl64.Vec3 {
	out := s
	for i := 0; i < 3; i++ {
		if out[i] == 0 {
			out[i] = 1
		}
	}
	return out
}
