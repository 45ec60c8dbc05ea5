package rigmap

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tiendc/go-deepcopy"

	"github.com/Faultbox/rigforge/pkg/skeleton"
)

// Correction is an author-supplied per-joint fixup bundled with a preset:
// Euler XYZ radians and a uniform scale factor applied by retargeting
// consumers.
type Correction struct {
	Rotation mgl64.Vec3 `yaml:"rotation"`
	Scale    float64    `yaml:"scale"`
}

// Preset describes one known rig family. Signature joints are a small
// distinctive subset; a skeleton containing enough of them is assumed to
// belong to the family.
type Preset struct {
	Name string `yaml:"name"`
	// Signature joints are compared by case-insensitive raw name. The
	// namespace tag is the distinctive part of most presets, so the
	// matcher's namespace-stripping normalization is deliberately not
	// used here.
	Signature   []string              `yaml:"signature"`
	Corrections map[string]Correction `yaml:"corrections,omitempty"`
}

// signatureThreshold is the fraction of signature joints that must be
// present for a preset to be detected.
const signatureThreshold = 0.8

// BuiltinPresets are the rig families shipped with the tool, in detection
// priority order.
var BuiltinPresets = []Preset{
	{
		Name: "mixamo",
		Signature: []string{
			"mixamorig:Hips",
			"mixamorig:Spine",
			"mixamorig:Spine2",
			"mixamorig:LeftHand",
			"mixamorig:RightHand",
		},
		Corrections: map[string]Correction{
			"mixamorig:Hips": {Scale: 0.01},
		},
	},
	{
		Name: "biped",
		Signature: []string{
			"Bip01 Pelvis",
			"Bip01 Spine",
			"Bip01 L Hand",
			"Bip01 R Hand",
			"Bip01 Head",
		},
	},
}

// DetectPreset returns the first preset in table order whose signature is
// sufficiently present in the skeleton, together with the presence
// fraction. Returns false when no preset clears the threshold.
func DetectPreset(idx *skeleton.Index, presets []Preset) (Preset, float64, bool) {
	names := idx.Names()
	for _, p := range presets {
		if len(p.Signature) == 0 {
			continue
		}
		hits := 0
		for _, sig := range p.Signature {
			if containsFold(names, sig) {
				hits++
			}
		}
		frac := float64(hits) / float64(len(p.Signature))
		if frac >= signatureThreshold {
			return p.Clone(), frac, true
		}
	}
	return Preset{}, 0, false
}

// Clone returns an independent copy of the preset. Detection hands the
// table entry to callers that may edit corrections; without a deep copy
// those edits would bleed into BuiltinPresets through the shared maps.
func (p Preset) Clone() Preset {
	var out Preset
	if err := deepcopy.Copy(&out, &p); err != nil {
		return p
	}
	return out
}

func containsFold(names []string, want string) bool {
	for _, n := range names {
		if strings.EqualFold(n, want) {
			return true
		}
	}
	return false
}
