package rigmap

import (
	"sort"
	"strings"
	"testing"

	"github.com/Faultbox/rigforge/pkg/bonematch"
	"github.com/Faultbox/rigforge/pkg/scene"
	"github.com/Faultbox/rigforge/pkg/skeleton"
)

// buildIndex flattens a linear chain of joints with the given names.
func buildIndex(t *testing.T, names ...string) *skeleton.Index {
	t.Helper()
	root := scene.New("Armature", scene.KindNode)
	parent := root
	for _, n := range names {
		j := scene.New(n, scene.KindJoint)
		parent.Attach(j)
		parent = j
	}
	idx, err := skeleton.Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func TestBuild_MixamoScenario(t *testing.T) {
	idx := buildIndex(t, "mixamorig:Hips", "mixamorig:RightHand")
	canonical := []string{"Hips", "RightHand", "LeftHand"}

	m := Build(idx, canonical, bonematch.NewMatcher())

	hips, ok := m.Entries["mixamorig:Hips"]
	if !ok || hips.Canonical != "Hips" || hips.Score != 100 {
		t.Errorf("Hips entry = %+v, ok=%v; want canonical Hips score 100", hips, ok)
	}
	hand, ok := m.Entries["mixamorig:RightHand"]
	if !ok || hand.Canonical != "RightHand" || hand.Score != 100 {
		t.Errorf("RightHand entry = %+v, ok=%v; want canonical RightHand score 100", hand, ok)
	}
	if len(m.UnmatchedCanonical) != 1 || m.UnmatchedCanonical[0] != "LeftHand" {
		t.Errorf("unmatched canonical = %v, want [LeftHand]", m.UnmatchedCanonical)
	}
	if len(m.UnmatchedSourceJoints) != 0 {
		t.Errorf("unmatched source = %v, want empty", m.UnmatchedSourceJoints)
	}
}

func TestBuild_NoMatches(t *testing.T) {
	idx := buildIndex(t, "rotor_a", "rotor_b")
	canonical := []string{"Hips", "Head"}

	m := Build(idx, canonical, bonematch.NewMatcher())
	if len(m.Entries) != 0 {
		t.Errorf("entries = %v, want empty", m.Entries)
	}
	want := append([]string(nil), canonical...)
	sort.Strings(want)
	if len(m.UnmatchedCanonical) != len(want) {
		t.Fatalf("unmatched canonical = %v, want %v", m.UnmatchedCanonical, want)
	}
	for i := range want {
		if m.UnmatchedCanonical[i] != want[i] {
			t.Errorf("unmatched[%d] = %q, want %q", i, m.UnmatchedCanonical[i], want[i])
		}
	}
	if len(m.UnmatchedSourceJoints) != 2 {
		t.Errorf("unmatched source = %v, want both joints", m.UnmatchedSourceJoints)
	}
}

func TestBuild_HigherScoreKeepsContestedJoint(t *testing.T) {
	// "Spine" (substring, 85) and "Spine1" (identity, 100) both resolve
	// to the same joint; the identity claim must win.
	idx := buildIndex(t, "Spine1Extra")
	m := Build(idx, []string{"Spine1", "Spine1Extra"}, bonematch.NewMatcher())

	e, ok := m.Entries["Spine1Extra"]
	if !ok {
		t.Fatal("joint should be mapped")
	}
	if e.Canonical != "Spine1Extra" || e.Score != 100 {
		t.Errorf("entry = %+v, want identity claim Spine1Extra/100", e)
	}
	if len(m.UnmatchedCanonical) != 1 || m.UnmatchedCanonical[0] != "Spine1" {
		t.Errorf("unmatched canonical = %v, want [Spine1]", m.UnmatchedCanonical)
	}
}

func TestDetectPreset(t *testing.T) {
	idx := buildIndex(t,
		"mixamorig:Hips", "mixamorig:Spine", "mixamorig:Spine2",
		"mixamorig:LeftHand", "mixamorig:RightHand")

	p, frac, ok := DetectPreset(idx, BuiltinPresets)
	if !ok {
		t.Fatal("mixamo preset should be detected")
	}
	if p.Name != "mixamo" {
		t.Errorf("preset = %q, want mixamo", p.Name)
	}
	if frac != 1.0 {
		t.Errorf("fraction = %v, want 1.0", frac)
	}
	if _, hasCorr := p.Corrections["mixamorig:Hips"]; !hasCorr {
		t.Error("detected preset should carry its correction table")
	}
}

func TestDetectPreset_ResultIsIsolated(t *testing.T) {
	idx := buildIndex(t,
		"mixamorig:Hips", "mixamorig:Spine", "mixamorig:Spine2",
		"mixamorig:LeftHand", "mixamorig:RightHand")

	p, _, ok := DetectPreset(idx, BuiltinPresets)
	if !ok {
		t.Fatal("mixamo preset should be detected")
	}

	// Editing the detected preset must not bleed into the builtin table.
	p.Corrections["mixamorig:Hips"] = Correction{Scale: 42}
	p.Signature[0] = "tampered"

	orig := BuiltinPresets[0]
	if orig.Corrections["mixamorig:Hips"].Scale != 0.01 {
		t.Error("builtin correction mutated through detection result")
	}
	if orig.Signature[0] != "mixamorig:Hips" {
		t.Error("builtin signature mutated through detection result")
	}
}

func TestDetectPreset_BelowThreshold(t *testing.T) {
	// Only 3 of 5 signature joints present: 60% < 80%.
	idx := buildIndex(t, "mixamorig:Hips", "mixamorig:Spine", "mixamorig:Spine2")
	if _, _, ok := DetectPreset(idx, BuiltinPresets); ok {
		t.Error("preset should not be detected below the signature threshold")
	}
}

func TestDetectPreset_NamespaceIsDistinctive(t *testing.T) {
	// A bare-named rig must not pass for a Mixamo export.
	idx := buildIndex(t, "Hips", "Spine", "Spine2", "LeftHand", "RightHand")
	if _, _, ok := DetectPreset(idx, BuiltinPresets); ok {
		t.Error("un-namespaced rig should not detect as mixamo")
	}
}

func TestGenerateCode(t *testing.T) {
	idx := buildIndex(t, "mixamorig:Hips", "mixamorig:RightHand")
	m := Build(idx, []string{"Hips", "RightHand", "LeftHand"}, bonematch.NewMatcher())

	code := GenerateCode(m)
	for _, want := range []string{
		"boneMap = {",
		`["mixamorig:Hips"] = "Hips", -- score 100 (high)`,
		`["mixamorig:RightHand"] = "RightHand", -- score 100 (high)`,
		"-- unmatched canonical: LeftHand",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code missing %q:\n%s", want, code)
		}
	}
	// Deterministic ordering: Hips line before RightHand line.
	if strings.Index(code, "mixamorig:Hips") > strings.Index(code, "mixamorig:RightHand") {
		t.Error("mapped pairs should be sorted by source name")
	}
}
