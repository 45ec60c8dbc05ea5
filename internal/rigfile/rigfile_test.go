package rigfile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/rigforge/pkg/scene"
)

const sampleRig = `
name: test-character
root:
  name: Armature
  scale: [0.01, 0.01, 0.01]
  children:
    - name: "mixamorig:Hips"
      joint: true
      position: [0, 100, 0]
      children:
        - name: "mixamorig:Spine"
          joint: true
        - name: "mixamorig:LeftUpLeg"
          joint: true
`

func TestParseRig(t *testing.T) {
	root, err := ParseRig([]byte(sampleRig))
	if err != nil {
		t.Fatalf("ParseRig: %v", err)
	}

	if root.Name != "Armature" {
		t.Errorf("root name = %q, want Armature", root.Name)
	}
	if root.Kind != scene.KindNode {
		t.Error("root should be a plain node, not a joint")
	}
	if root.Scale != (mgl64.Vec3{0.01, 0.01, 0.01}) {
		t.Errorf("root scale = %v", root.Scale)
	}

	hips := root.Find("mixamorig:Hips")
	if hips == nil {
		t.Fatal("hips joint missing")
	}
	if hips.Kind != scene.KindJoint {
		t.Error("hips should be a joint")
	}
	if hips.Position != (mgl64.Vec3{0, 100, 0}) {
		t.Errorf("hips position = %v", hips.Position)
	}
	if hips.Parent() != root {
		t.Error("hips should be parented to root")
	}

	if got := root.CountJoints(); got != 3 {
		t.Errorf("joint count = %d, want 3", got)
	}
}

func TestParseRigUnscaledDefaults(t *testing.T) {
	root, err := ParseRig([]byte("root:\n  name: Solo\n"))
	if err != nil {
		t.Fatalf("ParseRig: %v", err)
	}
	if root.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("omitted scale should load as identity, got %v", root.Scale)
	}
	if root.Rotation != mgl64.QuatIdent() {
		t.Errorf("omitted rotation should load as identity, got %v", root.Rotation)
	}
}

func TestParseRigRotationDegrees(t *testing.T) {
	root, err := ParseRig([]byte("root:\n  name: Tilted\n  rotation: [0, 90, 0]\n"))
	if err != nil {
		t.Fatalf("ParseRig: %v", err)
	}
	want := mgl64.AnglesToQuat(0, math.Pi/2, 0, mgl64.XYZ)
	got := root.Rotation
	if math.Abs(got.W-want.W) > 1e-12 ||
		math.Abs(got.V[0]-want.V[0]) > 1e-12 ||
		math.Abs(got.V[1]-want.V[1]) > 1e-12 ||
		math.Abs(got.V[2]-want.V[2]) > 1e-12 {
		t.Errorf("rotation = %v, want %v", got, want)
	}
}

func TestParseRigErrors(t *testing.T) {
	if _, err := ParseRig([]byte("root:\n  children: []\n")); err == nil {
		t.Error("expected error for rig without root name")
	}
	if _, err := ParseRig([]byte("root: [not a mapping")); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadRigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.yaml")
	if err := os.WriteFile(path, []byte(sampleRig), 0644); err != nil {
		t.Fatalf("writing rig file: %v", err)
	}

	root, err := LoadRig(path)
	if err != nil {
		t.Fatalf("LoadRig: %v", err)
	}
	if root.CountJoints() != 3 {
		t.Error("loaded rig lost joints")
	}

	if _, err := LoadRig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

const sampleEquip = `
items:
  - slot: weapon
    object:
      name: sword
      scale: [2, 2, 2]
    position: [0.1, 0, 0]
    rotation: [0, 0, 90]
    scale: 1.5
  - slot: helmet
    object:
      name: helm
`

func TestLoadEquip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equip.yaml")
	if err := os.WriteFile(path, []byte(sampleEquip), 0644); err != nil {
		t.Fatalf("writing equip file: %v", err)
	}

	ef, err := LoadEquip(path)
	if err != nil {
		t.Fatalf("LoadEquip: %v", err)
	}
	if len(ef.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(ef.Items))
	}

	sword := ef.Items[0]
	if sword.Slot != "weapon" {
		t.Errorf("slot = %q", sword.Slot)
	}
	obj := sword.BuildObject()
	if obj.Name != "sword" || obj.Scale != (mgl64.Vec3{2, 2, 2}) {
		t.Errorf("object = %q scale %v", obj.Name, obj.Scale)
	}

	off := sword.Offsets()
	if off.Position != (mgl64.Vec3{0.1, 0, 0}) {
		t.Errorf("offset position = %v", off.Position)
	}
	if math.Abs(off.Rotation[2]-math.Pi/2) > 1e-12 {
		t.Errorf("offset rotation z = %v, want pi/2", off.Rotation[2])
	}
	if off.Scale != 1.5 {
		t.Errorf("offset scale = %v, want 1.5", off.Scale)
	}

	// Second item: everything defaulted.
	helm := ef.Items[1].Offsets()
	if helm.Scale != 1.0 {
		t.Errorf("defaulted scale multiplier = %v, want 1", helm.Scale)
	}
}

func TestLoadEquipValidation(t *testing.T) {
	dir := t.TempDir()

	noSlot := filepath.Join(dir, "noslot.yaml")
	os.WriteFile(noSlot, []byte("items:\n  - object:\n      name: x\n"), 0644)
	if _, err := LoadEquip(noSlot); err == nil {
		t.Error("expected error for item without slot")
	}

	noObj := filepath.Join(dir, "noobj.yaml")
	os.WriteFile(noObj, []byte("items:\n  - slot: weapon\n"), 0644)
	if _, err := LoadEquip(noObj); err == nil {
		t.Error("expected error for item without object")
	}
}
