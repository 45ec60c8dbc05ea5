// Package rigmap maps a loaded skeleton onto a canonical rig naming
// convention. It drives the bulk bone matcher over every canonical name,
// reports unmatched joints on both sides for diagnostics, detects known
// rig presets by signature joints, and renders the result as declarative
// text for external retargeting tools.
package rigmap

import (
	"sort"

	"github.com/Faultbox/rigforge/pkg/bonematch"
	"github.com/Faultbox/rigforge/pkg/skeleton"
)

// Entry is one mapped pair: a source joint resolved to a canonical name.
type Entry struct {
	Canonical string
	Score     int
	Tier      bonematch.Tier
}

// Mapping is a full skeleton-to-canonical-rig table plus the derived
// diagnostic sets.
type Mapping struct {
	// Entries keys are source joint names as they appear in the skeleton.
	Entries map[string]Entry
	// UnmatchedSourceJoints are skeleton joints no canonical name claimed.
	UnmatchedSourceJoints []string
	// UnmatchedCanonical are canonical names with no match in the skeleton.
	UnmatchedCanonical []string
}

// CanonicalJoints is the default canonical rig: the Mixamo-style humanoid
// naming convention without its namespace tag.
var CanonicalJoints = []string{
	"Hips",
	"Spine",
	"Spine1",
	"Spine2",
	"Neck",
	"Head",
	"LeftShoulder",
	"LeftArm",
	"LeftForeArm",
	"LeftHand",
	"RightShoulder",
	"RightArm",
	"RightForeArm",
	"RightHand",
	"LeftUpLeg",
	"LeftLeg",
	"LeftFoot",
	"LeftToeBase",
	"RightUpLeg",
	"RightLeg",
	"RightFoot",
	"RightToeBase",
}

// Build runs the bulk matcher for every canonical name against every
// joint in the index and keeps the best score per canonical name. When
// two canonical names claim the same source joint, the higher score wins.
func Build(idx *skeleton.Index, canonical []string, m *bonematch.Matcher) Mapping {
	out := Mapping{Entries: make(map[string]Entry)}
	joints := idx.ListAll()

	for _, name := range canonical {
		best := m.Match(name, joints)
		if best == nil {
			out.UnmatchedCanonical = append(out.UnmatchedCanonical, name)
			continue
		}
		src := best.Joint.Name
		if prev, taken := out.Entries[src]; taken && prev.Score >= best.Score {
			out.UnmatchedCanonical = append(out.UnmatchedCanonical, name)
			continue
		} else if taken {
			out.UnmatchedCanonical = append(out.UnmatchedCanonical, prev.Canonical)
		}
		out.Entries[src] = Entry{Canonical: name, Score: best.Score, Tier: best.Tier}
	}

	for _, j := range joints {
		if _, mapped := out.Entries[j.Name]; !mapped {
			out.UnmatchedSourceJoints = append(out.UnmatchedSourceJoints, j.Name)
		}
	}
	sort.Strings(out.UnmatchedCanonical)
	return out
}

// NameTable flattens the mapping to a plain source->canonical table, the
// shape the preset store persists.
func (m Mapping) NameTable() map[string]string {
	out := make(map[string]string, len(m.Entries))
	for src, e := range m.Entries {
		out[src] = e.Canonical
	}
	return out
}

// SortedSources returns the mapped source joint names in sorted order for
// deterministic output.
func (m Mapping) SortedSources() []string {
	out := make([]string, 0, len(m.Entries))
	for src := range m.Entries {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}
