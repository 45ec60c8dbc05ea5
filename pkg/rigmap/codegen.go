package rigmap

import (
	"fmt"
	"strings"
)

// GenerateCode renders the mapping as a declarative table literal, one
// line per mapped pair annotated with score and confidence, suitable for
// pasting into an animation-retargeting tool. Pure formatting; there is
// no parser on the other side of this contract.
func GenerateCode(m Mapping) string {
	var b strings.Builder
	b.WriteString("boneMap = {\n")
	for _, src := range m.SortedSources() {
		e := m.Entries[src]
		fmt.Fprintf(&b, "  [%q] = %q, -- score %d (%s)\n", src, e.Canonical, e.Score, e.Tier)
	}
	b.WriteString("}\n")

	if len(m.UnmatchedCanonical) > 0 {
		fmt.Fprintf(&b, "-- unmatched canonical: %s\n", strings.Join(m.UnmatchedCanonical, ", "))
	}
	if len(m.UnmatchedSourceJoints) > 0 {
		fmt.Fprintf(&b, "-- unmatched source joints: %s\n", strings.Join(m.UnmatchedSourceJoints, ", "))
	}
	return b.String()
}
