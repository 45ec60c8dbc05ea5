// Package bonematch scores skeleton joint names against canonical rig
// names. Rigs arrive with inconsistent naming (tool namespaces, side
// prefixes, digit padding), so both bulk mapping and direct attachment
// lookup run a fuzzy scorer instead of exact name equality.
//
// The package carries two deliberately separate scoring tables: Match is
// the bulk rig-mapping scorer, Lookup the direct attachment scorer. They
// are kept distinct because unifying them would silently change
// equip-time behavior; each table's constants are pinned by tests.
package bonematch

import (
	"strings"
	"unicode"

	"github.com/Faultbox/rigforge/pkg/skeleton"
)

// Bulk scoring table.
const (
	ScoreIdentical  = 100 // normalized forms identical
	ScoreRawSuffix  = 95  // raw candidate ends with raw target
	ScoreSubstring  = 85  // normalized candidate contains normalized target
	ScoreAlias      = 75  // alias table hit (either direction)
	SideBonus       = 25 // left/right agreement on a substring/alias hit
	maxBonusedScore = 99 // a bonused score never ties an identity hit
)

// Tier buckets a score for display.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// Tier thresholds.
const (
	tierHighMin   = 90
	tierMediumMin = 70
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// TierFor buckets a score into a confidence tier.
func TierFor(score int) Tier {
	switch {
	case score >= tierHighMin:
		return TierHigh
	case score >= tierMediumMin:
		return TierMedium
	default:
		return TierLow
	}
}

// Match is one scored joint candidate.
type Match struct {
	Joint skeleton.Joint
	Score int
	Tier  Tier
	// Ties counts additional candidates sharing the top score. Only
	// Lookup populates it; callers surface a non-fatal warning.
	Ties int
}

// aliasPairs are interchangeable naming families, tried in both
// directions (target has one side of the pair, candidate the other).
var aliasPairs = [][2]string{
	{"hand", "wrist"},
	{"shoulder", "clavicle"},
	{"foot", "ankle"},
}

// Matcher normalizes and scores joint names. The zero value strips no
// namespace; NewMatcher installs the default namespace list.
type Matcher struct {
	// Prefixes are rig-namespace tags stripped during normalization,
	// e.g. "mixamorig" for Mixamo-exported skeletons.
	Prefixes []string
}

// DefaultPrefixes is the namespace list a Matcher starts with.
var DefaultPrefixes = []string{"mixamorig"}

// NewMatcher returns a Matcher stripping the given namespace prefixes,
// defaulting to DefaultPrefixes when none are given.
func NewMatcher(prefixes ...string) *Matcher {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	return &Matcher{Prefixes: prefixes}
}

// StripNamespace removes a leading rig-namespace tag and its separator
// from a raw joint name. "mixamorig:LeftHand" becomes "LeftHand".
func (m *Matcher) StripNamespace(name string) string {
	for _, p := range m.Prefixes {
		if len(name) <= len(p) {
			continue
		}
		if !strings.EqualFold(name[:len(p)], p) {
			continue
		}
		rest := name[len(p):]
		if sep := rest[0]; sep == ':' || sep == '_' || sep == '.' || sep == '-' || sep == '|' {
			rest = rest[1:]
		}
		return rest
	}
	return name
}

// Normalize produces the canonical comparison form of a joint name:
// namespace stripped, separators removed, lower-cased, and every embedded
// digit run zero-padded to two characters so "Spine1" equals "Spine01".
func (m *Matcher) Normalize(name string) string {
	name = m.StripNamespace(name)

	var b strings.Builder
	b.Grow(len(name) + 2)
	digits := 0
	flush := func() {
		if digits == 1 {
			// Move the single digit back one slot behind a '0'.
			s := b.String()
			b.Reset()
			b.WriteString(s[:len(s)-1])
			b.WriteByte('0')
			b.WriteByte(s[len(s)-1])
		}
		digits = 0
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ':' || r == '.':
			flush()
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		default:
			flush()
			b.WriteRune(unicode.ToLower(r))
		}
	}
	flush()
	return b.String()
}

// Match runs the bulk rig-mapping scorer: every candidate is scored
// against the canonical target and the best kept. Returns nil when no
// candidate scores above zero.
func (m *Matcher) Match(target string, candidates []skeleton.Joint) *Match {
	var best *Match
	for _, j := range candidates {
		score := m.score(target, j.Name)
		if score <= 0 {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Joint: j, Score: score, Tier: TierFor(score)}
		}
	}
	return best
}

// score applies the bulk scoring table in priority order.
func (m *Matcher) score(target, candidate string) int {
	tn := m.Normalize(target)
	cn := m.Normalize(candidate)
	if tn == "" || cn == "" {
		return 0
	}

	if cn == tn {
		return ScoreIdentical
	}
	if strings.HasSuffix(candidate, target) {
		return ScoreRawSuffix
	}

	base := 0
	switch {
	case strings.Contains(cn, tn):
		base = ScoreSubstring
	case aliasHit(tn, cn):
		base = ScoreAlias
	}

	// Side-prefix expansion: l_/r_ candidates are respelled before a
	// second comparison pass.
	if base < ScoreRawSuffix {
		if expanded, ok := expandSidePrefix(candidate); ok {
			en := m.Normalize(expanded)
			if en == tn {
				return ScoreRawSuffix
			}
			if strings.Contains(en, tn) && base < ScoreSubstring {
				base = ScoreSubstring
			}
		}
	}

	if base == 0 {
		return 0
	}
	if ts, cs := sideOf(tn), sideOf(cn); ts != sideNone && ts == cs {
		base += SideBonus
		if base > maxBonusedScore {
			base = maxBonusedScore
		}
	}
	return base
}

// aliasHit reports whether the two normalized names land on opposite
// halves of an alias pair, in either direction.
func aliasHit(tn, cn string) bool {
	for _, p := range aliasPairs {
		if strings.Contains(tn, p[0]) && strings.Contains(cn, p[1]) {
			return true
		}
		if strings.Contains(tn, p[1]) && strings.Contains(cn, p[0]) {
			return true
		}
	}
	return false
}

// expandSidePrefix rewrites a raw "l_"/"r_" prefix to "left"/"right".
func expandSidePrefix(raw string) (string, bool) {
	if len(raw) < 3 {
		return "", false
	}
	head := strings.ToLower(raw[:2])
	switch head {
	case "l_", "l.", "l-":
		return "left" + raw[2:], true
	case "r_", "r.", "r-":
		return "right" + raw[2:], true
	}
	return "", false
}

type side int

const (
	sideNone side = iota
	sideLeft
	sideRight
)

// sideOf extracts the left/right marker from a normalized name.
func sideOf(norm string) side {
	l := strings.Contains(norm, "left")
	r := strings.Contains(norm, "right")
	switch {
	case l && !r:
		return sideLeft
	case r && !l:
		return sideRight
	default:
		return sideNone
	}
}
