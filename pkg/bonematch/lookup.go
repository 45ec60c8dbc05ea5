package bonematch

import (
	"strings"

	"github.com/Faultbox/rigforge/pkg/skeleton"
)

// Direct-lookup scoring table. Attachment lookup favors exactness over
// recall: a weapon parented to the wrong finger joint is worse than a
// failed equip, so substring matches are length-bounded and aliases rank
// last.
const (
	LookupExactStripped = 100 // exact after namespace strip
	LookupExactRaw      = 90  // case-insensitive raw equality
	LookupSuffix        = 80  // raw candidate ends with raw target
	LookupSubstring     = 70  // bounded-length normalized substring
	LookupAlias         = 60  // hand/wrist alias
)

// lookupSubstringSlack bounds how much longer (in normalized runes) a
// substring candidate may be than the target. Keeps deep descendants like
// "LeftHandIndex3" from standing in for "LeftHand".
const lookupSubstringSlack = 5

// Lookup runs the direct single-joint scorer used by equipment
// attachment. Ties on the top score are counted on the returned match so
// the caller can warn; the first candidate in skeleton order wins.
func (m *Matcher) Lookup(target string, candidates []skeleton.Joint) *Match {
	var best *Match
	for _, j := range candidates {
		score := m.lookupScore(target, j.Name)
		if score <= 0 {
			continue
		}
		switch {
		case best == nil || score > best.Score:
			best = &Match{Joint: j, Score: score, Tier: TierFor(score)}
		case score == best.Score:
			best.Ties++
		}
	}
	return best
}

// lookupScore applies the direct scoring table in priority order.
func (m *Matcher) lookupScore(target, candidate string) int {
	if m.StripNamespace(candidate) == m.StripNamespace(target) {
		return LookupExactStripped
	}
	if strings.EqualFold(candidate, target) {
		return LookupExactRaw
	}
	if strings.HasSuffix(candidate, target) {
		return LookupSuffix
	}

	tn := m.Normalize(target)
	cn := m.Normalize(candidate)
	if tn == "" || cn == "" {
		return 0
	}
	if strings.Contains(cn, tn) && len([]rune(cn)) <= len([]rune(tn))+lookupSubstringSlack {
		return LookupSubstring
	}
	if handWristAlias(tn, cn) {
		return LookupAlias
	}
	return 0
}

// handWristAlias is the single alias the direct scorer accepts.
func handWristAlias(tn, cn string) bool {
	return (strings.Contains(tn, "hand") && strings.Contains(cn, "wrist")) ||
		(strings.Contains(tn, "wrist") && strings.Contains(cn, "hand"))
}
