package bonematch

import "testing"

// The direct-lookup table is pinned independently of the bulk table.
func TestLookup_ScoringTable(t *testing.T) {
	m := NewMatcher()
	cases := []struct {
		target    string
		candidate string
		score     int
	}{
		{"RightHand", "mixamorig:RightHand", LookupExactStripped},
		{"RightHand", "RightHand", LookupExactStripped},
		{"RightHand", "righthand", LookupExactRaw},
		{"RightHand", "CharRightHand", LookupSuffix},
		{"RightHand", "RightHand2", LookupSubstring},
		{"RightHand", "R_Wrist", LookupAlias},
	}
	for _, c := range cases {
		got := m.Lookup(c.target, joints(c.candidate))
		if got == nil {
			t.Errorf("Lookup(%q, %q) = nil, want score %d", c.target, c.candidate, c.score)
			continue
		}
		if got.Score != c.score {
			t.Errorf("Lookup(%q, %q) score = %d, want %d", c.target, c.candidate, got.Score, c.score)
		}
	}
}

func TestLookup_SubstringLengthBound(t *testing.T) {
	m := NewMatcher()
	// Finger joints must not stand in for the hand itself: the candidate
	// is too much longer than the target to count as a substring hit.
	if got := m.Lookup("LeftHand", joints("LeftHandIndex3")); got != nil {
		t.Errorf("deep descendant matched with score %d, want no match", got.Score)
	}
	// A mild suffix stays acceptable.
	if got := m.Lookup("LeftHand", joints("LeftHandX")); got == nil || got.Score != LookupSubstring {
		t.Error("short substring candidate should score LookupSubstring")
	}
}

func TestLookup_CountsTies(t *testing.T) {
	m := NewMatcher()
	got := m.Lookup("RightHand", joints("A_RightHand", "B_RightHand"))
	if got == nil {
		t.Fatal("expected a match")
	}
	if got.Score != LookupSuffix {
		t.Fatalf("score = %d, want %d", got.Score, LookupSuffix)
	}
	if got.Joint.Name != "A_RightHand" {
		t.Errorf("first candidate in skeleton order should win, got %q", got.Joint.Name)
	}
	if got.Ties != 1 {
		t.Errorf("Ties = %d, want 1", got.Ties)
	}
}

func TestLookup_PrefersExactOverSuffix(t *testing.T) {
	m := NewMatcher()
	got := m.Lookup("RightHand", joints("CharRightHand", "mixamorig:RightHand"))
	if got == nil || got.Joint.Name != "mixamorig:RightHand" {
		t.Fatal("exact-after-strip candidate should win over suffix match")
	}
	if got.Score != LookupExactStripped {
		t.Errorf("score = %d, want %d", got.Score, LookupExactStripped)
	}
	if got.Ties != 0 {
		t.Errorf("Ties = %d, want 0", got.Ties)
	}
}
