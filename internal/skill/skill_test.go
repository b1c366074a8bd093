package skill

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{"easy", TierEasy},
		{"Normal", TierNormal},
		{" hard ", TierHard},
		{"medium", TierNormal},
		{"", TierEasy},
		{"impossible", TierEasy},
	}

	for _, tc := range tests {
		if got := ParseTier(tc.input); got != tc.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestBudget_IncreasesWithTier(t *testing.T) {
	for _, s := range AllSkills() {
		easy := Budget(s.ID, TierEasy)
		normal := Budget(s.ID, TierNormal)
		hard := Budget(s.ID, TierHard)
		if !(easy < normal && normal < hard) {
			t.Errorf("%s budgets = %d/%d/%d, want strictly increasing", s.ID, easy, normal, hard)
		}
	}
}

func TestBudget_Final(t *testing.T) {
	want := map[Tier]int{TierEasy: 20, TierNormal: 30, TierHard: 40}
	for tier, n := range want {
		if got := Budget(Final, tier); got != n {
			t.Errorf("Budget(Final, %s) = %d, want %d", tier, got, n)
		}
	}
}

func TestBudget_InvalidTierFallsBackToEasy(t *testing.T) {
	if got, want := Budget(Arithmetic, Tier(42)), Budget(Arithmetic, TierEasy); got != want {
		t.Errorf("Budget(Arithmetic, 42) = %d, want %d", got, want)
	}
}

func TestTier_Normalize(t *testing.T) {
	if got := Tier(-1).Normalize(); got != TierEasy {
		t.Errorf("Tier(-1).Normalize() = %v, want easy", got)
	}
	if got := TierHard.Normalize(); got != TierHard {
		t.Errorf("TierHard.Normalize() = %v, want hard", got)
	}
}

func TestBudget_UnknownSkill(t *testing.T) {
	if got := Budget(ID("juggling"), TierEasy); got != 0 {
		t.Errorf("Budget(juggling) = %d, want 0", got)
	}
}

func TestOrdinals_UniqueAndFinalLast(t *testing.T) {
	seen := make(map[int]ID)
	maxOrdinal := 0
	for _, s := range AllSkills() {
		if prev, dup := seen[s.Ordinal]; dup {
			t.Errorf("ordinal %d shared by %s and %s", s.Ordinal, prev, s.ID)
		}
		seen[s.Ordinal] = s.ID
		if s.Ordinal > maxOrdinal {
			maxOrdinal = s.Ordinal
		}
	}
	if Ordinal(Final) != maxOrdinal {
		t.Errorf("Ordinal(Final) = %d, want %d", Ordinal(Final), maxOrdinal)
	}
}

func TestParse(t *testing.T) {
	id, err := Parse("Comparison")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id != Comparison {
		t.Errorf("Parse = %q, want %q", id, Comparison)
	}
	if _, err := Parse("juggling"); err == nil {
		t.Error("expected error for unknown skill")
	}
}

func TestTestableSkills_ExcludesFinal(t *testing.T) {
	got := TestableSkills()
	if len(got) != 8 {
		t.Fatalf("len(TestableSkills) = %d, want 8", len(got))
	}
	for _, s := range got {
		if s.ID == Final {
			t.Error("TestableSkills should not include Final")
		}
	}
}
