package problemgen

import "testing"

func TestTracker_MarkAndCheck(t *testing.T) {
	tr := NewTracker()
	k := Key{Family: 1, A: 3, B: 4}

	if tr.IsUsed(k) {
		t.Fatal("fresh tracker reports key as used")
	}
	tr.MarkUsed(k)
	if !tr.IsUsed(k) {
		t.Fatal("expected key to be used after MarkUsed")
	}
	if tr.IsUsed(Key{Family: 0, A: 3, B: 4}) {
		t.Error("keys in different families must be distinct")
	}
}

func TestTracker_MarkTwiceCountsOnce(t *testing.T) {
	tr := NewTracker()
	k := Key{A: 1}
	tr.MarkUsed(k)
	tr.MarkUsed(k)

	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1", tr.Len())
	}
	if tr.Count(0) != 1 {
		t.Errorf("Count(0) = %d, want 1", tr.Count(0))
	}
}

func TestTracker_Forbid(t *testing.T) {
	tr := NewTracker()
	k := Key{A: 5, B: 5}
	tr.Forbid(k)

	if !tr.IsUsed(k) {
		t.Error("forbidden key should report as used")
	}
	if tr.Len() != 0 || tr.Count(0) != 0 {
		t.Error("forbidden keys must not count as issued")
	}
}

func TestTracker_KeysInOrder(t *testing.T) {
	tr := NewTracker()
	want := []Key{{A: 3}, {A: 1}, {A: 2}}
	for _, k := range want {
		tr.MarkUsed(k)
	}

	got := tr.Keys()
	if len(got) != len(want) {
		t.Fatalf("len(Keys) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDrawUnused_ExhaustsSmallSpace(t *testing.T) {
	tr := NewTracker()
	rng := NewSource(1)
	draw := func() (Key, bool) { return Key{A: rng.IntN(3)}, true }

	for i := range 3 {
		if _, err := drawUnused(tr, draw); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if _, err := drawUnused(tr, draw); err != ErrKeyspaceExhausted {
		t.Errorf("err = %v, want ErrKeyspaceExhausted", err)
	}
}
