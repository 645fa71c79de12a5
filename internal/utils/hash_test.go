package utils

import "testing"

func TestStableIndex(t *testing.T) {
	for _, s := range []string{"", "Ana", "Relatório de chamados"} {
		a := StableIndex(s, 4)
		if a < 0 || a >= 4 {
			t.Fatalf("index %d out of range for %q", a, s)
		}
		if b := StableIndex(s, 4); a != b {
			t.Fatalf("expected stable index for %q, got %d and %d", s, a, b)
		}
	}
	if got := StableIndex("x", 1); got != 0 {
		t.Fatalf("single slot must be 0, got %d", got)
	}
}
