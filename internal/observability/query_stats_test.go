package observability

import (
	"testing"
	"time"
)

func TestRecordPredicate(t *testing.T) {
	qs := NewQueryStats(time.Hour)
	qs.RecordPredicate("users.id", "=")
	qs.RecordPredicate("users.id", "=")
	qs.RecordPredicate("users.name", "=")

	top := qs.GetTopPredicates(10)
	if len(top) != 2 {
		t.Fatalf("got %d predicates", len(top))
	}
	if top[0].Column != "users.id" || top[0].Frequency != 2 {
		t.Errorf("top predicate = %+v", top[0])
	}
	if top[0].Operators["="] != 2 {
		t.Errorf("operators = %v", top[0].Operators)
	}
}

func TestGetTopPredicates_Bounds(t *testing.T) {
	qs := NewQueryStats(time.Hour)
	if got := qs.GetTopPredicates(5); len(got) != 0 {
		t.Errorf("empty tracker returned %v", got)
	}

	qs.RecordPredicate("a", "=")
	qs.RecordPredicate("b", "=")
	if got := qs.GetTopPredicates(1); len(got) != 1 {
		t.Errorf("n=1 returned %d entries", len(got))
	}
	if got := qs.GetTopPredicates(0); len(got) != 0 {
		t.Errorf("n=0 returned %d entries", len(got))
	}
}

func TestRecordStatement(t *testing.T) {
	qs := NewQueryStats(time.Hour)
	shape := "SELECT * FROM users WHERE id = ?"
	qs.RecordStatement(shape, 10*time.Millisecond, false)
	qs.RecordStatement(shape, 20*time.Millisecond, true)

	stats := qs.GetStatements()
	if len(stats) != 1 {
		t.Fatalf("got %d shapes", len(stats))
	}
	s := stats[0]
	if s.Shape != shape || s.Count != 2 || s.Errors != 1 {
		t.Errorf("stats = %+v", s)
	}
	if s.TotalTime != 30*time.Millisecond {
		t.Errorf("total time = %v", s.TotalTime)
	}
	if s.Fingerprint != Fingerprint(shape) {
		t.Error("fingerprint mismatch")
	}
}

func TestFingerprint_Distinguishes(t *testing.T) {
	if Fingerprint("SELECT * FROM a") == Fingerprint("SELECT * FROM b") {
		t.Error("distinct shapes should not collide")
	}
	if Fingerprint("x") != Fingerprint("x") {
		t.Error("fingerprint must be deterministic")
	}
}

func TestPrune(t *testing.T) {
	qs := NewQueryStats(time.Hour)
	qs.RecordPredicate("users.id", "=")
	qs.RecordStatement("SELECT * FROM users", time.Millisecond, false)

	qs.Prune(time.Now())
	if len(qs.GetTopPredicates(10)) != 1 || len(qs.GetStatements()) != 1 {
		t.Error("fresh entries should survive pruning")
	}

	qs.Prune(time.Now().Add(2 * time.Hour))
	if len(qs.GetTopPredicates(10)) != 0 || len(qs.GetStatements()) != 0 {
		t.Error("entries past the window should be dropped")
	}
}

func TestPrune_DisabledWindow(t *testing.T) {
	qs := NewQueryStats(0)
	qs.RecordPredicate("users.id", "=")
	qs.Prune(time.Now().Add(24 * time.Hour))
	if len(qs.GetTopPredicates(10)) != 1 {
		t.Error("a zero window should disable pruning")
	}
}
