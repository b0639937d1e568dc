package html

import (
	"slices"
	"testing"
)

func TestRegistry_Add(t *testing.T) {
	reg := NewRegistry()
	reg.Add(".text-FF0000", "color:#FF0000")

	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
	want := ".text-FF0000 { color:#FF0000; }"
	if !reg.Has(want) {
		t.Errorf("rule %q not registered, have %v", want, reg.Rules())
	}
}

func TestRegistry_Idempotent(t *testing.T) {
	reg := NewRegistry()
	for range 5 {
		reg.Add(".bg-accent1", "background-color:#4472C4")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d after repeated Add, want 1", reg.Len())
	}
}

func TestRegistry_DistinctBodiesKept(t *testing.T) {
	reg := NewRegistry()
	reg.Add(".a", "color:#000000")
	reg.Add(".a", "color:#FFFFFF")

	// same selector with different body is a different rule
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistry_RulesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Add(".zebra", "color:#000000")
	reg.Add(".alpha", "color:#000000")
	reg.AddRaw(".middle { color:#000000; }")

	rules := reg.Rules()
	if !slices.IsSorted(rules) {
		t.Errorf("Rules() not sorted: %v", rules)
	}
	if len(rules) != 3 {
		t.Errorf("Rules() = %d entries, want 3", len(rules))
	}
}
