package classify

import "testing"

func TestResolveWoodMetalTopLabelTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	preds := []Prediction{
		{Label: "oak table", Confidence: 0.9},
		{Label: "stainless steel", Confidence: 0.85},
	}

	sv, strong := ScorePredictions(preds, cfg)
	if !strong[CategoryWood] || !strong[CategoryMetal] {
		t.Fatalf("both strong indicators should fire: wood=%v metal=%v", strong[CategoryWood], strong[CategoryMetal])
	}

	resolved := ResolveConflicts(sv, strong, preds[0].Label, cfg)
	if resolved[CategoryMetal] != 0 {
		t.Fatalf("metal should be zeroed by the top-label tie-break: got=%v", resolved[CategoryMetal])
	}
	if got := Decide(resolved, preds[0].Label, cfg); got != CategoryWood {
		t.Fatalf("decision: want=%q got=%q", CategoryWood, got)
	}
}

func TestResolveExclusiveStrongIndicatorWins(t *testing.T) {
	cfg := DefaultConfig()
	sv := NewScoreVector()
	sv[CategoryWood] = 2.0
	sv[CategoryMetal] = 2.5
	strong := StrongHits{CategoryMetal: true}

	resolved := ResolveConflicts(sv, strong, "shiny object", cfg)
	if resolved[CategoryWood] != 0 {
		t.Fatalf("wood should be zeroed when only metal has a strong hit: got=%v", resolved[CategoryWood])
	}
	if resolved[CategoryMetal] != 2.5 {
		t.Fatalf("metal score should be untouched: got=%v", resolved[CategoryMetal])
	}
}

func TestResolveLeavesGenuineAmbiguity(t *testing.T) {
	cfg := DefaultConfig()
	sv := NewScoreVector()
	sv[CategoryWood] = 2.0
	sv[CategoryMetal] = 2.4
	strong := StrongHits{CategoryWood: true, CategoryMetal: true}

	// Top label speaks for neither side: cascade falls through.
	resolved := ResolveConflicts(sv, strong, "workbench", cfg)
	if resolved[CategoryWood] != 2.0 || resolved[CategoryMetal] != 2.4 {
		t.Fatalf("unresolvable tie must be left alone: wood=%v metal=%v", resolved[CategoryWood], resolved[CategoryMetal])
	}
}

func TestResolveIgnoresWideGaps(t *testing.T) {
	cfg := DefaultConfig()
	sv := NewScoreVector()
	sv[CategoryWood] = 1.0
	sv[CategoryMetal] = 5.0
	strong := StrongHits{CategoryWood: true}

	resolved := ResolveConflicts(sv, strong, "oak plank", cfg)
	if resolved[CategoryMetal] != 5.0 {
		t.Fatalf("gap beyond epsilon is not a conflict: metal=%v", resolved[CategoryMetal])
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	cfg := DefaultConfig()
	sv := NewScoreVector()
	sv[CategoryWood] = 2.0
	sv[CategoryMetal] = 2.1
	strong := StrongHits{CategoryWood: true}

	_ = ResolveConflicts(sv, strong, "oak plank", cfg)
	if sv[CategoryMetal] != 2.1 {
		t.Fatalf("input vector mutated: metal=%v", sv[CategoryMetal])
	}
}
