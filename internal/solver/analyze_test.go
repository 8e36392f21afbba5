package solver

import "testing"

// A hand-driven two-level conflict: decision x1@L1 forces x4 via
// clause D; decision x2@L2 forces x3 via clause B and then x5 via
// clause F; conflict clause E=(-x3,-x5,-x4) resolves against F to
// reach the first UIP x3 and learn {-x3,-x4}, backtracking to L1.
// This guards the polarity of every non-asserting literal analyze
// stores: explainConflict/explainAssign hand back a currently-true
// witness (the antecedent literal negated once), so analyze must
// negate it back before it goes into the learnt clause.
func TestAnalyze_twoLevelConflict(t *testing.T) {
	s := newTestSolver(5) // x1..x5
	addClauses(t, s, [][]int{
		{-1, 4},      // D
		{-2, 3},      // B
		{-3, 5},      // F
		{-3, -5, -4}, // E
	})

	s.trail.PushDecision(PositiveLiteral(0)) // x1
	s.branch.OnAssign(0)
	s.queue.Push(PositiveLiteral(0))
	if id := s.Propagate(); id != noClause {
		t.Fatalf("Propagate() after deciding x1: got conflict %d, want none", id)
	}
	if s.trail.Value(PositiveLiteral(3)) != True {
		t.Fatalf("x4 was not forced true after deciding x1")
	}

	s.trail.PushDecision(PositiveLiteral(1)) // x2
	s.branch.OnAssign(1)
	s.queue.Push(PositiveLiteral(1))
	conflictID := s.Propagate()
	if conflictID == noClause {
		t.Fatalf("Propagate() after deciding x2: got no conflict, want one")
	}

	learnt, backtrackLevel := s.analyze(conflictID)

	if backtrackLevel != 1 {
		t.Errorf("backtrackLevel: got %d, want 1", backtrackLevel)
	}
	if len(learnt) != 2 {
		t.Fatalf("learnt clause: got %v, want 2 literals", learnt)
	}
	if learnt[0] != NegativeLiteral(2) {
		t.Errorf("learnt[0] (asserting literal): got %v, want -x3", learnt[0])
	}
	if learnt[1] != NegativeLiteral(3) {
		t.Errorf("learnt[1]: got %v, want -x4", learnt[1])
	}

	// spec.md testable property 5: every literal of the learnt clause
	// except the asserting one is false under the assignment in effect
	// right after analysis.
	for _, l := range learnt[1:] {
		if s.trail.Value(l) != False {
			t.Errorf("learnt literal %v: got %s, want false", l, s.trail.Value(l))
		}
	}

	s.trail.TrimToLevel(backtrackLevel, func(lit Literal) {
		s.branch.OnUnassign(lit.VarID())
	})

	// The same property must still hold once the trail has been
	// trimmed to backtrackLevel, and the asserting literal must not
	// itself have become false (it is about to be enqueued).
	if s.trail.Value(learnt[0]) == False {
		t.Errorf("learnt[0] %v is false after backjump, want unknown or true", learnt[0])
	}
	for _, l := range learnt[1:] {
		if s.trail.Value(l) != False {
			t.Errorf("learnt literal %v after backjump: got %s, want false", l, s.trail.Value(l))
		}
	}
}
