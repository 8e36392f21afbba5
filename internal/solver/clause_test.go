package solver

import "testing"

func newSolverWithClause(lits []Literal) (*Solver, int) {
	s := NewSolver(Options{Seed: 1})
	maxVar := 0
	for _, l := range lits {
		if v := l.VarID() + 1; v > maxVar {
			maxVar = v
		}
	}
	for i := 0; i < maxVar; i++ {
		s.AddVariable()
	}
	id, err := s.clauses.AddOriginal(append([]Literal(nil), lits...))
	if err != nil {
		panic(err)
	}
	s.watches.Init(s.clauses.Get(id))
	return s, id
}

func TestClause_PropagateFindsReplacement(t *testing.T) {
	s, id := newSolverWithClause([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)})
	c := s.clauses.Get(id)

	s.trail.Assign(NegativeLiteral(0), noClause)
	ok := c.propagate(s, NegativeLiteral(0))
	if !ok {
		t.Fatalf("propagate(): got conflict, want a replacement watch found")
	}
	if c.literals[0] == PositiveLiteral(0) || c.literals[1] == PositiveLiteral(0) {
		t.Errorf("propagate(): literals[0:2] = %v, want the falsified literal replaced", c.literals[:2])
	}
}

func TestClause_PropagateForcesLastLiteral(t *testing.T) {
	s, id := newSolverWithClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	c := s.clauses.Get(id)

	s.trail.Assign(NegativeLiteral(0), noClause)
	ok := c.propagate(s, NegativeLiteral(0))
	if !ok {
		t.Fatalf("propagate(): got conflict, want literals[1] forced true")
	}
	if s.trail.Value(PositiveLiteral(1)) != True {
		t.Errorf("Value(lit 1): got %s, want true (forced by unit propagation)", s.trail.Value(PositiveLiteral(1)))
	}
	if s.trail.Reason(1) != id {
		t.Errorf("Reason(1): got %d, want %d", s.trail.Reason(1), id)
	}
}

func TestClause_PropagateConflict(t *testing.T) {
	s, id := newSolverWithClause([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	c := s.clauses.Get(id)

	s.trail.Assign(NegativeLiteral(1), noClause) // literals[1] already false
	s.trail.Assign(NegativeLiteral(0), noClause)
	ok := c.propagate(s, NegativeLiteral(0))
	if ok {
		t.Fatalf("propagate(): got no conflict, want one (both literals false)")
	}
}

func TestClauseStore_DedupPreservesOrder(t *testing.T) {
	cs := NewClauseStore()
	id, err := cs.AddOriginal([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(0)})
	if err != nil {
		t.Fatalf("AddOriginal(): unexpected error %s", err)
	}
	got := cs.Get(id).Literals()
	want := []Literal{PositiveLiteral(0), PositiveLiteral(1)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Literals(): got %v, want %v", got, want)
	}
}
