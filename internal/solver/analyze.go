package solver

// activityBumper is implemented by BranchPolicy implementations that
// track per-variable activity (ActivityBranchingPolicy). analyze bumps
// every variable it resolves on, the way VSIDS-style branching expects;
// RandomBranchPolicy doesn't implement it, so the type assertion below
// is simply a no-op for the default policy.
type activityBumper interface {
	Bump(v int)
}

// analyze performs first-UIP conflict analysis (spec.md section 4.6):
// starting from the clause conflictID falsified during propagation, it
// walks the trail backward, resolving the conflict against each
// antecedent in turn until exactly one literal from the current
// decision level remains. That literal's negation becomes the
// asserting literal of the learnt clause; the clause's second slot is
// set to the literal among the rest with the highest decision level,
// which is also the level analysis reports to backtrack to.
//
// Grounded on the teacher's Solver.analyze (internal/sat/solver.go):
// the seen set dedupes variables already resolved on, and pending
// counts how many trail literals at the current level still need
// resolving before the walk can stop.
func (s *Solver) analyze(conflictID int) (learnt []Literal, backtrackLevel int) {
	s.seen.Clear()

	curLevel := s.trail.DecisionLevel()
	trail := s.trail.Literals()

	resolvent := s.resolvePool.Get(8)
	resolvent = append(resolvent, 0) // reserved: the asserting literal

	confl := conflictID
	first := true
	pending := 0
	idx := len(trail) - 1
	var uip Literal
	bumper, bumps := s.branch.(activityBumper)

	for {
		c := s.clauses.Get(confl)
		var reasonLits []Literal
		if first {
			reasonLits = c.explainConflict(nil)
			first = false
		} else {
			reasonLits = c.explainAssign(nil)
		}

		for _, q := range reasonLits {
			v := q.VarID()
			if s.seen.Contains(v) {
				continue
			}
			s.seen.Add(v)
			if bumps {
				bumper.Bump(v)
			}
			lvl := s.trail.Level(v)
			switch {
			case lvl == curLevel:
				pending++
			case lvl > 0:
				// q is explainConflict/explainAssign's antecedent witness
				// (already negated once, so it holds true under the current
				// assignment); the learnt clause needs the literal that is
				// false, so it gets negated back here.
				resolvent = append(resolvent, q.Opposite())
			}
			// lvl == 0: unconditionally implied, omitted from the learnt clause.
		}

		for !s.seen.Contains(trail[idx].VarID()) {
			idx--
		}
		uip = trail[idx]
		v := uip.VarID()
		idx--
		pending--

		if pending == 0 {
			break
		}
		confl = s.trail.Reason(v)
	}

	resolvent[0] = uip.Opposite()

	backtrackLevel = 0
	if len(resolvent) > 1 {
		maxI := 1
		maxLevel := s.trail.Level(resolvent[1].VarID())
		for i := 2; i < len(resolvent); i++ {
			lvl := s.trail.Level(resolvent[i].VarID())
			if lvl > maxLevel {
				maxLevel = lvl
				maxI = i
			}
		}
		resolvent[1], resolvent[maxI] = resolvent[maxI], resolvent[1]
		backtrackLevel = maxLevel
	}

	learnt = append([]Literal(nil), resolvent...)
	s.resolvePool.Put(resolvent)
	return learnt, backtrackLevel
}
