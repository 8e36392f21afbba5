package solver

// Propagate drains the pending-assignment queue, applying unit
// propagation until either the queue empties (no conflict) or some
// clause is falsified (spec.md section 4.5). It returns the id of the
// conflicting clause, or noClause if propagation completed cleanly.
//
// Grounded on the teacher's Solver.Propagate (internal/sat/solver.go):
// for each literal p popped off the queue (p has just become true, so
// every clause watching p's list has its watched literal, p.Opposite(),
// just falsified), p's watch list is snapshotted and cleared before
// being walked, so that clauses the walk re-registers under p are not
// revisited in the same pass, and any entries left unvisited after a
// conflict are put back unchanged.
func (s *Solver) Propagate() int {
	for s.queue.Size() > 0 {
		p := s.queue.Pop()

		list := s.watches.TakeWatching(p)
		for i, w := range list {
			if s.trail.Value(w.guard) == True {
				s.watches.PutBack(p, list[i:i+1])
				continue
			}

			c := s.clauses.Get(w.clauseID)
			if c.propagate(s, p) {
				continue
			}

			// Conflict: the entries this clause's propagate call may have
			// queued under other literals are already placed; everything
			// from i+1 onward in this snapshot was never visited and must
			// be restored to p's list as-is.
			s.watches.PutBack(p, list[i+1:])
			s.queue.Clear()
			return c.id
		}
	}
	return noClause
}
