package solver

// watchEntry is one clause attached to a literal's watch list.
type watchEntry struct {
	clauseID int

	// guard is one of the clause's other literals. If it is already true
	// under the current assignment, the clause is known satisfied and
	// propagate needn't even look at it — this is the fast path noted in
	// spec.md section 4.5 step 2 ("If value(w0) = true, the clause is
	// satisfied; leave it"), inlined into the watch list itself so it
	// doesn't require loading the clause's full literal slice.
	guard Literal
}

// WatchIndex is the two-watched-literal index of spec.md section 4.4:
// for each literal, the clauses to visit when it becomes true, i.e. the
// clauses currently watching its negation.
type WatchIndex struct {
	watchers [][]watchEntry // indexed by Literal

	// scratch is reused across Propagate calls to avoid reallocating the
	// snapshot buffer every time a watch list is drained (see propagate.go).
	scratch []watchEntry
}

// NewWatchIndex returns an empty watch index.
func NewWatchIndex() *WatchIndex {
	return &WatchIndex{}
}

// Expand grows the index to accommodate one more variable (two more
// literals).
func (w *WatchIndex) Expand() {
	w.watchers = append(w.watchers, nil, nil)
}

// Init registers clause c's initial two watches: its first two literals,
// each other acting as the other's guard (spec.md section 4.4's init
// operation).
func (w *WatchIndex) Init(c *Clause) {
	w.register(c.id, c.literals[0].Opposite(), c.literals[1])
	w.register(c.id, c.literals[1].Opposite(), c.literals[0])
}

// register attaches clauseID to watch's watch list with the given guard
// literal (spec.md section 4.4's register operation).
func (w *WatchIndex) register(clauseID int, watch Literal, guard Literal) {
	w.watchers[watch] = append(w.watchers[watch], watchEntry{clauseID: clauseID, guard: guard})
}

// Watching returns the list of clauses currently watching
// lit.Opposite(). The returned slice aliases internal state and is
// invalidated by any subsequent register, TakeWatching or PutBack call
// on lit.
func (w *WatchIndex) Watching(lit Literal) []watchEntry {
	return w.watchers[lit]
}

// TakeWatching copies lit's watch list into the index's scratch buffer
// and empties watchers[lit] in place, returning the scratch copy. The
// copy is required, not cosmetic: watchers[lit] may receive new entries
// while the caller is still iterating the list it started with (a
// clause re-registering itself under the same literal), and those
// appends must not clobber entries the iteration hasn't visited yet.
// This is the index-based iteration spec.md section 9 requires so that
// "Watched literal lists under mutation" visits each clause at most
// once per pass. The returned slice is only valid until the next
// TakeWatching call.
func (w *WatchIndex) TakeWatching(lit Literal) []watchEntry {
	w.scratch = append(w.scratch[:0], w.watchers[lit]...)
	w.watchers[lit] = w.watchers[lit][:0]
	return w.scratch
}

// PutBack appends entries back onto lit's watch list, used to restore
// guard-satisfied or unvisited entries during propagation.
func (w *WatchIndex) PutBack(lit Literal, entries []watchEntry) {
	w.watchers[lit] = append(w.watchers[lit], entries...)
}
