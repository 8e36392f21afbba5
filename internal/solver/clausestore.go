package solver

import "github.com/pkg/errors"

// ErrEmptyClause is returned by ClauseStore.AddOriginal when, after
// deduplication, a clause has no literals left: spec.md section 8 lists
// "formula containing the empty clause" as a boundary case that must be
// recognized, not silently dropped.
var ErrEmptyClause = errors.New("clause has no literals")

// ClauseStore owns every clause the solver knows about, original and
// learnt alike, in one append-only, id-addressable sequence (spec.md
// section 4.2). A clause's id is stable for the lifetime of the store:
// it is simply the clause's position in clauses.
type ClauseStore struct {
	clauses []*Clause
}

// NewClauseStore returns an empty store.
func NewClauseStore() *ClauseStore {
	return &ClauseStore{}
}

// Len returns the number of clauses currently stored.
func (cs *ClauseStore) Len() int { return len(cs.clauses) }

// Get returns the clause with the given id.
func (cs *ClauseStore) Get(id int) *Clause { return cs.clauses[id] }

// AddOriginal deduplicates lits and stores them as a new original
// clause, returning its id. It never looks at the current assignment:
// per spec.md section 3, a tautological clause (containing both a
// literal and its negation) is permitted to remain in the store rather
// than be simplified away, since this core performs no preprocessing.
//
// lits is modified in place (truncated to its deduplicated length) and
// the resulting slice is the one stored; callers must not reuse it.
func (cs *ClauseStore) AddOriginal(lits []Literal) (id int, err error) {
	lits = dedupLiterals(lits)
	if len(lits) == 0 {
		id = cs.append(&Clause{literals: lits, prevPos: 2})
		return id, ErrEmptyClause
	}
	return cs.append(&Clause{literals: lits, prevPos: 2}), nil
}

// AddLearnt stores lits (already deduplicated and ordered by conflict
// analysis, with the asserting literal first) as a new learnt clause and
// returns its id. The caller is responsible for registering watches:
// ClauseStore has no knowledge of decision levels.
func (cs *ClauseStore) AddLearnt(lits []Literal) int {
	return cs.append(&Clause{literals: lits, learnt: true, prevPos: 2})
}

func (cs *ClauseStore) append(c *Clause) int {
	c.id = len(cs.clauses)
	cs.clauses = append(cs.clauses, c)
	return c.id
}

// dedupLiterals removes literals that repeat the same variable and
// polarity, preserving the first occurrence's position and reusing lits'
// backing array.
func dedupLiterals(lits []Literal) []Literal {
	if len(lits) < 2 {
		return lits
	}
	seen := make(map[Literal]struct{}, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
