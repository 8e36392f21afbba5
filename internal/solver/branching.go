package solver

import "math/rand"

// BranchPolicy selects the next decision literal and tracks which
// variables are currently free to decide on (spec.md section 4.7). The
// solver notifies it of every assignment and unassignment so it never
// has to scan the trail itself.
type BranchPolicy interface {
	Expand()
	OnAssign(v int)
	OnUnassign(v int)
	// Next returns a literal to decide on, or ok=false if every variable
	// is already assigned.
	Next() (lit Literal, ok bool)
}

// RandomBranchPolicy picks a uniformly random unassigned variable and a
// uniformly random polarity for it, the only branching rule spec.md's
// Non-goals permit as the default (no VSIDS/LRB). Grounded on
// original_source/utils.py's pick_branching_variable, which draws both
// the variable and its value from the same uniform distribution.
type RandomBranchPolicy struct {
	rng *rand.Rand

	// free holds the currently unassigned variable ids; index tracks each
	// variable's position in free (or -1 if assigned), so OnAssign can
	// remove a variable in O(1) by swapping it with free's last element.
	free  []int
	index []int
}

func NewRandomBranchPolicy(rng *rand.Rand) *RandomBranchPolicy {
	return &RandomBranchPolicy{rng: rng}
}

func (p *RandomBranchPolicy) Expand() {
	v := len(p.index)
	p.index = append(p.index, len(p.free))
	p.free = append(p.free, v)
}

func (p *RandomBranchPolicy) OnAssign(v int) {
	i := p.index[v]
	last := len(p.free) - 1
	p.free[i] = p.free[last]
	p.index[p.free[i]] = i
	p.free = p.free[:last]
	p.index[v] = -1
}

func (p *RandomBranchPolicy) OnUnassign(v int) {
	p.index[v] = len(p.free)
	p.free = append(p.free, v)
}

func (p *RandomBranchPolicy) Next() (Literal, bool) {
	if len(p.free) == 0 {
		return 0, false
	}
	v := p.free[p.rng.Intn(len(p.free))]
	if p.rng.Intn(2) == 0 {
		return PositiveLiteral(v), true
	}
	return NegativeLiteral(v), true
}
