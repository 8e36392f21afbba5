package solver

import "github.com/rhartert/yagh"

// ActivityBranchingPolicy is an optional, non-default BranchPolicy that
// orders decisions by VSIDS-style activity instead of uniform random
// choice. spec.md's Non-goals exclude activity-based branching from the
// reference algorithm, but section 9's "Branching extensibility" note
// calls for the policy to be pluggable, so this exists as an
// alternative a caller can opt into explicitly; RandomBranchPolicy
// remains what Options defaults to.
//
// Grounded on the teacher's internal/sat/ordering.go VarOrder: yagh's
// IntMap is a min-heap, so activities are stored negated (highest
// activity sorts first); Next pops the heap and lazily discards entries
// for variables that were assigned since they were inserted, since
// OnAssign fires for propagated literals too and there is no cheap way
// to remove an arbitrary key from a yagh.IntMap.
type ActivityBranchingPolicy struct {
	order *yagh.IntMap[float64]

	scores   []float64 // persists across Pop/reinsert so decay survives assignment
	assigned []bool
	inc      float64
	decay    float64
}

func NewActivityBranchingPolicy(decay float64) *ActivityBranchingPolicy {
	return &ActivityBranchingPolicy{
		order: yagh.New[float64](0),
		inc:   1,
		decay: decay,
	}
}

func (p *ActivityBranchingPolicy) Expand() {
	v := len(p.scores)
	p.scores = append(p.scores, 0)
	p.assigned = append(p.assigned, false)
	p.order.GrowBy(1)
	p.order.Put(v, 0)
}

// OnAssign marks v unavailable for Next. The corresponding heap entry,
// if still present, is left in place and discarded lazily by Next.
func (p *ActivityBranchingPolicy) OnAssign(v int) {
	p.assigned[v] = true
}

func (p *ActivityBranchingPolicy) OnUnassign(v int) {
	p.assigned[v] = false
	p.order.Put(v, -p.scores[v])
}

// Bump increases v's activity, rescaling every activity if it grows too
// large, and decays the increment so recent conflicts matter more than
// old ones.
func (p *ActivityBranchingPolicy) Bump(v int) {
	newScore := p.scores[v] + p.inc
	p.scores[v] = newScore
	if p.order.Contains(v) {
		p.order.Put(v, -newScore)
	}
	if newScore > 1e100 {
		p.rescale()
	}
	p.inc /= p.decay
}

func (p *ActivityBranchingPolicy) rescale() {
	p.inc *= 1e-100
	for v, score := range p.scores {
		newScore := score * 1e-100
		p.scores[v] = newScore
		if p.order.Contains(v) {
			p.order.Put(v, -newScore)
		}
	}
}

// Next pops the heap until it finds a variable that is still
// unassigned, discarding stale entries left behind by OnAssign along
// the way.
func (p *ActivityBranchingPolicy) Next() (Literal, bool) {
	for {
		next, ok := p.order.Pop()
		if !ok {
			return 0, false
		}
		if p.assigned[next.Elem] {
			continue
		}
		return PositiveLiteral(next.Elem), true
	}
}
