package solver

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of a Solve call (spec.md section 4.1).
type Status int

const (
	StatusUnknown Status = iota
	StatusSatisfiable
	StatusUnsatisfiable
	StatusInterrupted
)

func (s Status) String() string {
	switch s {
	case StatusSatisfiable:
		return "satisfiable"
	case StatusUnsatisfiable:
		return "unsatisfiable"
	case StatusInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Options configures a Solver. The zero value is valid: unlimited
// conflicts and time, seed 0, and uniform random branching.
type Options struct {
	// MaxConflicts stops search once this many conflicts have occurred,
	// returning StatusUnknown. Zero means unlimited.
	MaxConflicts int64

	// Timeout stops search once this much wall-clock time has elapsed,
	// returning StatusUnknown. Zero means unlimited.
	Timeout time.Duration

	// Seed drives every random choice search makes (branching variable
	// and polarity). Fixing it makes a run reproducible, which
	// original_source/main.py treats as load-bearing behavior, not an
	// afterthought: it seeds math/rand once, up front, and comments that
	// removing the seed trades reproducibility for nothing in return.
	Seed int64

	// Branching selects the decision policy. Nil defaults to
	// RandomBranchPolicy, the only policy spec.md's reference algorithm
	// requires.
	Branching BranchPolicy

	// Logger receives structured diagnostics for each Solve call. Nil
	// uses logrus.StandardLogger().
	Logger *logrus.Logger
}

// Solver is a CDCL SAT solver over a growable set of Boolean variables
// (spec.md section 4). Variables are added with AddVariable; clauses
// with AddClause; Solve runs search to completion, interruption, or a
// configured resource limit.
type Solver struct {
	clauses *ClauseStore
	watches *WatchIndex
	trail   *Trail
	queue   *litQueue
	seen    *varSet
	branch  BranchPolicy

	opts        Options
	log         *logrus.Entry
	metrics     *metrics
	conflictEMA *ema
	resolvePool *literalBufferPool

	numVars      int
	conflicts    int64
	decisions    int64
	propagations int64

	// rootUnsat is set once two unit clauses (or a unit clause and an
	// earlier propagation) contradict each other at decision level 0.
	// enqueue reports this as a plain bool rather than a panic or an
	// error return, since AddClause can be called before Solve, and
	// contradicting units are exactly the boundary case spec.md section
	// 8 lists as "UNSAT at level 0" rather than an internal invariant
	// violation.
	rootUnsat bool
}

// NewSolver returns an empty Solver (no variables, no clauses).
func NewSolver(opts Options) *Solver {
	if opts.Branching == nil {
		opts.Branching = NewRandomBranchPolicy(rand.New(rand.NewSource(opts.Seed)))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Solver{
		clauses:     NewClauseStore(),
		watches:     NewWatchIndex(),
		trail:       NewTrail(),
		queue:       newLitQueue(64),
		seen:        &varSet{},
		branch:      opts.Branching,
		opts:        opts,
		log:         logger.WithField("run_id", uuid.NewString()),
		metrics:     newMetrics(),
		conflictEMA: newEMA(0.95),
		resolvePool: newLiteralBufferPool(),
	}
}

// NumVariables returns how many variables have been added so far.
func (s *Solver) NumVariables() int { return s.numVars }

// MetricsRegistry returns the Solver's private Prometheus registry, for
// callers (such as the CLI's --verbose mode) that want to gather and
// render search statistics themselves. The solver never exposes these
// over HTTP on its own.
func (s *Solver) MetricsRegistry() *prometheus.Registry { return s.metrics.registry }

// AddVariable introduces one new variable and returns its id (spec.md
// section 4.2's add_variable operation). Variable ids are dense and
// start at 0.
func (s *Solver) AddVariable() int {
	v := s.numVars
	s.numVars++
	s.trail.Expand()
	s.watches.Expand()
	s.seen.Expand()
	s.branch.Expand()
	return v
}

// AddClause adds an original (non-learnt) clause over lits, returning
// its id. It is only valid to call before Solve has returned a
// definitive status; adding a clause after the formula is already known
// unsatisfiable is the caller's mistake, not something this method
// detects.
//
// A unit clause is enqueued immediately at decision level 0. The empty
// clause makes AddClause return ErrEmptyClause; a unit clause whose
// literal an earlier unit already made false returns a nil error. Both
// mark the formula unsatisfiable, so a later Solve returns
// StatusUnsatisfiable without searching. A longer clause falsified by
// earlier units is not detected here; Solve finds that conflict when it
// propagates the queued units at level 0.
func (s *Solver) AddClause(lits []Literal) (int, error) {
	id, err := s.clauses.AddOriginal(lits)
	if err == ErrEmptyClause {
		s.rootUnsat = true
		return id, err
	}
	if err != nil {
		return id, err
	}
	c := s.clauses.Get(id)
	switch c.Len() {
	case 1:
		if !s.enqueue(c.literals[0], c.id) {
			s.rootUnsat = true
		}
	default:
		s.watches.Init(c)
	}
	return id, nil
}

// enqueue assigns lit true with the given antecedent, pushing it onto
// the propagation queue. It reports false if lit's variable is already
// assigned false (a conflict discovered at enqueue time rather than
// during Propagate), true otherwise — including when the variable was
// already assigned true, which is a no-op.
func (s *Solver) enqueue(lit Literal, reason int) bool {
	switch s.trail.Value(lit) {
	case True:
		return true
	case False:
		return false
	}
	s.trail.Assign(lit, reason)
	s.branch.OnAssign(lit.VarID())
	s.queue.Push(lit)
	s.propagations++
	s.metrics.propagations.Inc()
	return true
}

// Model returns the current assignment, one LBool per variable in id
// order. It is only meaningful after Solve has returned
// StatusSatisfiable.
func (s *Solver) Model() []LBool {
	model := make([]LBool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		model[v] = s.trail.Value(PositiveLiteral(v))
	}
	return model
}

// Solve runs search to completion, a configured resource limit, or
// ctx's cancellation (spec.md section 4.7 and section 5). Cancellation
// is polled once per iteration of the outer search loop, never from
// inside propagation or conflict analysis.
func (s *Solver) Solve(ctx context.Context) (Status, error) {
	deadline := time.Time{}
	if s.opts.Timeout > 0 {
		deadline = time.Now().Add(s.opts.Timeout)
	}

	if s.rootUnsat {
		return StatusUnsatisfiable, nil
	}

	conflictsAtDecision := s.conflicts
	for {
		select {
		case <-ctx.Done():
			s.log.WithFields(logrus.Fields{"conflicts": s.conflicts, "decisions": s.decisions}).Info("search interrupted")
			return StatusInterrupted, &Interrupted{Conflicts: s.conflicts, Decisions: s.decisions}
		default:
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return StatusUnknown, nil
		}

		conflictID := s.Propagate()
		if conflictID == noClause {
			if s.opts.MaxConflicts > 0 && s.conflicts >= s.opts.MaxConflicts {
				return StatusUnknown, nil
			}
			if s.trail.AllAssigned() {
				s.log.WithField("decisions", s.decisions).Info("search found a satisfying assignment")
				return StatusSatisfiable, nil
			}

			lit, ok := s.branch.Next()
			if !ok {
				return StatusSatisfiable, nil
			}
			s.decisions++
			s.metrics.decisions.Inc()
			s.conflictEMA.Add(float64(s.conflicts - conflictsAtDecision))
			conflictsAtDecision = s.conflicts
			s.metrics.conflictRateEMA.Set(s.conflictEMA.Val())
			s.trail.PushDecision(lit)
			s.branch.OnAssign(lit.VarID())
			s.queue.Push(lit)
			continue
		}

		s.conflicts++
		s.metrics.conflicts.Inc()
		s.metrics.decisionLevel.Set(float64(s.trail.DecisionLevel()))

		if s.trail.DecisionLevel() == 0 {
			s.log.WithField("conflicts", s.conflicts).Info("search proved unsatisfiability")
			return StatusUnsatisfiable, nil
		}

		learnt, backtrackLevel := s.analyze(conflictID)
		s.trail.TrimToLevel(backtrackLevel, func(lit Literal) {
			s.branch.OnUnassign(lit.VarID())
		})
		s.queue.Clear()

		learntID := s.clauses.AddLearnt(learnt)
		lc := s.clauses.Get(learntID)
		if lc.Len() > 1 {
			s.watches.Init(lc)
		}
		if !s.enqueue(lc.literals[0], lc.id) {
			assert(false, "learnt clause %d's asserting literal %v was already false after backjump", lc.id, lc.literals[0])
		}
	}
}
