package solver

import "fmt"

// InternalInvariantViolation is the panic value raised when the core
// detects it has broken one of its own invariants (spec.md section 7):
// assigning an already-assigned variable, unwatching a clause that
// isn't watched, and so on. These are solver bugs, never user errors,
// so they are never returned as an error value.
type InternalInvariantViolation struct {
	Msg string
}

func (e *InternalInvariantViolation) Error() string {
	return "internal invariant violation: " + e.Msg
}

func newInvariantViolation(format string, args ...any) *InternalInvariantViolation {
	return &InternalInvariantViolation{Msg: fmt.Sprintf(format, args...)}
}

// Interrupted is returned by Solve when the search stopped because its
// context was cancelled, rather than because it found an answer
// (spec.md section 5). It is not an InternalInvariantViolation: a
// cancelled run is an expected outcome, not a solver bug.
type Interrupted struct {
	// Conflicts and Decisions record how far search got before the
	// cancellation was observed, so a caller can report partial progress.
	Conflicts int64
	Decisions int64
}

func (e *Interrupted) Error() string {
	return "search interrupted"
}
