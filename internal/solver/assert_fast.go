//go:build !solverdebug

package solver

// Without the solverdebug build tag, a failed assertion still aborts —
// spec.md section 7 calls this the "release build" behavior — but
// panics with the bare format string instead of formatting it against
// args, since an invariant violation is a bug to be reproduced with
// solverdebug on, not diagnosed from a release-mode panic message.
func assert(cond bool, format string, args ...any) {
	if !cond {
		panic(&InternalInvariantViolation{Msg: format})
	}
}
