package scheduler

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidProcessParameters reports a process that cannot take part in a run.
	ErrInvalidProcessParameters = errors.New("invalid process parameters")
	// ErrInvalidQuantum reports a non-positive or over-precise Round-Robin quantum.
	ErrInvalidQuantum = errors.New("invalid quantum")
	// ErrEmptyWorkload reports a run requested without any process.
	ErrEmptyWorkload = errors.New("empty workload")
	// ErrUnknownPolicy reports a policy name that has no engine.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
	// ErrInconsistentResult reports a result whose segments and metrics disagree.
	ErrInconsistentResult = errors.New("inconsistent scheduling result")
)

// IsInputError reports whether err was caused by caller supplied input.
func IsInputError(err error) bool {
	for _, target := range []error{ErrInvalidProcessParameters, ErrInvalidQuantum, ErrEmptyWorkload, ErrUnknownPolicy} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// invariant aborts the run when the engine reaches a state its algorithm rules out.
func invariant(format string, args ...any) {
	panic("scheduler: invariant violated: " + fmt.Sprintf(format, args...))
}
