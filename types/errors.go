package types

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction is returned by Model.Step when the action is not in
	// the legal set for the state. Never clamped or swallowed.
	ErrInvalidAction = errors.New("action not legal in state")

	// ErrEpisodeTruncated marks an episode stopped by the horizon cap before
	// reaching a terminal state. Distinct from success.
	ErrEpisodeTruncated = errors.New("episode truncated at horizon")
)

// NonConvergenceError is reported when a sweep-based solver exhausts its
// iteration cap before meeting the convergence threshold. The caller decides
// whether to accept the approximate table or retry with a relaxed epsilon.
type NonConvergenceError struct {
	Sweeps   int
	Residual float64
	Epsilon  float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d sweeps: residual %g > epsilon %g", e.Sweeps, e.Residual, e.Epsilon)
}
