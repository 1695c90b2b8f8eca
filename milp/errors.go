package milp

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by Solver implementations.
var (
	// ErrInfeasible indicates the model admits no feasible assignment.
	ErrInfeasible = errors.New("model is infeasible")
	// ErrUnbounded indicates the objective can be improved without limit.
	ErrUnbounded = errors.New("model is unbounded")
	// ErrNotOptimal indicates the solve stopped without proving optimality.
	ErrNotOptimal = errors.New("solve ended without an optimal solution")
	// ErrSolverUnavailable indicates the engine could not be created or invoked.
	ErrSolverUnavailable = errors.New("solver unavailable")
)

// Error represents a solve failure with context about which operation failed.
type Error struct {
	Op     string // Operation that failed (e.g., "Solve", "PassModel")
	Status Status // Model status when known
	Err    error  // One of the sentinel errors, or an engine error
}

func (e *Error) Error() string {
	if e.Status != StatusNotSet {
		return fmt.Sprintf("milp: %s failed with status %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("milp: %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorForStatus maps a non-optimal status onto the matching sentinel error.
// It returns nil for StatusOptimal.
func ErrorForStatus(op string, status Status) error {
	switch status {
	case StatusOptimal:
		return nil
	case StatusInfeasible:
		return &Error{Op: op, Status: status, Err: ErrInfeasible}
	case StatusUnboundedOrInfeasible:
		return &Error{Op: op, Status: status, Err: errors.Join(ErrInfeasible, ErrUnbounded)}
	case StatusUnbounded:
		return &Error{Op: op, Status: status, Err: ErrUnbounded}
	default:
		return &Error{Op: op, Status: status, Err: ErrNotOptimal}
	}
}
