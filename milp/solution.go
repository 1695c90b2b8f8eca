package milp

import "context"

// Status describes the outcome of a solve.
type Status int

const (
	// StatusNotSet indicates the solver did not report a status.
	StatusNotSet Status = iota
	// StatusOptimal indicates an optimal solution was found.
	StatusOptimal
	// StatusInfeasible indicates the model has no feasible point.
	StatusInfeasible
	// StatusUnbounded indicates the objective is unbounded.
	StatusUnbounded
	// StatusUnboundedOrInfeasible indicates the solver could not tell which.
	StatusUnboundedOrInfeasible
	// StatusLimit indicates a time or iteration limit stopped the solve.
	StatusLimit
	// StatusError indicates the solver failed on the model.
	StatusError
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	names := []string{
		"NotSet", "Optimal", "Infeasible", "Unbounded",
		"UnboundedOrInfeasible", "Limit", "Error",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// Solution contains an optimal assignment of a model.
type Solution struct {
	// Status is StatusOptimal for every Solution returned by a Solver.
	Status Status

	// Values holds one value per variable, indexed by Var.
	Values []float64

	// Objective is the value of the objective function at Values.
	Objective float64
}

// Value returns the solution value for a variable.
// Returns 0 if the handle is out of range.
func (s *Solution) Value(v Var) float64 {
	if v < 0 || int(v) >= len(s.Values) {
		return 0
	}
	return s.Values[v]
}

// Solver is the boundary to an optimisation engine.
//
// Solve must either return a Solution with StatusOptimal and one value per
// model variable, or a nil Solution and an error that matches one of
// ErrInfeasible, ErrUnbounded, ErrNotOptimal or ErrSolverUnavailable.
// Implementations must not modify m.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
}
