// Package milp describes mixed-integer linear programs independently of the
// engine that solves them.
//
// A Model holds typed variables addressed by Var handles, a linear objective
// and a list of sparse linear constraints:
//
//	Maximize (or Minimize): Objective · x
//	Subject to:             Terms · x  {<=, =, >=}  RHS   for every constraint
//	And:                    Lower ≤ x ≤ Upper
//
// Engines implement the Solver interface and receive the Model read-only.
package milp

import (
	"fmt"
	"math"
)

// VarKind specifies whether a variable is continuous or binary.
type VarKind int

const (
	// Continuous indicates a real-valued variable.
	Continuous VarKind = iota
	// Binary indicates a variable restricted to {0, 1} within its bounds.
	Binary
)

// String returns a human-readable representation of the variable kind.
func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "Continuous"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Sense is the comparison operator of a constraint.
type Sense int

const (
	// LessEq is Terms·x <= RHS.
	LessEq Sense = iota
	// Equal is Terms·x = RHS.
	Equal
	// GreaterEq is Terms·x >= RHS.
	GreaterEq
)

// String returns the LP-format operator for the sense.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case Equal:
		return "="
	case GreaterEq:
		return ">="
	default:
		return "?"
	}
}

// Bounds returns the row bounds [lower, upper] equivalent to "sense rhs".
func (s Sense) Bounds(rhs float64) (lower, upper float64) {
	switch s {
	case LessEq:
		return math.Inf(-1), rhs
	case GreaterEq:
		return rhs, math.Inf(1)
	default:
		return rhs, rhs
	}
}

// Var is a stable handle to a model variable: its column index.
type Var int

// Term is one coefficient of a sparse linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Variable describes a single column of the model.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
	Kind  VarKind
}

// Constraint is a single row: Terms · x  Sense  RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a mixed-integer linear program under construction.
// The zero value is an empty minimisation model ready to use.
type Model struct {
	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// Variables are the columns, indexed by Var.
	Variables []Variable

	// Objective holds one coefficient per variable.
	Objective []float64

	// Constraints are the rows in insertion order.
	Constraints []Constraint
}

// AddVar appends a variable and returns its handle.
// Handles are assigned consecutively starting at zero.
func (m *Model) AddVar(name string, lower, upper float64, kind VarKind) Var {
	v := Var(len(m.Variables))
	m.Variables = append(m.Variables, Variable{
		Name:  name,
		Lower: lower,
		Upper: upper,
		Kind:  kind,
	})
	m.Objective = append(m.Objective, 0)
	return v
}

// SetObjective sets the optimisation sense and the objective coefficients.
// Variables not named in terms get a zero coefficient; repeated variables
// accumulate.
func (m *Model) SetObjective(maximize bool, terms []Term) {
	m.Maximize = maximize
	for i := range m.Objective {
		m.Objective[i] = 0
	}
	for _, t := range terms {
		m.mustHave("SetObjective", t.Var)
		m.Objective[t.Var] += t.Coef
	}
}

// AddConstraint appends the row "terms sense rhs".
// Zero coefficients are dropped. Adding a row that references an unknown
// variable or has no non-zero term panics.
//
// Example:
//
//	m.AddConstraint("cap", []milp.Term{{x, 1}, {y, 2}}, milp.LessEq, 10)
//	// Adds constraint: x + 2*y <= 10
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) {
	row := make([]Term, 0, len(terms))
	for _, t := range terms {
		m.mustHave("AddConstraint", t.Var)
		if t.Coef != 0.0 {
			row = append(row, t)
		}
	}
	if len(row) == 0 {
		panic(fmt.Sprintf("milp: AddConstraint %q: no non-zero terms", name))
	}
	m.Constraints = append(m.Constraints, Constraint{
		Name:  name,
		Terms: row,
		Sense: sense,
		RHS:   rhs,
	})
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.Variables)
}

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int {
	return len(m.Constraints)
}

// NumNonzeros returns the number of non-zero constraint coefficients.
func (m *Model) NumNonzeros() int {
	nz := 0
	for _, c := range m.Constraints {
		nz += len(c.Terms)
	}
	return nz
}

// NumBinary returns the number of binary variables.
func (m *Model) NumBinary() int {
	n := 0
	for _, v := range m.Variables {
		if v.Kind == Binary {
			n++
		}
	}
	return n
}

// Evaluate returns the objective value at values.
func (m *Model) Evaluate(values []float64) float64 {
	obj := 0.0
	for i, c := range m.Objective {
		if i < len(values) {
			obj += c * values[i]
		}
	}
	return obj
}

// MaxViolation returns the largest amount by which values violate a variable
// bound, a binary restriction or a constraint. A feasible point yields zero.
func (m *Model) MaxViolation(values []float64) float64 {
	if len(values) != len(m.Variables) {
		return math.Inf(1)
	}
	worst := 0.0
	for i, v := range m.Variables {
		x := values[i]
		worst = math.Max(worst, v.Lower-x)
		worst = math.Max(worst, x-v.Upper)
		if v.Kind == Binary {
			worst = math.Max(worst, math.Abs(x-math.Round(x)))
		}
	}
	for _, c := range m.Constraints {
		lhs := 0.0
		for _, t := range c.Terms {
			lhs += t.Coef * values[t.Var]
		}
		lower, upper := c.Sense.Bounds(c.RHS)
		worst = math.Max(worst, lower-lhs)
		worst = math.Max(worst, lhs-upper)
	}
	return worst
}

func (m *Model) mustHave(op string, v Var) {
	if v < 0 || int(v) >= len(m.Variables) {
		panic(fmt.Sprintf("milp: %s: unknown variable %d", op, v))
	}
}
