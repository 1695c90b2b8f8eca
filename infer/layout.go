package infer

import (
	"fmt"

	"github.com/bartolsthoorn/clonereg/milp"
)

// State is the regulatory state of a gene in a clone.
type State int

const (
	// Down is down-regulation (the "minus" state).
	Down State = iota
	// Neutral means expression is unaffected (the "zero" state).
	Neutral
	// Up is up-regulation (the "plus" state).
	Up

	// NumStates is the number of regulatory states.
	NumStates = 3
)

// States lists the regulatory states in model order.
var States = [NumStates]State{Down, Neutral, Up}

// String returns the symbol used in variable names and input file names.
func (s State) String() string {
	switch s {
	case Down:
		return "minus"
	case Neutral:
		return "zero"
	case Up:
		return "plus"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sign returns -1, 0 or +1 for Down, Neutral and Up.
func (s State) Sign() int {
	return int(s) - 1
}

// role is a block of clone×gene variables.
type role int

const (
	roleValue       role = iota // c
	roleSelector                // c_minus, c_zero, c_plus: roleSelector+State
	_
	_
	roleProductDown // f_minus
	roleProductUp   // f_plus
	numRoles
)

// Layout maps (role, clone, gene) to model variable handles.
//
// Variables are stored role-major: c, c_minus, c_zero, c_plus, f_minus,
// f_plus, each block holding Clones×Genes entries in row-major order.
type Layout struct {
	Clones int
	Genes  int
}

// NumVars returns the number of model variables.
func (l Layout) NumVars() int {
	return int(numRoles) * l.Clones * l.Genes
}

func (l Layout) at(r role, i, p int) milp.Var {
	return milp.Var((int(r)*l.Clones+i)*l.Genes + p)
}

// Value returns the handle of c[i,p].
func (l Layout) Value(i, p int) milp.Var {
	return l.at(roleValue, i, p)
}

// Selector returns the handle of the binary c_s[i,p].
func (l Layout) Selector(s State, i, p int) milp.Var {
	return l.at(roleSelector+role(s), i, p)
}

// Product returns the handle of f_s[i,p] = c_s[i,p]·c[i,p]. Only Down and Up
// have a product variable; Neutral panics.
func (l Layout) Product(s State, i, p int) milp.Var {
	switch s {
	case Down:
		return l.at(roleProductDown, i, p)
	case Up:
		return l.at(roleProductUp, i, p)
	default:
		panic(fmt.Sprintf("infer: no product variable for state %s", s))
	}
}

func valueName(i, p int) string {
	return fmt.Sprintf("c_%d_%d", i, p)
}

func selectorName(s State, i, p int) string {
	return fmt.Sprintf("c_%s_%d_%d", s, i, p)
}

func productName(s State, i, p int) string {
	return fmt.Sprintf("f_%s_%d_%d", s, i, p)
}
