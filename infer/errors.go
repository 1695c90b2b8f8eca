package infer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputShape indicates inconsistent dimensions among B, u, e, d and Z.
	ErrInputShape = errors.New("input shape mismatch")
	// ErrInvalidProbability indicates a non-positive Z entry or a Z triple
	// that does not sum to one.
	ErrInvalidProbability = errors.New("invalid probability")
	// ErrInvalidInput indicates an input value outside its domain.
	ErrInvalidInput = errors.New("invalid input value")
	// ErrInconsistentSolution indicates solved values that break a model
	// invariant beyond tolerance.
	ErrInconsistentSolution = errors.New("inconsistent solution")
)

// ShapeError reports a dimension mismatch.
type ShapeError struct {
	Field string // e.g. "u", "Z_plus"
	Got   string // e.g. "3", "4x5"
	Want  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("infer: %s has shape %s, want %s", e.Field, e.Got, e.Want)
}

// Is reports whether target is ErrInputShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrInputShape
}

// ProbabilityError reports an unusable effect probability.
type ProbabilityError struct {
	Field  string // e.g. "Z_zero[2,0]"
	Value  float64
	Reason string
}

func (e *ProbabilityError) Error() string {
	return fmt.Sprintf("infer: %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidProbability.
func (e *ProbabilityError) Is(target error) bool {
	return target == ErrInvalidProbability
}

// ValueError reports an input or parameter value outside its domain.
type ValueError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("infer: %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidInput
}

// CheckError lists the invariants a solution violates.
type CheckError struct {
	Violations []string
}

func (e *CheckError) Error() string {
	const shown = 5
	msg := strings.Join(e.Violations[:min(len(e.Violations), shown)], "; ")
	if len(e.Violations) > shown {
		msg += fmt.Sprintf("; and %d more", len(e.Violations)-shown)
	}
	return "infer: inconsistent solution: " + msg
}

// Is reports whether target is ErrInconsistentSolution.
func (e *CheckError) Is(target error) bool {
	return target == ErrInconsistentSolution
}

func dims(r, c int) string {
	return fmt.Sprintf("%dx%d", r, c)
}
