//go:build cgo && (linux || darwin)

// These tests solve with a system HiGHS; see the package doc for the build
// requirements.
package highs_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bartolsthoorn/clonereg/highs"
	"github.com/bartolsthoorn/clonereg/infer"
	"github.com/bartolsthoorn/clonereg/milp"
)

const tol = 1e-6

func solve(t *testing.T, m *milp.Model, opts ...highs.Option) (*milp.Solution, error) {
	t.Helper()
	return highs.New(opts...).Solve(context.Background(), m)
}

// lpModel is
//
//	Min    f  =  x_0 +  x_1
//	s.t.                x_1 <= 7
//	       5 <=  x_0 + 2x_1 <= 15
//	       6 <= 3x_0 + 2x_1
//	0 <= x_0 <= 4; 1 <= x_1
func lpModel(maximize bool) (*milp.Model, milp.Var, milp.Var) {
	m := &milp.Model{}
	x0 := m.AddVar("x0", 0, 4, milp.Continuous)
	x1 := m.AddVar("x1", 1, math.Inf(1), milp.Continuous)
	m.SetObjective(maximize, []milp.Term{{Var: x0, Coef: 1}, {Var: x1, Coef: 1}})
	m.AddConstraint("r0", []milp.Term{{Var: x1, Coef: 1}}, milp.LessEq, 7)
	m.AddConstraint("r1_lo", []milp.Term{{Var: x0, Coef: 1}, {Var: x1, Coef: 2}}, milp.GreaterEq, 5)
	m.AddConstraint("r1_hi", []milp.Term{{Var: x0, Coef: 1}, {Var: x1, Coef: 2}}, milp.LessEq, 15)
	m.AddConstraint("r2", []milp.Term{{Var: x0, Coef: 3}, {Var: x1, Coef: 2}}, milp.GreaterEq, 6)
	return m, x0, x1
}

func TestLP(t *testing.T) {
	m, x0, x1 := lpModel(false)

	sol, err := solve(t, m)
	require.NoError(t, err)
	assert.Equal(t, milp.StatusOptimal, sol.Status)
	assert.InDelta(t, 0.5, sol.Value(x0), tol)
	assert.InDelta(t, 2.25, sol.Value(x1), tol)
	assert.InDelta(t, 2.75, sol.Objective, tol)
}

func TestLPMaximize(t *testing.T) {
	m, x0, x1 := lpModel(true)

	sol, err := solve(t, m)
	require.NoError(t, err)
	assert.InDelta(t, 4, sol.Value(x0), tol)
	assert.InDelta(t, 5.5, sol.Value(x1), tol)
	assert.InDelta(t, 9.5, sol.Objective, tol)
}

// TestMIP is a binary knapsack with two capacity rows:
// max 5a + 4b + 3c s.t. 2a + 3b + c <= 5, 3a + 4b + 2c <= 8.
func TestMIP(t *testing.T) {
	m := &milp.Model{}
	a := m.AddVar("a", 0, 1, milp.Binary)
	b := m.AddVar("b", 0, 1, milp.Binary)
	c := m.AddVar("c", 0, 1, milp.Binary)
	m.SetObjective(true, []milp.Term{{Var: a, Coef: 5}, {Var: b, Coef: 4}, {Var: c, Coef: 3}})
	m.AddConstraint("w1", []milp.Term{{Var: a, Coef: 2}, {Var: b, Coef: 3}, {Var: c, Coef: 1}}, milp.LessEq, 5)
	m.AddConstraint("w2", []milp.Term{{Var: a, Coef: 3}, {Var: b, Coef: 4}, {Var: c, Coef: 2}}, milp.LessEq, 8)

	sol, err := solve(t, m, highs.WithMIPRelGap(0))
	require.NoError(t, err)
	assert.InDelta(t, 1, sol.Value(a), tol)
	assert.InDelta(t, 1, sol.Value(b), tol)
	assert.InDelta(t, 0, sol.Value(c), tol)
	assert.InDelta(t, 9, sol.Objective, tol)
	assert.LessOrEqual(t, m.MaxViolation(sol.Values), tol)
}

// TestMixedBinary checks a binary that the LP relaxation would set to a
// fraction: max 2x - y s.t. x + y <= 1.5, x - 0.5y >= 0.
func TestMixedBinary(t *testing.T) {
	m := &milp.Model{}
	x := m.AddVar("x", 0, 1, milp.Continuous)
	y := m.AddVar("y", 0, 1, milp.Binary)
	m.SetObjective(true, []milp.Term{{Var: x, Coef: 2}, {Var: y, Coef: -1}})
	m.AddConstraint("c1", []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, milp.LessEq, 1.5)
	m.AddConstraint("c2", []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: -0.5}}, milp.GreaterEq, 0)

	sol, err := solve(t, m)
	require.NoError(t, err)
	assert.InDelta(t, 1, sol.Value(x), tol)
	assert.InDelta(t, 0, sol.Value(y), tol)
	assert.InDelta(t, 2, sol.Objective, tol)
}

func TestEmptyModel(t *testing.T) {
	sol, err := solve(t, &milp.Model{})
	require.NoError(t, err)
	assert.Equal(t, milp.StatusOptimal, sol.Status)
	assert.Empty(t, sol.Values)
}

func TestNilModel(t *testing.T) {
	_, err := solve(t, nil)
	var merr *milp.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "Solve", merr.Op)
}

func TestInfeasible(t *testing.T) {
	m := &milp.Model{}
	x := m.AddVar("x", 0, 10, milp.Continuous)
	m.SetObjective(false, []milp.Term{{Var: x, Coef: 1}})
	m.AddConstraint("lo", []milp.Term{{Var: x, Coef: 1}}, milp.GreaterEq, 5)
	m.AddConstraint("hi", []milp.Term{{Var: x, Coef: 1}}, milp.LessEq, 3)

	sol, err := solve(t, m)
	require.ErrorIs(t, err, milp.ErrInfeasible)
	assert.Nil(t, sol)
}

func TestCanceledContext(t *testing.T) {
	m, _, _ := lpModel(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := highs.New().Solve(ctx, m)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsApplied(t *testing.T) {
	m, x0, _ := lpModel(false)

	sol, err := solve(t, m,
		highs.WithTimeLimit(60),
		highs.WithThreads(1),
		highs.WithPresolve("off"),
		highs.WithRandomSeed(7),
		highs.WithMIPAbsGap(0),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, sol.Value(x0), tol)

	_, err = solve(t, m, highs.WithPresolve("sometimes"))
	var merr *milp.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "SetOption", merr.Op)
}

func dense(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

func effects(minus, zero, plus [][]float64) [infer.NumStates]mat.Matrix {
	return [infer.NumStates]mat.Matrix{dense(minus), dense(zero), dense(plus)}
}

func infer1x1(e, d float64) *infer.Input {
	return &infer.Input{
		Mutations: dense([][]float64{{0}}),
		Normal:    []float64{e},
		Mixture:   []float64{1},
		Tumor:     []float64{d},
		Effects:   effects([][]float64{{0.005}}, [][]float64{{0.99}}, [][]float64{{0.005}}),
	}
}

// solveInput builds, solves, extracts and checks in.
func solveInput(t *testing.T, in *infer.Input) *infer.Result {
	t.Helper()
	params := infer.DefaultParams()
	prob, err := infer.Build(in, params)
	require.NoError(t, err)

	sol, err := solve(t, prob.Model, highs.WithMIPRelGap(0))
	require.NoError(t, err)
	assert.LessOrEqual(t, prob.Model.MaxViolation(sol.Values), 1e-6)

	res, err := infer.Extract(prob.Layout, sol)
	require.NoError(t, err)
	require.NoError(t, res.Check(in, params, infer.CheckTolerance))
	return res
}

func TestSolveSingleNeutralCell(t *testing.T) {
	res := solveInput(t, infer1x1(1, 1))

	assert.InDelta(t, 1, res.C.At(0, 0), tol)
	assert.Equal(t, 0.0, res.Sign.At(0, 0))
	assert.Equal(t, infer.Neutral, res.State(0, 0))
	assert.InDelta(t, math.Log(0.99), res.Objective, tol)
}

func TestSolveInfeasibleMixture(t *testing.T) {
	tests := []struct {
		name string
		e, d float64
	}{
		// A single clone must reproduce d while its row sums to one.
		{"half mixture", 0.5, 0.5},
		{"mixture above one", 0.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prob, err := infer.Build(infer1x1(tt.e, tt.d), infer.DefaultParams())
			require.NoError(t, err)

			sol, err := solve(t, prob.Model)
			require.ErrorIs(t, err, milp.ErrInfeasible)
			assert.Nil(t, sol)
		})
	}
}

// TestSolveForcedStates has one clone, so C = d and the states follow from
// the baseline alone.
func TestSolveForcedStates(t *testing.T) {
	in := &infer.Input{
		Mutations: dense([][]float64{{1, 0}}),
		Normal:    []float64{0.5, 0.5},
		Mixture:   []float64{1},
		Tumor:     []float64{0.7, 0.3},
		Effects: effects(
			[][]float64{{0.2, 0.6}, {0.005, 0.005}},
			[][]float64{{0.5, 0.3}, {0.99, 0.99}},
			[][]float64{{0.3, 0.1}, {0.005, 0.005}},
		),
	}
	res := solveInput(t, in)

	assert.InDelta(t, 0.7, res.C.At(0, 0), tol)
	assert.InDelta(t, 0.3, res.C.At(0, 1), tol)
	assert.True(t, mat.Equal(dense([][]float64{{1, -1}}), res.Sign))
	assert.InDelta(t, math.Log(0.3)+math.Log(0.6), res.Objective, tol)
	assert.InDelta(t, 0.7, res.Products[infer.Up].At(0, 0), tol)
	assert.InDelta(t, 0.3, res.Products[infer.Down].At(0, 1), tol)
}

// TestSolveTwoClones prefers the neutral state everywhere, which pins every
// entry of C to the baseline.
func TestSolveTwoClones(t *testing.T) {
	in := &infer.Input{
		Mutations: dense([][]float64{{1, 0}, {0, 0}}),
		Normal:    []float64{0.5, 0.5},
		Mixture:   []float64{0.5, 0.5},
		Tumor:     []float64{0.5, 0.5},
		Effects: effects(
			[][]float64{{0.2, 0.002}, {0.005, 0.005}},
			[][]float64{{0.5, 0.995}, {0.99, 0.99}},
			[][]float64{{0.3, 0.003}, {0.005, 0.005}},
		),
	}
	res := solveInput(t, in)

	assert.True(t, mat.EqualApprox(dense([][]float64{{0.5, 0.5}, {0.5, 0.5}}), res.C, tol))
	assert.True(t, mat.Equal(mat.NewDense(2, 2, nil), res.Sign))
	assert.InDelta(t, math.Log(0.5)+3*math.Log(0.99), res.Objective, tol)
}

func TestSolveIsIdempotent(t *testing.T) {
	in := &infer.Input{
		Mutations: dense([][]float64{{1, 0, 1}, {0, 1, 0}, {0, 0, 0}}),
		Normal:    []float64{0.3, 0.4, 0.3},
		Mixture:   []float64{0.5, 0.3, 0.2},
		Tumor:     []float64{0.35, 0.4, 0.25},
		Effects: effects(
			[][]float64{{0.1, 0.3, 0.2}, {0.2, 0.1, 0.6}, {0.5, 0.2, 0.1}},
			[][]float64{{0.8, 0.4, 0.5}, {0.3, 0.8, 0.3}, {0.2, 0.6, 0.8}},
			[][]float64{{0.1, 0.3, 0.3}, {0.5, 0.1, 0.1}, {0.3, 0.2, 0.1}},
		),
	}
	first := solveInput(t, in)
	second := solveInput(t, in)

	assert.InDelta(t, first.Objective, second.Objective, tol)
	assert.True(t, mat.EqualApprox(first.C, second.C, tol))
	assert.True(t, mat.Equal(first.Sign, second.Sign))
}
