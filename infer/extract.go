package infer

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/bartolsthoorn/clonereg/milp"
)

// indicatorThreshold absorbs solver slack on binary values.
const indicatorThreshold = 0.5

// CheckTolerance is the default numeric slack used by Result.Check on top of ε.
const CheckTolerance = 1e-5

// Result holds the clone×gene matrices read back from a solution.
type Result struct {
	// C is the expression contribution matrix, as solved.
	C *mat.Dense

	// Indicators holds one 0/1 matrix per state, indexed by State.
	Indicators [NumStates]*mat.Dense

	// Products holds the solved f_minus and f_plus values at Down and Up.
	// Products[Neutral] is nil.
	Products [NumStates]*mat.Dense

	// Sign is Indicators[Up] − Indicators[Down], with values in {−1, 0, 1}.
	Sign *mat.Dense

	// Objective is the optimal log-likelihood.
	Objective float64
}

// Extract reads the matrices of layout out of sol. C values are passed
// through unchanged; state indicators are thresholded at 0.5.
func Extract(layout Layout, sol *milp.Solution) (*Result, error) {
	if sol == nil {
		return nil, &ShapeError{Field: "solution", Got: "nil", Want: strconv.Itoa(layout.NumVars())}
	}
	if len(sol.Values) != layout.NumVars() {
		return nil, &ShapeError{
			Field: "solution",
			Got:   strconv.Itoa(len(sol.Values)),
			Want:  strconv.Itoa(layout.NumVars()),
		}
	}

	n, m := layout.Clones, layout.Genes
	res := &Result{
		C:         mat.NewDense(n, m, nil),
		Sign:      mat.NewDense(n, m, nil),
		Objective: sol.Objective,
	}
	for _, s := range States {
		res.Indicators[s] = mat.NewDense(n, m, nil)
	}
	res.Products[Down] = mat.NewDense(n, m, nil)
	res.Products[Up] = mat.NewDense(n, m, nil)

	for i := 0; i < n; i++ {
		for p := 0; p < m; p++ {
			res.C.Set(i, p, sol.Value(layout.Value(i, p)))
			for _, s := range States {
				if sol.Value(layout.Selector(s, i, p)) > indicatorThreshold {
					res.Indicators[s].Set(i, p, 1)
				}
			}
			res.Products[Down].Set(i, p, sol.Value(layout.Product(Down, i, p)))
			res.Products[Up].Set(i, p, sol.Value(layout.Product(Up, i, p)))
		}
	}
	res.Sign.Sub(res.Indicators[Up], res.Indicators[Down])
	return res, nil
}

// State returns the regulatory state selected for gene p in clone i.
func (r *Result) State(i, p int) State {
	switch r.Sign.At(i, p) {
	case 1:
		return Up
	case -1:
		return Down
	default:
		return Neutral
	}
}

// Check verifies the model invariants on the extracted values: row sums,
// mixture consistency, exactly one state, f_s = indicator_s·C and sign
// consistency with the baseline. Row-sum and sign checks allow ε + tol,
// the others tol.
func (r *Result) Check(in *Input, params Params, tol float64) error {
	n, m := r.C.Dims()
	if cn, cm := in.Dims(); cn != n || cm != m {
		return &ShapeError{Field: "C", Got: dims(n, m), Want: dims(cn, cm)}
	}
	var v []string
	slack := params.Eps + tol

	for i := 0; i < n; i++ {
		if sum := mat.Sum(r.C.RowView(i)); math.Abs(sum-1) > slack {
			v = append(v, fmt.Sprintf("row %d sums to %g", i, sum))
		}
	}
	for p := 0; p < m; p++ {
		mix := mat.Dot(mat.NewVecDense(n, in.Mixture), r.C.ColView(p))
		if math.Abs(mix-in.Tumor[p]) > tol {
			v = append(v, fmt.Sprintf("gene %d mixes to %g, want %g", p, mix, in.Tumor[p]))
		}
	}
	for i := 0; i < n; i++ {
		for p := 0; p < m; p++ {
			selected := 0.0
			for _, s := range States {
				selected += r.Indicators[s].At(i, p)
			}
			if selected != 1 {
				v = append(v, fmt.Sprintf("(%d,%d) selects %g states", i, p, selected))
			}
			c := r.C.At(i, p)
			for _, s := range []State{Down, Up} {
				want := r.Indicators[s].At(i, p) * c
				if got := r.Products[s].At(i, p); math.Abs(got-want) > tol {
					v = append(v, fmt.Sprintf("f_%s(%d,%d) = %g, want %g", s, i, p, got, want))
				}
			}
			e := in.Normal[p]
			var ok bool
			switch r.State(i, p) {
			case Up:
				ok = c >= e-slack
			case Down:
				ok = c <= e+slack
			default:
				ok = math.Abs(c-e) <= slack
			}
			if !ok {
				v = append(v, fmt.Sprintf("(%d,%d) is %s with c = %g, e = %g", i, p, r.State(i, p), c, e))
			}
		}
	}

	if len(v) > 0 {
		return &CheckError{Violations: v}
	}
	return nil
}
