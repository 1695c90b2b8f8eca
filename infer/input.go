package infer

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ProbabilityTolerance bounds how far u and every Z triple may sum away from one.
const ProbabilityTolerance = 1e-4

// Default tuning values.
const (
	DefaultEps   = 1e-5
	DefaultAlpha = 0.99
)

// Input holds the observed data of one tumor sample. Build never modifies it.
type Input struct {
	// Mutations is B (clones×genes); B[i,p] = 1 if gene p is mutated in clone i.
	Mutations mat.Matrix

	// Normal is e, the expression baseline of the matched normal sample.
	Normal []float64

	// Mixture is u, the proportion of each clone in the tumor sample.
	Mixture []float64

	// Tumor is d, the bulk expression observed in the tumor sample.
	Tumor []float64

	// Effects holds Z⁻, Z⁰ and Z⁺ (genes×genes) indexed by State.
	// Effects[s][q,p] is the probability that a mutation in source gene q
	// puts target gene p in state s.
	Effects [NumStates]mat.Matrix
}

// Dims returns the number of clones and genes.
func (in *Input) Dims() (clones, genes int) {
	if in.Mutations == nil {
		return 0, 0
	}
	return in.Mutations.Dims()
}

// Params are the tuning scalars of the model.
type Params struct {
	// Eps is the slack used to turn strict inequalities into closed ones.
	Eps float64
	// Alpha is the neutrality threshold: edges with Z⁰ ≥ Alpha−Eps are ignored.
	Alpha float64
}

// DefaultParams returns Eps = 1e-5 and Alpha = 0.99.
func DefaultParams() Params {
	return Params{Eps: DefaultEps, Alpha: DefaultAlpha}
}

// Validate checks that Alpha lies in (0,1) and Eps is a non-negative number.
func (p Params) Validate() error {
	if math.IsNaN(p.Alpha) || p.Alpha <= 0 || p.Alpha >= 1 {
		return &ValueError{Field: "alpha", Value: p.Alpha, Reason: "must lie in (0, 1)"}
	}
	if math.IsNaN(p.Eps) || math.IsInf(p.Eps, 0) || p.Eps < 0 {
		return &ValueError{Field: "eps", Value: p.Eps, Reason: "must be a non-negative number"}
	}
	return nil
}

// Validate checks dimensions first, then value domains. It returns an error
// matching ErrInputShape, ErrInvalidProbability or ErrInvalidInput.
func (in *Input) Validate() error {
	if err := in.validateShape(); err != nil {
		return err
	}
	if err := in.validateValues(); err != nil {
		return err
	}
	return in.validateEffects()
}

func (in *Input) validateShape() error {
	if in.Mutations == nil {
		return &ShapeError{Field: "B", Got: "nil", Want: "clones x genes"}
	}
	n, m := in.Mutations.Dims()
	if n == 0 || m == 0 {
		return &ShapeError{Field: "B", Got: dims(n, m), Want: "at least 1x1"}
	}
	vectors := []struct {
		name string
		v    []float64
		want int
	}{
		{"u", in.Mixture, n},
		{"e", in.Normal, m},
		{"d", in.Tumor, m},
	}
	for _, vec := range vectors {
		if len(vec.v) != vec.want {
			return &ShapeError{Field: vec.name, Got: strconv.Itoa(len(vec.v)), Want: strconv.Itoa(vec.want)}
		}
	}
	for _, s := range States {
		z := in.Effects[s]
		if z == nil {
			return &ShapeError{Field: "Z_" + s.String(), Got: "nil", Want: dims(m, m)}
		}
		if r, c := z.Dims(); r != m || c != m {
			return &ShapeError{Field: "Z_" + s.String(), Got: dims(r, c), Want: dims(m, m)}
		}
	}
	return nil
}

func (in *Input) validateValues() error {
	n, m := in.Mutations.Dims()
	for i := 0; i < n; i++ {
		for p := 0; p < m; p++ {
			if b := in.Mutations.At(i, p); b != 0 && b != 1 {
				return &ValueError{Field: fmt.Sprintf("B[%d,%d]", i, p), Value: b, Reason: "must be 0 or 1"}
			}
		}
	}
	for p, e := range in.Normal {
		if math.IsNaN(e) || e < 0 || e > 1 {
			return &ValueError{Field: fmt.Sprintf("e[%d]", p), Value: e, Reason: "must lie in [0, 1]"}
		}
	}
	for i, u := range in.Mixture {
		if math.IsNaN(u) || u < 0 {
			return &ValueError{Field: fmt.Sprintf("u[%d]", i), Value: u, Reason: "must be non-negative"}
		}
	}
	if sum := floats.Sum(in.Mixture); math.Abs(sum-1) > ProbabilityTolerance {
		return &ValueError{Field: "sum(u)", Value: sum, Reason: "must be 1"}
	}
	for p, d := range in.Tumor {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return &ValueError{Field: fmt.Sprintf("d[%d]", p), Value: d, Reason: "must be finite"}
		}
	}
	return nil
}

func (in *Input) validateEffects() error {
	_, m := in.Mutations.Dims()
	for q := 0; q < m; q++ {
		for p := 0; p < m; p++ {
			sum := 0.0
			for _, s := range States {
				z := in.Effects[s].At(q, p)
				if math.IsNaN(z) || z <= 0 {
					return &ProbabilityError{
						Field:  fmt.Sprintf("Z_%s[%d,%d]", s, q, p),
						Value:  z,
						Reason: "must be strictly positive",
					}
				}
				sum += z
			}
			if math.Abs(sum-1) > ProbabilityTolerance {
				return &ProbabilityError{
					Field:  fmt.Sprintf("Z[%d,%d]", q, p),
					Value:  sum,
					Reason: "Z_minus + Z_zero + Z_plus must be 1",
				}
			}
		}
	}
	return nil
}
