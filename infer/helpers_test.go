package infer_test

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bartolsthoorn/clonereg/infer"
)

func dense(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return m
}

// uniformEffects returns Z matrices with the same triple in every entry.
func uniformEffects(genes int, minus, zero, plus float64) [infer.NumStates]mat.Matrix {
	fill := func(v float64) *mat.Dense {
		data := make([]float64, genes*genes)
		for i := range data {
			data[i] = v
		}
		return mat.NewDense(genes, genes, data)
	}
	return [infer.NumStates]mat.Matrix{fill(minus), fill(zero), fill(plus)}
}

// twoByTwo has two clones mixed half and half over two genes at baseline 0.5.
// Clone 0 carries a mutation in gene 0 with an informative edge 0→0.
func twoByTwo() *infer.Input {
	z := [infer.NumStates]mat.Matrix{
		dense([][]float64{{0.2, 0.002}, {0.005, 0.005}}),
		dense([][]float64{{0.5, 0.995}, {0.99, 0.99}}),
		dense([][]float64{{0.3, 0.003}, {0.005, 0.005}}),
	}
	return &infer.Input{
		Mutations: dense([][]float64{{1, 0}, {0, 0}}),
		Normal:    []float64{0.5, 0.5},
		Mixture:   []float64{0.5, 0.5},
		Tumor:     []float64{0.5, 0.5},
		Effects:   z,
	}
}

// assignment encodes C and a state per entry as model values, with the
// product variables set to their exact products.
func assignment(l infer.Layout, c [][]float64, states [][]infer.State) []float64 {
	vals := make([]float64, l.NumVars())
	for i := range c {
		for p := range c[i] {
			s := states[i][p]
			vals[l.Value(i, p)] = c[i][p]
			vals[l.Selector(s, i, p)] = 1
			if s != infer.Neutral {
				vals[l.Product(s, i, p)] = c[i][p]
			}
		}
	}
	return vals
}
