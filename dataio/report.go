package dataio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/bartolsthoorn/clonereg/infer"
)

// Deviation compares a solved C against ground truth.
type Deviation struct {
	// Norm is ‖C−C*‖_F divided by the number of entries.
	Norm float64
	// MeanAbs is the mean of |C−C*|.
	MeanAbs float64
	// Correlation is the Pearson correlation of the flattened matrices.
	// It is 0 when either matrix is constant.
	Correlation float64

	// SignAgreement is the fraction of entries whose sign matches C_sign.
	// It is only set when HasSign is true.
	SignAgreement float64
	HasSign       bool
}

// Compare computes the deviation of res from truth and, when truthSign is not
// nil, the sign agreement. truth and truthSign must have the shape of res.C.
func Compare(res *infer.Result, truth, truthSign mat.Matrix) (Deviation, error) {
	var dev Deviation
	n, m := res.C.Dims()
	if r, c := truth.Dims(); r != n || c != m {
		return dev, fmt.Errorf("dataio: ground truth is %dx%d, want %dx%d", r, c, n, m)
	}

	var diff mat.Dense
	diff.Sub(res.C, truth)
	dev.Norm = mat.Norm(&diff, 2) / float64(n*m)

	solved := make(stats.Float64Data, 0, n*m)
	want := make(stats.Float64Data, 0, n*m)
	abs := make(stats.Float64Data, 0, n*m)
	for i := 0; i < n; i++ {
		for p := 0; p < m; p++ {
			solved = append(solved, res.C.At(i, p))
			want = append(want, truth.At(i, p))
			abs = append(abs, math.Abs(diff.At(i, p)))
		}
	}
	var err error
	if dev.MeanAbs, err = stats.Mean(abs); err != nil {
		return dev, fmt.Errorf("dataio: mean deviation: %w", err)
	}
	if dev.Correlation, err = stats.Correlation(solved, want); err != nil {
		return dev, fmt.Errorf("dataio: correlation: %w", err)
	}

	if truthSign == nil {
		return dev, nil
	}
	if r, c := truthSign.Dims(); r != n || c != m {
		return dev, fmt.Errorf("dataio: ground truth sign is %dx%d, want %dx%d", r, c, n, m)
	}
	agree := 0
	for i := 0; i < n; i++ {
		for p := 0; p < m; p++ {
			if res.Sign.At(i, p) == truthSign.At(i, p) {
				agree++
			}
		}
	}
	dev.SignAgreement = float64(agree) / float64(n*m)
	dev.HasSign = true
	return dev, nil
}

// Summary is everything reported about one solved instance.
type Summary struct {
	Instance  *Instance
	Params    infer.Params
	Influence infer.Influence
	Result    *infer.Result
	Elapsed   time.Duration
}

// WriteSummary writes a human-readable report of s.
func WriteSummary(w io.Writer, s *Summary) error {
	in := s.Instance.Input
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Input:")
	writeMatrix(bw, "B", in.Mutations)
	fmt.Fprintf(bw, "u = %v\n", in.Mixture)
	fmt.Fprintf(bw, "d = %v\n", in.Tumor)
	fmt.Fprintf(bw, "e = %v\n", in.Normal)
	if s.Instance.Truth != nil {
		writeMatrix(bw, "C", s.Instance.Truth)
	}
	if s.Instance.TruthSign != nil {
		writeMatrix(bw, "C_sign", s.Instance.TruthSign)
	}
	fmt.Fprintf(bw, "eps = %g\n", s.Params.Eps)
	fmt.Fprintf(bw, "alpha = %g\n", s.Params.Alpha)
	fmt.Fprintf(bw, "active influence edges = %d\n", s.Influence.Edges())
	fmt.Fprintf(bw, "uninformed cells = %d\n", s.Influence.Uninformed())

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Solution:")
	fmt.Fprintf(bw, "objective = %g\n", s.Result.Objective)
	writeMatrix(bw, "solution", s.Result.C)
	writeMatrix(bw, "solution_sign", s.Result.Sign)
	if s.Elapsed > 0 {
		fmt.Fprintf(bw, "solve time = %s\n", s.Elapsed.Round(time.Millisecond))
	}

	if s.Instance.Truth != nil {
		dev, err := Compare(s.Result, s.Instance.Truth, signOrNil(s.Instance.TruthSign))
		if err != nil {
			return err
		}
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "Deviation:")
		fmt.Fprintf(bw, "norm = %g\n", dev.Norm)
		fmt.Fprintf(bw, "mean absolute deviation = %g\n", dev.MeanAbs)
		fmt.Fprintf(bw, "correlation = %g\n", dev.Correlation)
		if dev.HasSign {
			fmt.Fprintf(bw, "sign agreement = %g\n", dev.SignAgreement)
		}
	}
	return bw.Flush()
}

// signOrNil keeps a nil *mat.Dense from becoming a non-nil mat.Matrix.
func signOrNil(d *mat.Dense) mat.Matrix {
	if d == nil {
		return nil
	}
	return d
}

func writeMatrix(w io.Writer, name string, m mat.Matrix) {
	fmt.Fprintf(w, "%s =\n%v\n", name, mat.Formatted(m, mat.Squeeze()))
}
