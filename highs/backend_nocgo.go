//go:build !cgo || !(linux || darwin)

package highs

import (
	"context"

	"github.com/bartolsthoorn/clonereg/milp"
)

// Backend is a milp.Solver backed by HiGHS. This build has no cgo support,
// so every solve fails with milp.ErrSolverUnavailable.
type Backend struct {
	opts []Option
}

var _ milp.Solver = (*Backend)(nil)

// New returns a HiGHS backend configured with opts.
func New(opts ...Option) *Backend {
	return &Backend{opts: opts}
}

// Solve always reports milp.ErrSolverUnavailable.
func (b *Backend) Solve(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &milp.Error{Op: "Solve", Err: milp.ErrSolverUnavailable}
}
