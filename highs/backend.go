//go:build cgo && (linux || darwin)

package highs

import (
	"context"
	"errors"
	"fmt"

	"github.com/bartolsthoorn/clonereg/milp"
)

// Backend is a milp.Solver backed by HiGHS. Each Solve call uses a fresh
// native instance, so a Backend may be shared between goroutines.
type Backend struct {
	opts []Option
}

var _ milp.Solver = (*Backend)(nil)

// New returns a HiGHS backend configured with opts.
func New(opts ...Option) *Backend {
	return &Backend{opts: opts}
}

// Solve passes m to HiGHS and blocks until the solve ends. The context is
// only checked before the solve starts; use WithTimeLimit to bound it.
func (b *Backend) Solve(ctx context.Context, m *milp.Model) (*milp.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &milp.Error{Op: "Solve", Err: errors.New("nil model")}
	}
	if m.NumVars() == 0 {
		return &milp.Solution{Status: milp.StatusOptimal}, nil
	}

	h, err := newInstance()
	if err != nil {
		return nil, &milp.Error{Op: "Solve", Err: fmt.Errorf("%w: %v", milp.ErrSolverUnavailable, err)}
	}
	defer h.close()

	if err := newConfig(b.opts).apply(h); err != nil {
		return nil, &milp.Error{Op: "SetOption", Err: err}
	}

	lp := toRowwise(m)
	if err := h.passModel(lp); err != nil {
		return nil, &milp.Error{Op: "PassModel", Err: err}
	}

	st, err := h.run()
	if err != nil {
		return nil, &milp.Error{Op: "Run", Status: st, Err: err}
	}
	if err := milp.ErrorForStatus("Solve", st); err != nil {
		return nil, err
	}

	values, objective := h.solution(lp.numCol, lp.numRow)
	return &milp.Solution{
		Status:    st,
		Values:    values,
		Objective: objective,
	}, nil
}
