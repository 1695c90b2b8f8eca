// Package highs solves milp models with the HiGHS linear optimization solver.
//
// HiGHS is a high-performance solver for linear programming (LP) and
// mixed-integer programming (MIP) problems. The package links against a
// system installation of HiGHS located through pkg-config (highs.pc), so the
// HiGHS development files must be installed to build it with cgo. Without
// cgo, Backend.Solve always fails with milp.ErrSolverUnavailable.
//
// The solver-backed tests in highs_test.go carry the same build constraint:
// they only run with CGO_ENABLED=1 and highs.pc on PKG_CONFIG_PATH, e.g.
//
//	PKG_CONFIG_PATH=/opt/highs/lib/pkgconfig CGO_ENABLED=1 go test ./highs/...
//
// # Example
//
//	solver := highs.New(highs.WithTimeLimit(60), highs.WithThreads(4))
//	solution, err := solver.Solve(ctx, model)
//	if errors.Is(err, milp.ErrInfeasible) {
//		// relax the model and retry
//	}
package highs
