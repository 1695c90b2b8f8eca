// Package pipeline runs one inference end to end: load the instance, build
// the model, solve it, read the result back, verify it and write the reports.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bartolsthoorn/clonereg/config"
	"github.com/bartolsthoorn/clonereg/dataio"
	"github.com/bartolsthoorn/clonereg/infer"
	"github.com/bartolsthoorn/clonereg/milp"
)

// Stages of a run, in order. They appear in Error.Stage.
const (
	StageConfig  = "config"
	StageLoad    = "load"
	StageBuild   = "build"
	StageSolve   = "solve"
	StageExtract = "extract"
	StageCheck   = "check"
	StageWrite   = "write"
)

// Error reports the stage a run failed in.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline: %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options tune a run beyond its configuration.
type Options struct {
	// Logger receives one line per stage. Nil discards.
	Logger *log.Logger

	// Tolerance is the numeric slack of the result check. Zero means
	// infer.CheckTolerance.
	Tolerance float64
}

// Report describes a successful run.
type Report struct {
	Problem *infer.Problem
	Result  *infer.Result
	Elapsed time.Duration
}

// Run executes cfg with solver. Nothing is written to the output directory
// unless the solved result passes its check.
func Run(ctx context.Context, cfg config.Config, solver milp.Solver, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tol := opts.Tolerance
	if tol == 0 {
		tol = infer.CheckTolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, &Error{Stage: StageConfig, Err: err}
	}
	params := cfg.Params()

	inst, err := dataio.LoadInstance(cfg.InputDir)
	if err != nil {
		return nil, &Error{Stage: StageLoad, Err: err}
	}
	n, m := inst.Input.Dims()
	logger.Printf("loaded %s: %d clones, %d genes", cfg.InputDir, n, m)

	prob, err := infer.Build(inst.Input, params)
	if err != nil {
		return nil, &Error{Stage: StageBuild, Err: err}
	}
	model := prob.Model
	logger.Printf("built model: %d variables (%d binary), %d constraints, %d nonzeros, %d active edges, %d uninformed cells",
		model.NumVars(), model.NumBinary(), model.NumConstraints(), model.NumNonzeros(),
		prob.Influence.Edges(), prob.Influence.Uninformed())

	start := time.Now()
	sol, err := solver.Solve(ctx, model)
	elapsed := time.Since(start)
	if err != nil {
		return nil, &Error{Stage: StageSolve, Err: err}
	}
	// The solve itself does not observe ctx.
	if err := ctx.Err(); err != nil {
		return nil, &Error{Stage: StageSolve, Err: err}
	}
	logger.Printf("solved in %s: status %s, objective %g", elapsed.Round(time.Millisecond), sol.Status, sol.Objective)

	res, err := infer.Extract(prob.Layout, sol)
	if err != nil {
		return nil, &Error{Stage: StageExtract, Err: err}
	}
	if err := res.Check(inst.Input, params, tol); err != nil {
		return nil, &Error{Stage: StageCheck, Err: err}
	}

	summary := &dataio.Summary{
		Instance:  inst,
		Params:    params,
		Influence: prob.Influence,
		Result:    res,
		Elapsed:   elapsed,
	}
	outputs := []struct {
		name  string
		write func(io.Writer) error
	}{
		{dataio.ModelFile, model.WriteLP},
		{dataio.SolutionFile, func(w io.Writer) error { return dataio.WriteMatrix(w, res.C) }},
		{dataio.SignFile, func(w io.Writer) error { return dataio.WriteMatrix(w, res.Sign) }},
		{dataio.SummaryFile, func(w io.Writer) error { return dataio.WriteSummary(w, summary) }},
	}
	for _, out := range outputs {
		if err := dataio.WriteFile(cfg.OutputDir, out.name, out.write); err != nil {
			return nil, &Error{Stage: StageWrite, Err: err}
		}
	}
	logger.Printf("wrote results to %s", cfg.OutputDir)

	return &Report{Problem: prob, Result: res, Elapsed: elapsed}, nil
}
