// Command clonereg infers per-clone expression contributions and regulatory
// states of a tumor sample and writes them to an output directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/bartolsthoorn/clonereg/highs"
	"github.com/bartolsthoorn/clonereg/pipeline"
)

func main() {
	cfg, err := ParseInvocation(os.Args[1:])
	if err != nil {
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitInvalidInvocation)
	}

	// The first interrupt cancels the run; a second one kills the process
	// while HiGHS is still busy.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	context.AfterFunc(ctx, stop)

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(os.Stderr, "clonereg: ", log.LstdFlags)
	}

	solver := highs.New(solverOptions(cfg.Solver, cfg.Verbose)...)
	rep, err := pipeline.Run(ctx, cfg, solver, pipeline.Options{Logger: logger})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(ExitRunFailure)
	}
	fmt.Printf("objective = %g, results written to %s\n", rep.Result.Objective, cfg.OutputDir)
}
