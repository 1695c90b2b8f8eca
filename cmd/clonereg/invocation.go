package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/bartolsthoorn/clonereg/config"
	"github.com/bartolsthoorn/clonereg/highs"
)

const (
	ExitSuccess           = 0
	ExitRunFailure        = 1
	ExitInvalidInvocation = 2
)

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

// ParseInvocation turns command-line arguments into a validated run
// configuration. Flags that are set explicitly override the --config file,
// which overrides the defaults.
func ParseInvocation(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("clonereg", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	def := config.Default()
	var (
		configPath string
		cli        config.Config
		mipGap     float64
	)
	fs.StringVar(&cli.InputDir, "input_dir", "", "Directory with B.txt, u.txt, e.txt, d.txt and Z_*.txt. Required.")
	fs.StringVar(&cli.OutputDir, "output_dir", def.OutputDir, "Directory for the output_* files.")
	fs.Float64Var(&cli.Alpha, "alpha", def.Alpha, "Neutrality threshold on Z_zero.")
	fs.Float64Var(&cli.Eps, "eps", def.Eps, "Slack for strict inequalities.")
	fs.StringVar(&configPath, "config", "", "YAML configuration file (optional).")
	fs.Float64Var(&cli.Solver.TimeLimit, "time_limit", 0, "Solver time limit in seconds; 0 means none.")
	fs.Float64Var(&mipGap, "mip_gap", 0, "Relative MIP gap at which the solver stops.")
	fs.IntVar(&cli.Solver.Threads, "threads", 0, "Solver threads; 0 leaves the solver default.")
	fs.BoolVar(&cli.Verbose, "verbose", false, "Log every stage and show the solver log.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.Config{}, &InvocationError{ExitCode: ExitSuccess, Message: usage(fs)}
		}
		return config.Config{}, invalidInvocationf("%v", err)
	}
	if fs.NArg() != 0 {
		return config.Config{}, invalidInvocationf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}

	cfg := def
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, invalidInvocationf("%v", err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input_dir":
			cfg.InputDir = cli.InputDir
		case "output_dir":
			cfg.OutputDir = cli.OutputDir
		case "alpha":
			cfg.Alpha = cli.Alpha
		case "eps":
			cfg.Eps = cli.Eps
		case "time_limit":
			cfg.Solver.TimeLimit = cli.Solver.TimeLimit
		case "mip_gap":
			cfg.Solver.MIPRelGap = &mipGap
		case "threads":
			cfg.Solver.Threads = cli.Solver.Threads
		case "verbose":
			cfg.Verbose = cli.Verbose
		}
	})

	if cfg.InputDir == "" {
		return config.Config{}, invalidInvocationf("--input_dir is required")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, invalidInvocationf("%v", err)
	}
	return cfg, nil
}

func usage(fs *flag.FlagSet) string {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "Usage: clonereg --input_dir DIR [flags]")
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	return strings.TrimRight(buf.String(), "\n")
}

// solverOptions maps the solver section onto HiGHS options.
func solverOptions(s config.Solver, verbose bool) []highs.Option {
	opts := []highs.Option{highs.WithOutput(s.Output || verbose)}
	if s.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(s.TimeLimit))
	}
	if s.MIPRelGap != nil {
		opts = append(opts, highs.WithMIPRelGap(*s.MIPRelGap))
	}
	if s.MIPAbsGap != nil {
		opts = append(opts, highs.WithMIPAbsGap(*s.MIPAbsGap))
	}
	if s.Threads > 0 {
		opts = append(opts, highs.WithThreads(s.Threads))
	}
	if s.Presolve != "" {
		opts = append(opts, highs.WithPresolve(s.Presolve))
	}
	if s.RandomSeed != nil {
		opts = append(opts, highs.WithRandomSeed(*s.RandomSeed))
	}
	return opts
}
