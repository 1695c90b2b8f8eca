// Package config holds the run configuration of clonereg: paths, the model
// tuning scalars and solver settings. Values come from Default, optionally
// overlaid by a YAML file and then by command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bartolsthoorn/clonereg/infer"
)

// ErrInvalid is matched by every error returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is a complete run configuration.
type Config struct {
	InputDir  string  `yaml:"input_dir"`
	OutputDir string  `yaml:"output_dir"`
	Alpha     float64 `yaml:"alpha"`
	Eps       float64 `yaml:"eps"`
	Verbose   bool    `yaml:"verbose"`
	Solver    Solver  `yaml:"solver"`
}

// Solver configures the MILP backend. Zero values and nil pointers leave the
// backend default in place.
type Solver struct {
	// TimeLimit in seconds; 0 means no limit.
	TimeLimit  float64  `yaml:"time_limit"`
	MIPRelGap  *float64 `yaml:"mip_rel_gap"`
	MIPAbsGap  *float64 `yaml:"mip_abs_gap"`
	Threads    int      `yaml:"threads"`
	Presolve   string   `yaml:"presolve"`
	RandomSeed *int     `yaml:"random_seed"`
	// Output enables the solver's own log.
	Output bool `yaml:"output"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		OutputDir: ".",
		Alpha:     infer.DefaultAlpha,
		Eps:       infer.DefaultEps,
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected. The
// result is not validated, since flags may still override it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default. An empty document yields the
// defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Params returns the model tuning scalars.
func (c Config) Params() infer.Params {
	return infer.Params{Eps: c.Eps, Alpha: c.Alpha}
}

// Validate reports the first invalid setting. The error matches ErrInvalid.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return invalid("input_dir is required")
	}
	if c.OutputDir == "" {
		return invalid("output_dir is required")
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return c.Solver.validate()
}

func (s Solver) validate() error {
	if math.IsNaN(s.TimeLimit) || s.TimeLimit < 0 {
		return invalid("solver.time_limit must be non-negative, got %g", s.TimeLimit)
	}
	if s.MIPRelGap != nil && !(*s.MIPRelGap >= 0) {
		return invalid("solver.mip_rel_gap must be non-negative, got %g", *s.MIPRelGap)
	}
	if s.MIPAbsGap != nil && !(*s.MIPAbsGap >= 0) {
		return invalid("solver.mip_abs_gap must be non-negative, got %g", *s.MIPAbsGap)
	}
	if s.Threads < 0 {
		return invalid("solver.threads must be non-negative, got %d", s.Threads)
	}
	switch s.Presolve {
	case "", "off", "choose", "on":
	default:
		return invalid("solver.presolve must be off, choose or on, got %q", s.Presolve)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
