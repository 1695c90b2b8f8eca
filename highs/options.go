package highs

// Option configures the solver behavior.
type Option func(*config)

type config struct {
	output     *bool
	timeLimit  *float64
	mipAbsGap  *float64
	mipRelGap  *float64
	threads    *int
	presolve   *string
	randomSeed *int
}

// optionSetter is the subset of a HiGHS instance used to apply options.
type optionSetter interface {
	setBoolOption(name string, value bool) error
	setIntOption(name string, value int) error
	setFloatOption(name string, value float64) error
	setStringOption(name, value string) error
}

// defaultConfig silences the solver log; HiGHS writes to stdout otherwise.
func defaultConfig() *config {
	off := false
	return &config{output: &off}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) apply(s optionSetter) error {
	if c.output != nil {
		if err := s.setBoolOption("output_flag", *c.output); err != nil {
			return err
		}
	}
	if c.timeLimit != nil {
		if err := s.setFloatOption("time_limit", *c.timeLimit); err != nil {
			return err
		}
	}
	if c.mipAbsGap != nil {
		if err := s.setFloatOption("mip_abs_gap", *c.mipAbsGap); err != nil {
			return err
		}
	}
	if c.mipRelGap != nil {
		if err := s.setFloatOption("mip_rel_gap", *c.mipRelGap); err != nil {
			return err
		}
	}
	if c.threads != nil {
		if err := s.setIntOption("threads", *c.threads); err != nil {
			return err
		}
	}
	if c.presolve != nil {
		if err := s.setStringOption("presolve", *c.presolve); err != nil {
			return err
		}
	}
	if c.randomSeed != nil {
		if err := s.setIntOption("random_seed", *c.randomSeed); err != nil {
			return err
		}
	}
	return nil
}

// WithOutput enables or disables solver output. Output is off by default.
func WithOutput(enabled bool) Option {
	return func(c *config) {
		c.output = &enabled
	}
}

// WithTimeLimit sets the time limit in seconds. A solve that hits the limit
// fails with milp.ErrNotOptimal.
func WithTimeLimit(seconds float64) Option {
	return func(c *config) {
		c.timeLimit = &seconds
	}
}

// WithMIPAbsGap sets the absolute MIP gap tolerance.
func WithMIPAbsGap(gap float64) Option {
	return func(c *config) {
		c.mipAbsGap = &gap
	}
}

// WithMIPRelGap sets the relative MIP gap tolerance.
func WithMIPRelGap(gap float64) Option {
	return func(c *config) {
		c.mipRelGap = &gap
	}
}

// WithThreads sets the number of threads to use.
func WithThreads(n int) Option {
	return func(c *config) {
		c.threads = &n
	}
}

// WithPresolve sets the presolve mode ("off", "choose", "on").
func WithPresolve(mode string) Option {
	return func(c *config) {
		c.presolve = &mode
	}
}

// WithRandomSeed fixes the seed HiGHS uses for tie-breaking.
func WithRandomSeed(seed int) Option {
	return func(c *config) {
		c.randomSeed = &seed
	}
}
