package sim

import "math"

// Algorithm selects the search driver.
type Algorithm string

const (
	AlgorithmMC   Algorithm = "mc"
	AlgorithmREMC Algorithm = "remc"
)

// InitMode selects the starting conformation.
type InitMode string

const (
	InitLine   InitMode = "line"   // straight chain along +X
	InitRandom InitMode = "random" // random self-avoiding walk
)

// MaxSteps is the hard cap on the step budget of any run.
const MaxSteps = 10000

// Config is the configuration bundle of one folding run. Loaded from YAML
// by the CLI (strict field checking) and overridden by explicit flags.
type Config struct {
	Algorithm       Algorithm `yaml:"algorithm"`
	MoveSet         MoveSet   `yaml:"move_set"`
	Rho             float64   `yaml:"rho"`   // hybrid only: probability of trying Pull first
	Steps           int       `yaml:"steps"` // MC steps or REMC rounds, ≤ MaxSteps
	Seed            *int64    `yaml:"seed,omitempty"`
	Init            InitMode  `yaml:"init"`
	CheckInvariants bool      `yaml:"check_invariants"` // validate the walk after every applied move

	// MC
	Temperature float64 `yaml:"temperature"`

	// REMC
	Replicas      int     `yaml:"replicas"`
	TMin          float64 `yaml:"t_min"`
	TMax          float64 `yaml:"t_max"`
	ExchangeEvery int     `yaml:"exchange_every"`
	Parallel      bool    `yaml:"parallel"` // step replicas on separate goroutines
}

// DefaultConfig returns the CLI defaults.
func DefaultConfig() Config {
	return Config{
		Algorithm:     AlgorithmMC,
		MoveSet:       MoveSetHybrid,
		Rho:           0.5,
		Steps:         5000,
		Init:          InitLine,
		Temperature:   1.0,
		Replicas:      8,
		TMin:          0.5,
		TMax:          3.0,
		ExchangeEvery: 10,
	}
}

// WithSeed returns a copy of c with the seed set.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// Validate checks every field relevant to the selected algorithm. It never
// corrects a value; the first offending field is reported as a *ConfigError.
func (c Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmMC, AlgorithmREMC:
	default:
		return configErrorf("algorithm", "unknown algorithm %q; valid: mc, remc", c.Algorithm)
	}
	if !validMoveSets[c.MoveSet] {
		return configErrorf("move_set", "unknown move set %q; valid: vshd, pull, hybrid", c.MoveSet)
	}
	if math.IsNaN(c.Rho) || c.Rho < 0 || c.Rho > 1 {
		return configErrorf("rho", "must be in [0, 1], got %g", c.Rho)
	}
	if c.Steps < 1 || c.Steps > MaxSteps {
		return configErrorf("steps", "must be in [1, %d], got %d", MaxSteps, c.Steps)
	}
	switch c.Init {
	case InitLine, InitRandom, "":
	default:
		return configErrorf("init", "unknown init mode %q; valid: line, random", c.Init)
	}

	if c.Algorithm == AlgorithmMC {
		if !finitePositive(c.Temperature) {
			return configErrorf("temperature", "must be a finite positive number, got %g", c.Temperature)
		}
		return nil
	}

	if c.Replicas < 2 {
		return configErrorf("replicas", "replica exchange needs at least 2 replicas, got %d", c.Replicas)
	}
	if !finitePositive(c.TMin) || !finitePositive(c.TMax) {
		return configErrorf("t_min", "temperatures must be finite positive numbers, got t_min=%g t_max=%g", c.TMin, c.TMax)
	}
	if c.TMin >= c.TMax {
		return configErrorf("t_min", "t_min must be below t_max, got t_min=%g t_max=%g", c.TMin, c.TMax)
	}
	if c.ExchangeEvery < 1 {
		return configErrorf("exchange_every", "must be at least 1, got %d", c.ExchangeEvery)
	}
	return nil
}

// ValidateSequence rejects chains too short to fold.
func ValidateSequence(seq Sequence) error {
	if len(seq) < 2 {
		return configErrorf("sequence", "needs at least 2 residues, got %d", len(seq))
	}
	return nil
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
