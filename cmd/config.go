package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hpfold/hpfold/sim"
)

// RunFile is the YAML form of a run: the input sequence plus every
// sim.Config field at top level.
// All top-level keys must be listed to satisfy KnownFields(true) strict parsing.
type RunFile struct {
	Input  string `yaml:"input"` // amino acids or FASTA path
	HP     string `yaml:"hp"`    // raw H/P sequence
	Algo   string `yaml:"algo"`  // mc, remc or both; overrides algorithm
	Output string `yaml:"output"`

	Config sim.Config `yaml:",inline"`
}

// loadRunFile parses path on top of the defaults in base.
// Uses strict field checking: typos must cause errors.
func loadRunFile(path string, base sim.Config) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	rf := RunFile{Config: base}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil {
		return nil, fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return &rf, nil
}

// runOptions is everything the run command needs, after merging defaults,
// the optional config file and explicitly set flags.
type runOptions struct {
	Input     string
	HP        string
	Algo      string
	Config    sim.Config
	OutDir    string
	NoFiles   bool
	Trace     string
	StoreKind string
	StorePath string
	Metrics   bool
}

// resolveRunOptions merges the config file (if any) under the flags that
// were explicitly set on the command line.
func resolveRunOptions(flags *pflag.FlagSet) (runOptions, error) {
	opts := runOptions{
		Input:     inputArg,
		HP:        hpArg,
		Algo:      algo,
		OutDir:    outDir,
		NoFiles:   noFiles,
		Trace:     traceLevel,
		StoreKind: storeKind,
		StorePath: storePath,
		Metrics:   printMetrics,
	}
	cfg := sim.DefaultConfig()

	if configPath != "" {
		rf, err := loadRunFile(configPath, cfg)
		if err != nil {
			return opts, err
		}
		cfg = rf.Config
		// A sequence given on the command line replaces the file's, whichever
		// form either side uses.
		if !flags.Changed("input") && !flags.Changed("hp") {
			opts.Input = rf.Input
			opts.HP = rf.HP
		}
		if !flags.Changed("algo") && rf.Algo != "" {
			opts.Algo = rf.Algo
		}
		if !flags.Changed("out") && rf.Output != "" {
			opts.OutDir = rf.Output
		}
		if !flags.Changed("algo") && rf.Algo == "" && rf.Config.Algorithm != "" {
			opts.Algo = string(rf.Config.Algorithm)
		}
	}

	if flags.Changed("moves") {
		cfg.MoveSet = sim.MoveSet(moveSet)
	}
	if flags.Changed("rho") {
		cfg.Rho = rho
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("seed") {
		cfg = cfg.WithSeed(seed)
	}
	if flags.Changed("init") {
		cfg.Init = sim.InitMode(initMode)
	}
	if flags.Changed("check-invariants") {
		cfg.CheckInvariants = checkInvariants
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("replicas") {
		cfg.Replicas = replicas
	}
	if flags.Changed("tmin") {
		cfg.TMin = tMin
	}
	if flags.Changed("tmax") {
		cfg.TMax = tMax
	}
	if flags.Changed("exchange-every") {
		cfg.ExchangeEvery = exchangeEvery
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	opts.Config = cfg

	switch opts.Algo {
	case "mc", "remc", "both":
	default:
		return opts, fmt.Errorf("unknown --algo %q; valid: mc, remc, both", opts.Algo)
	}
	if (opts.Input == "") == (opts.HP == "") {
		return opts, fmt.Errorf("exactly one of --input (amino acids or FASTA path) or --hp must be given")
	}
	return opts, nil
}

// algorithms expands --algo into the engines to run.
func (o runOptions) algorithms() []sim.Algorithm {
	switch o.Algo {
	case "remc":
		return []sim.Algorithm{sim.AlgorithmREMC}
	case "both":
		return []sim.Algorithm{sim.AlgorithmMC, sim.AlgorithmREMC}
	}
	return []sim.Algorithm{sim.AlgorithmMC}
}
