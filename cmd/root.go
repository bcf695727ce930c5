package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpfold/hpfold/sim"
)

var (
	// CLI flags for the input and outputs
	configPath   string // YAML run config, overridden by explicitly set flags
	inputArg     string // Amino-acid string or FASTA path
	hpArg        string // Raw H/P sequence
	algo         string // mc, remc or both
	outDir       string // Output directory; default output/run_<timestamp>
	noFiles      bool   // Skip writing the CSV and JSON outputs
	traceLevel   string // none, steps or exchanges
	storeKind    string // Run store backend: none, memory or sqlite
	storePath    string // SQLite database path
	printMetrics bool   // Print the hpfold_* counters at run end
	logLevel     string // Log verbosity level

	// CLI flags for the search
	moveSet         string  // vshd, pull or hybrid
	rho             float64 // Hybrid: probability of trying Pull first
	steps           int     // MC steps or REMC rounds
	seed            int64   // Master seed; time-based when unset
	initMode        string  // line or random
	checkInvariants bool    // Validate the walk after every applied move
	temperature     float64 // MC temperature
	replicas        int     // REMC replica count
	tMin            float64 // Lowest ladder temperature
	tMax            float64 // Highest ladder temperature
	exchangeEvery   int     // Rounds between exchange phases
	parallel        bool    // Step replicas concurrently
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "hpfold",
	Short: "Monte Carlo and replica exchange folding of HP lattice proteins",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd folds one sequence using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fold a sequence with MC, REMC or both",
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := resolveRunOptions(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if _, err := executeRun(ctx, opts, os.Stdout); err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		logrus.Info("Run complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := sim.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Input and outputs
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run config; explicit flags override it")
	runCmd.Flags().StringVar(&inputArg, "input", "", "Amino-acid sequence or path to a FASTA file")
	runCmd.Flags().StringVar(&hpArg, "hp", "", "Raw H/P sequence, e.g. HPHPPHHPHPPHPHHPPHPH")
	runCmd.Flags().StringVar(&algo, "algo", "mc", "Search algorithm: mc, remc or both")
	runCmd.Flags().StringVar(&outDir, "out", "", "Output directory (default output/run_<timestamp>)")
	runCmd.Flags().BoolVar(&noFiles, "no-files", false, "Do not write energy trace and best fold files")
	runCmd.Flags().StringVar(&traceLevel, "trace", "steps", "Trace level: none, steps or exchanges")
	runCmd.Flags().StringVar(&storeKind, "store", "none", "Persist run records: none, memory or sqlite")
	runCmd.Flags().StringVar(&storePath, "store-path", "hpfold.db", "SQLite database path for --store sqlite")
	runCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print move, Metropolis and exchange counters at run end")

	// Search
	runCmd.Flags().StringVar(&moveSet, "moves", string(defaults.MoveSet), "Move set: vshd, pull or hybrid")
	runCmd.Flags().Float64Var(&rho, "rho", defaults.Rho, "Hybrid only: probability of trying a pull move first")
	runCmd.Flags().IntVar(&steps, "steps", defaults.Steps, "MC steps or REMC rounds (at most 10000)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed (default derived from the clock)")
	runCmd.Flags().StringVar(&initMode, "init", string(defaults.Init), "Initial conformation: line or random")
	runCmd.Flags().BoolVar(&checkInvariants, "check-invariants", false, "Validate the walk after every applied move")

	// MC
	runCmd.Flags().Float64Var(&temperature, "temperature", defaults.Temperature, "MC temperature")

	// REMC
	runCmd.Flags().IntVar(&replicas, "replicas", defaults.Replicas, "Number of replicas")
	runCmd.Flags().Float64Var(&tMin, "tmin", defaults.TMin, "Lowest ladder temperature")
	runCmd.Flags().Float64Var(&tMax, "tmax", defaults.TMax, "Highest ladder temperature")
	runCmd.Flags().IntVar(&exchangeEvery, "exchange-every", defaults.ExchangeEvery, "Rounds between exchange phases")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "Step replicas concurrently within a round")

	rootCmd.AddCommand(runCmd)
}
