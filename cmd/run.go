package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hpfold/hpfold/sim"
	"github.com/hpfold/hpfold/sim/sequence"
	"github.com/hpfold/hpfold/sim/store"
	"github.com/hpfold/hpfold/sim/trace"
)

// loadSequence reads --hp directly or classifies --input.
func loadSequence(opts runOptions) (sim.Sequence, error) {
	if opts.HP != "" {
		return sim.ParseSequence(opts.HP)
	}
	return sequence.Parse(opts.Input)
}

// executeRun runs every requested algorithm, writes the trace CSV and best
// fold JSON per algorithm, prints a report to stdout and persists a run
// record when a store is configured.
func executeRun(ctx context.Context, opts runOptions, stdout io.Writer) ([]*sim.Result, error) {
	if !trace.IsValidTraceLevel(opts.Trace) {
		return nil, fmt.Errorf("unknown --trace level %q; valid: none, steps, exchanges", opts.Trace)
	}
	seq, err := loadSequence(opts)
	if err != nil {
		return nil, fmt.Errorf("reading sequence: %w", err)
	}
	if err := sim.ValidateSequence(seq); err != nil {
		return nil, err
	}

	// Every configuration error surfaces before the first step of any run.
	algos := opts.algorithms()
	cfg := opts.Config
	for _, a := range algos {
		c := cfg
		c.Algorithm = a
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.Seed == nil {
		key, _ := sim.KeyFromConfig(cfg)
		cfg = cfg.WithSeed(int64(key))
		logrus.Infof("No seed given; using %d", int64(key))
	}

	dir := ""
	if !opts.NoFiles {
		dir = opts.OutDir
		if dir == "" {
			dir = filepath.Join("output", "run_"+time.Now().Format("20060102_150405"))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	var st store.Store
	if opts.StoreKind != "" && opts.StoreKind != "none" {
		st, err = store.NewStore(opts.StoreKind, opts.StorePath)
		if err != nil {
			return nil, err
		}
		if err := st.Init(ctx); err != nil {
			return nil, fmt.Errorf("opening %s store: %w", opts.StoreKind, err)
		}
		defer func() {
			if err := store.CloseIfSupported(st); err != nil {
				logrus.Warnf("closing store: %v", err)
			}
		}()
	}

	level := trace.TraceLevel(opts.Trace)
	if level == "" {
		level = trace.TraceLevelSteps
	}

	results := make([]*sim.Result, 0, len(algos))
	for _, a := range algos {
		c := cfg
		c.Algorithm = a
		logrus.Infof("Starting %s on %d residues (%d H), %d steps, moves=%s, seed=%d",
			a, len(seq), seq.HydrophobicCount(), c.Steps, c.MoveSet, *c.Seed)

		et := trace.NewEnergyTrace(trace.TraceConfig{Level: level})
		res, err := sim.Run(ctx, seq, c, et)
		if err != nil {
			return nil, fmt.Errorf("%s run: %w", a, err)
		}
		results = append(results, res)

		if dir != "" {
			suffix := ""
			if len(algos) > 1 {
				suffix = "_" + string(a)
			}
			if err := writeOutputs(dir, suffix, res, et); err != nil {
				return nil, err
			}
		}
		if err := printReport(stdout, res, et); err != nil {
			return nil, err
		}
		if st != nil {
			rec := store.NewRunRecord(res)
			if err := st.SaveRun(ctx, rec); err != nil {
				return nil, fmt.Errorf("saving run: %w", err)
			}
			logrus.Infof("Saved %s run %s", a, rec.ID)
		}
		logrus.Infof("%s complete in %v: best energy %d", a, res.Duration, res.Best.Energy)
	}

	if len(results) == 2 {
		logrus.Infof("Comparison: MC best %d, REMC best %d", results[0].Best.Energy, results[1].Best.Energy)
	}
	if dir != "" {
		_, _ = fmt.Fprintf(stdout, "Outputs written to: %s\n", dir)
	}
	if opts.Metrics {
		if err := writeMetrics(stdout); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// writeOutputs writes energy_trace<suffix>.csv and best_fold<suffix>.json.
func writeOutputs(dir, suffix string, res *sim.Result, et *trace.EnergyTrace) error {
	csvPath := filepath.Join(dir, "energy_trace"+suffix+".csv")
	if err := trace.ExportCSV(csvPath, et.Steps); err != nil {
		return err
	}
	jsonPath := filepath.Join(dir, "best_fold"+suffix+".json")
	if err := trace.ExportFoldJSON(jsonPath, res.Best.Fold()); err != nil {
		return err
	}
	logrus.Debugf("Successfully wrote '%s' and '%s'", csvPath, jsonPath)
	return nil
}

// printReport prints the result summary and the ASCII best fold.
func printReport(w io.Writer, res *sim.Result, et *trace.EnergyTrace) error {
	summary := trace.Summarize(et)
	best, err := sim.NewConformation(res.Sequence, res.Best.Coords)
	if err != nil {
		return fmt.Errorf("best fold: %w", err)
	}

	_, _ = fmt.Fprintf(w, "=== %s Result ===\n", strings.ToUpper(string(res.Algorithm)))
	_, _ = fmt.Fprintf(w, "Sequence        : %s\n", res.Sequence)
	_, _ = fmt.Fprintf(w, "Seed            : %d\n", res.Seed)
	_, _ = fmt.Fprintf(w, "Steps           : %d\n", res.Steps)
	_, _ = fmt.Fprintf(w, "Initial energy  : %d\n", res.Initial.Energy)
	_, _ = fmt.Fprintf(w, "Final energy    : %d\n", res.Final.Energy)
	_, _ = fmt.Fprintf(w, "Best energy     : %d (step %d)\n", res.Best.Energy, res.Best.Step)
	_, _ = fmt.Fprintf(w, "Acceptance rate : %.3f\n", res.AcceptanceRate())
	if res.Algorithm == sim.AlgorithmREMC {
		_, _ = fmt.Fprintf(w, "Exchanges       : %d/%d accepted over %d phases\n",
			res.ExchangesAccepted, res.ExchangeAttempts, res.ExchangePhases)
		for _, r := range res.Replicas {
			_, _ = fmt.Fprintf(w, "  slot %d T=%.3f : final %d, best %d\n", r.Slot, r.Temperature, r.Final.Energy, r.Best.Energy)
		}
	}
	if summary.ExchangeAttempts > 0 {
		keys := make([]string, 0, len(summary.PairAcceptance))
		for k := range summary.PairAcceptance {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(w, "  pair %-5s acceptance %.3f\n", k, summary.PairAcceptance[k])
		}
	}
	if summary.TotalSteps > 0 {
		_, _ = fmt.Fprintf(w, "Best reached at : step %d of %d traced\n", summary.FirstBestStep, summary.TotalSteps)
	}
	_, _ = fmt.Fprintln(w, best.Render())
	return nil
}
