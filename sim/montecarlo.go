package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hpfold/hpfold/sim/trace"
)

// initialConformation builds the starting walk for cfg.Init.
func initialConformation(seq Sequence, cfg Config, rng *PartitionedRNG) *Conformation {
	if cfg.Init == InitRandom {
		return NewRandomWalk(seq, rng.ForSubsystem(SubsystemInit))
	}
	return NewLine(seq)
}

// MonteCarlo runs a single Metropolis chain for a fixed step budget.
type MonteCarlo struct {
	cfg   Config
	seq   Sequence
	key   SimulationKey
	chain *Chain
	trace *trace.EnergyTrace // nil disables tracing

	result Result
}

// NewMonteCarlo validates cfg (as an MC configuration) and prepares the
// chain. et may be nil.
func NewMonteCarlo(seq Sequence, cfg Config, et *trace.EnergyTrace) (*MonteCarlo, error) {
	cfg.Algorithm = AlgorithmMC
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSequence(seq); err != nil {
		return nil, err
	}
	key, derived := KeyFromConfig(cfg)
	if derived {
		logrus.Infof("MC: no seed configured, using %d", int64(key))
	}
	rng := NewPartitionedRNG(key)
	chainRNG := rng.ForSubsystem(SubsystemChain)
	moves, err := NewMoveEngine(cfg.MoveSet, cfg.Rho, chainRNG)
	if err != nil {
		return nil, err
	}
	chain := NewChain(initialConformation(seq, cfg, rng), cfg.Temperature, moves, chainRNG)
	chain.checkInvariants = cfg.CheckInvariants

	mc := &MonteCarlo{cfg: cfg, seq: seq, key: key, chain: chain, trace: et}
	mc.result = Result{
		Algorithm: AlgorithmMC,
		MoveSet:   cfg.MoveSet,
		Sequence:  seq,
		Seed:      int64(key),
		Initial:   chain.Current(),
	}
	return mc, nil
}

// Chain exposes the underlying chain for inspection.
func (mc *MonteCarlo) Chain() *Chain { return mc.chain }

// Step executes one MC step and emits its trace record.
func (mc *MonteCarlo) Step() (StepOutcome, error) {
	outcome, err := mc.chain.Step()
	if err != nil {
		return outcome, err
	}
	mc.result.count(outcome)
	if mc.trace != nil {
		mc.trace.RecordStep(trace.StepRecord{
			Step:       mc.chain.Steps(),
			Energy:     mc.chain.Energy(),
			BestEnergy: mc.chain.Best().Energy,
		})
	}
	return outcome, nil
}

// Run executes the configured step budget. Cancellation is checked between
// steps.
func (mc *MonteCarlo) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logrus.Debugf("MC: %d residues, %d steps, T=%.3f, moves=%s, seed=%d",
		len(mc.seq), mc.cfg.Steps, mc.cfg.Temperature, mc.chain.moves, int64(mc.key))

	for mc.chain.Steps() < mc.cfg.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("MC interrupted at step %d: %w", mc.chain.Steps(), err)
		}
		before := mc.chain.Best().Energy
		if _, err := mc.Step(); err != nil {
			return nil, fmt.Errorf("MC step %d: %w", mc.chain.Steps(), err)
		}
		if b := mc.chain.Best().Energy; b < before {
			logrus.Debugf("MC: step %d new best energy %d", mc.chain.Steps(), b)
		}
	}

	res := mc.result
	res.Steps = mc.chain.Steps()
	res.Final = mc.chain.Current()
	res.Best = mc.chain.Best()
	res.Duration = time.Since(start)
	observeBest(res.Best.Energy)
	return &res, nil
}
