package sim

import (
	"context"

	"github.com/hpfold/hpfold/sim/trace"
)

// Run builds the engine selected by cfg.Algorithm and runs it to completion.
// Configuration errors are returned before any step executes.
func Run(ctx context.Context, seq Sequence, cfg Config, et *trace.EnergyTrace) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Algorithm == AlgorithmREMC {
		re, err := NewReplicaExchange(seq, cfg, et)
		if err != nil {
			return nil, err
		}
		return re.Run(ctx)
	}
	mc, err := NewMonteCarlo(seq, cfg, et)
	if err != nil {
		return nil, err
	}
	return mc.Run(ctx)
}
