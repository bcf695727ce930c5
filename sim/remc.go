package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hpfold/hpfold/sim/trace"
)

// ReplicaExchange runs R Metropolis chains on a fixed temperature ladder and
// periodically swaps states between adjacent slots.
//
// Best-so-far bookkeeping is bound to the temperature slot: a swap moves
// conformations and energies, while each slot keeps its own history of
// best states (refreshed if an arriving conformation beats it). The global
// best is the minimum over every slot and round.
//
// Each slot owns a generator derived from the master seed and exchange
// tests draw from a separate one, so results are identical whether the
// step phase runs sequentially or on parallel workers.
type ReplicaExchange struct {
	cfg    Config
	seq    Sequence
	key    SimulationKey
	ladder []float64
	chains []*Chain

	exchangeRNG *rand.Rand
	trace       *trace.EnergyTrace // nil disables tracing

	round    int
	global   Snapshot
	phases   int
	attempts int
	accepted int
	result   Result
}

// NewReplicaExchange validates cfg (as a REMC configuration) and prepares
// one chain per ladder slot, all starting from the same conformation.
// et may be nil.
func NewReplicaExchange(seq Sequence, cfg Config, et *trace.EnergyTrace) (*ReplicaExchange, error) {
	cfg.Algorithm = AlgorithmREMC
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSequence(seq); err != nil {
		return nil, err
	}
	key, derived := KeyFromConfig(cfg)
	if derived {
		logrus.Infof("REMC: no seed configured, using %d", int64(key))
	}
	rng := NewPartitionedRNG(key)
	initial := initialConformation(seq, cfg, rng)

	ladder := Ladder(cfg.TMin, cfg.TMax, cfg.Replicas)
	chains := make([]*Chain, cfg.Replicas)
	for r := range chains {
		slotRNG := rng.ForReplica(r)
		moves, err := NewMoveEngine(cfg.MoveSet, cfg.Rho, slotRNG)
		if err != nil {
			return nil, err
		}
		chains[r] = NewChain(initial.Clone(), ladder[r], moves, slotRNG)
		chains[r].checkInvariants = cfg.CheckInvariants
	}

	re := &ReplicaExchange{
		cfg:         cfg,
		seq:         seq,
		key:         key,
		ladder:      ladder,
		chains:      chains,
		exchangeRNG: rng.ForSubsystem(SubsystemExchange),
		trace:       et,
		global:      chains[0].Best(),
	}
	re.result = Result{
		Algorithm: AlgorithmREMC,
		MoveSet:   cfg.MoveSet,
		Sequence:  seq,
		Seed:      int64(key),
		Initial:   chains[0].Current(),
	}
	return re, nil
}

// Ladder returns a copy of the temperature ladder.
func (re *ReplicaExchange) Ladder() []float64 {
	return append([]float64(nil), re.ladder...)
}

// Replica returns the chain bound to ladder slot r.
func (re *ReplicaExchange) Replica(r int) *Chain { return re.chains[r] }

// Replicas returns the number of ladder slots.
func (re *ReplicaExchange) Replicas() int { return len(re.chains) }

// Rounds returns the number of completed rounds.
func (re *ReplicaExchange) Rounds() int { return re.round }

// ExchangePhases returns the number of exchange phases run so far.
func (re *ReplicaExchange) ExchangePhases() int { return re.phases }

// GlobalBest returns the best snapshot over all slots and rounds.
func (re *ReplicaExchange) GlobalBest() Snapshot { return re.global }

// Round advances every replica by one MC step, joins them, updates the
// global best, and runs an exchange phase every ExchangeEvery rounds.
func (re *ReplicaExchange) Round(ctx context.Context) error {
	re.round++
	if err := re.stepAll(ctx); err != nil {
		return fmt.Errorf("REMC round %d: %w", re.round, err)
	}

	// Single writer: only the coordinating goroutine touches the global best.
	for _, ch := range re.chains {
		if b := ch.Best(); b.Energy < re.global.Energy {
			re.global = b
			logrus.Debugf("REMC: round %d new global best %d (T=%.3f)", re.round, b.Energy, ch.Temperature())
		}
	}

	if re.trace != nil {
		re.trace.RecordStep(trace.StepRecord{
			Step:       re.round,
			Energy:     re.chains[0].Energy(),
			BestEnergy: re.global.Energy,
		})
	}

	if IsExchangeRound(re.round, re.cfg.ExchangeEvery) {
		re.exchange()
	}
	return nil
}

// stepAll is the independent step phase. Replicas share no mutable state;
// the errgroup Wait is the barrier before exchange.
func (re *ReplicaExchange) stepAll(ctx context.Context) error {
	outcomes := make([]StepOutcome, len(re.chains))
	if !re.cfg.Parallel {
		for r, ch := range re.chains {
			o, err := ch.Step()
			if err != nil {
				return fmt.Errorf("replica %d: %w", r, err)
			}
			outcomes[r] = o
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		for r, ch := range re.chains {
			r, ch := r, ch
			g.Go(func() error {
				o, err := ch.Step()
				if err != nil {
					return fmt.Errorf("replica %d: %w", r, err)
				}
				outcomes[r] = o
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	for _, o := range outcomes {
		re.result.count(o)
	}
	return nil
}

// exchange tries every pair of the current parity once, in ascending slot
// order, with one draw from the exchange generator per pair.
func (re *ReplicaExchange) exchange() {
	re.phases++
	parity := ExchangeParity(re.round, re.cfg.ExchangeEvery)
	swaps := 0
	for _, pair := range ExchangePairs(len(re.chains), parity) {
		lo, hi := re.chains[pair[0]], re.chains[pair[1]]
		p := ExchangeProbability(lo.Temperature(), hi.Temperature(), lo.Energy(), hi.Energy())
		accepted := re.exchangeRNG.Float64() < p
		re.attempts++

		if re.trace != nil {
			re.trace.RecordExchange(trace.ExchangeRecord{
				Round:       re.round,
				Phase:       re.phases,
				Lower:       pair[0],
				Upper:       pair[1],
				LowerTemp:   lo.Temperature(),
				UpperTemp:   hi.Temperature(),
				LowerEnergy: lo.Energy(),
				UpperEnergy: hi.Energy(),
				Probability: p,
				Accepted:    accepted,
			})
		}

		if !accepted {
			exchangeAttempts.WithLabelValues("rejected").Inc()
			continue
		}
		exchangeAttempts.WithLabelValues("accepted").Inc()
		swapStates(lo, hi)
		re.accepted++
		swaps++
	}
	logrus.Debugf("REMC: round %d exchange phase %d (parity %d): %d swaps", re.round, re.phases, parity, swaps)
}

// Run executes the configured number of rounds. Cancellation is checked
// between rounds.
func (re *ReplicaExchange) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logrus.Debugf("REMC: %d residues, %d rounds, ladder=%v, exchange every %d, moves=%s, parallel=%v, seed=%d",
		len(re.seq), re.cfg.Steps, re.ladder, re.cfg.ExchangeEvery, re.chains[0].moves, re.cfg.Parallel, int64(re.key))

	for re.round < re.cfg.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("REMC interrupted at round %d: %w", re.round, err)
		}
		if err := re.Round(ctx); err != nil {
			return nil, err
		}
	}

	res := re.result
	res.Steps = re.round
	res.Final = re.chains[0].Current()
	res.Best = re.global
	res.ExchangePhases = re.phases
	res.ExchangeAttempts = re.attempts
	res.ExchangesAccepted = re.accepted
	res.Replicas = make([]ReplicaResult, len(re.chains))
	for r, ch := range re.chains {
		res.Replicas[r] = ReplicaResult{
			Slot:        r,
			Temperature: ch.Temperature(),
			Final:       ch.Current(),
			Best:        ch.Best(),
		}
	}
	res.Duration = time.Since(start)
	observeBest(res.Best.Energy)
	return &res, nil
}
