package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// SimulationKey is the master seed of a folding run. A run repeated with
// the same key, sequence and config retraces the same walk.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// KeyFromConfig returns the configured seed, or a time-derived one when
// the seed was left unset. The second result reports whether it was derived.
func KeyFromConfig(cfg Config) (SimulationKey, bool) {
	if cfg.Seed != nil {
		return NewSimulationKey(*cfg.Seed), false
	}
	return NewSimulationKey(time.Now().UnixNano()), true
}

const (
	// SubsystemChain feeds the single MC chain. It is seeded with the
	// master seed itself, so --seed N replays rand.NewSource(N).
	SubsystemChain = "chain"

	// SubsystemExchange decides replica swaps.
	SubsystemExchange = "exchange"

	// SubsystemInit grows random starting walks.
	SubsystemInit = "init"
)

// SubsystemReplica returns the subsystem name for ladder slot r.
func SubsystemReplica(r int) string {
	return fmt.Sprintf("replica_%d", r)
}

// PartitionedRNG hands out one generator per named stream, seeded with
// key XOR fnv1a64(name) (the chain stream uses the key as is). Draws on one
// stream never shift another, which is what lets replicas step on separate
// goroutines without changing the outcome.
//
// Create every stream before starting workers; the cache is unguarded.
// A returned *rand.Rand belongs to exactly one goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG starts an empty stream cache for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the generator of stream name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	rng, ok := p.subsystems[name]
	if !ok {
		rng = rand.New(rand.NewSource(p.seedFor(name)))
		p.subsystems[name] = rng
	}
	return rng
}

func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemChain {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

// ForReplica returns the generator owned by ladder slot r.
func (p *PartitionedRNG) ForReplica(r int) *rand.Rand {
	return p.ForSubsystem(SubsystemReplica(r))
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 hashes a stream name.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
