package sim

import (
	"fmt"
	"math/rand"

	"github.com/hpfold/hpfold/sim/trace"
)

// Snapshot is a copy of a conformation's walk with its energy, taken at Step.
type Snapshot struct {
	Energy int
	Coords []Coord
	Step   int
}

func snapshotOf(c *Conformation, energy, step int) Snapshot {
	return Snapshot{Energy: energy, Coords: c.Coords(), Step: step}
}

// Fold converts the snapshot to its export form.
func (s Snapshot) Fold() trace.Fold {
	coords := make([][2]int, len(s.Coords))
	for i, p := range s.Coords {
		coords[i] = [2]int{p.X, p.Y}
	}
	return trace.Fold{Energy: s.Energy, Coords: coords}
}

// StepOutcome classifies one Metropolis step.
type StepOutcome int

const (
	// StepNoMove: the move engine found no admissible move; state unchanged.
	StepNoMove StepOutcome = iota
	// StepAccepted: a move was applied and kept.
	StepAccepted
	// StepRejected: a move was applied, failed the Metropolis test and was undone.
	StepRejected
)

func (o StepOutcome) String() string {
	switch o {
	case StepAccepted:
		return "accepted"
	case StepRejected:
		return "rejected"
	}
	return "no_move"
}

// Chain is one Metropolis Markov chain: a conformation, its current energy,
// a temperature, its own generator and its own best-so-far snapshot.
//
// In replica exchange a Chain is a ladder slot. Swaps exchange the
// conformation and energy between slots; the temperature, generator, move
// engine and best-so-far stay with the slot.
type Chain struct {
	conf        *Conformation
	energy      int
	temperature float64
	moves       *MoveEngine
	rng         *rand.Rand

	best  Snapshot
	steps int

	checkInvariants bool
}

// NewChain wraps conf. moves must draw from rng for the chain's draws to
// form a single reproducible stream.
func NewChain(conf *Conformation, temperature float64, moves *MoveEngine, rng *rand.Rand) *Chain {
	e := conf.Energy()
	return &Chain{
		conf:        conf,
		energy:      e,
		temperature: temperature,
		moves:       moves,
		rng:         rng,
		best:        snapshotOf(conf, e, 0),
	}
}

// Step proposes one move and applies the Metropolis test.
// An error is returned only for an invariant violation.
func (ch *Chain) Step() (StepOutcome, error) {
	ch.steps++
	m, ok := ch.moves.Attempt(ch.conf)
	if !ok {
		return StepNoMove, nil
	}
	if ch.checkInvariants {
		if err := ch.conf.Validate(); err != nil {
			return StepNoMove, fmt.Errorf("after %v at step %d: %w", m, ch.steps, err)
		}
	}

	eNew := ch.conf.Energy()
	if !Metropolis(eNew-ch.energy, ch.temperature, ch.rng) {
		ch.conf.Undo()
		metropolisDecisions.WithLabelValues("rejected").Inc()
		return StepRejected, nil
	}
	metropolisDecisions.WithLabelValues("accepted").Inc()
	ch.energy = eNew
	ch.observe()
	return StepAccepted, nil
}

// observe records the current state as best-so-far on strict improvement.
func (ch *Chain) observe() bool {
	if ch.energy >= ch.best.Energy {
		return false
	}
	ch.best = snapshotOf(ch.conf, ch.energy, ch.steps)
	return true
}

// swapStates exchanges the conformations and energies of two slots.
func swapStates(a, b *Chain) {
	a.conf, b.conf = b.conf, a.conf
	a.energy, b.energy = b.energy, a.energy
	a.observe()
	b.observe()
}

// Energy returns the current energy.
func (ch *Chain) Energy() int { return ch.energy }

// Temperature returns the chain's temperature.
func (ch *Chain) Temperature() float64 { return ch.temperature }

// Best returns the best-so-far snapshot.
func (ch *Chain) Best() Snapshot { return ch.best }

// Steps returns the number of steps executed.
func (ch *Chain) Steps() int { return ch.steps }

// Conformation returns the current conformation. Callers must not mutate it.
func (ch *Chain) Conformation() *Conformation { return ch.conf }

// Current returns a snapshot of the current state.
func (ch *Chain) Current() Snapshot { return snapshotOf(ch.conf, ch.energy, ch.steps) }
