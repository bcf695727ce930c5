package sim

import (
	"fmt"
	"math/rand"
)

// MoveSet selects the move families a MoveEngine proposes from.
type MoveSet string

const (
	MoveSetVSHD   MoveSet = "vshd"
	MoveSetPull   MoveSet = "pull"
	MoveSetHybrid MoveSet = "hybrid"
)

var validMoveSets = map[MoveSet]bool{
	MoveSetVSHD:   true,
	MoveSetPull:   true,
	MoveSetHybrid: true,
}

// IsValidMoveSet returns true if name is a recognized move set.
func IsValidMoveSet(name string) bool {
	return validMoveSets[MoveSet(name)]
}

// MoveEngine proposes random moves and applies them transactionally.
// Every Attempt either leaves a valid new walk or the walk untouched.
type MoveEngine struct {
	set MoveSet
	rho float64 // probability of trying Pull first in hybrid mode
	rng *rand.Rand
}

// NewMoveEngine creates an engine drawing from rng.
func NewMoveEngine(set MoveSet, rho float64, rng *rand.Rand) (*MoveEngine, error) {
	if !validMoveSets[set] {
		return nil, configErrorf("move_set", "unknown move set %q; valid: vshd, pull, hybrid", set)
	}
	if rho < 0 || rho > 1 {
		return nil, configErrorf("rho", "must be in [0, 1], got %g", rho)
	}
	return &MoveEngine{set: set, rho: rho, rng: rng}, nil
}

// Attempt proposes one move according to the move set and applies it.
// Returns the applied move, or false when no admissible move was found.
func (e *MoveEngine) Attempt(c *Conformation) (Move, bool) {
	switch e.set {
	case MoveSetVSHD:
		return e.AttemptVSHD(c)
	case MoveSetPull:
		return e.AttemptPull(c)
	}

	// Hybrid: one draw picks the family tried first; the other family gets
	// exactly one retry.
	first, second := e.AttemptVSHD, e.AttemptPull
	if e.rng.Float64() < e.rho {
		first, second = e.AttemptPull, e.AttemptVSHD
	}
	if m, ok := first(c); ok {
		return m, true
	}
	return second(c)
}

// AttemptVSHD picks End, Corner or Crankshaft uniformly, then a residue or
// motif uniformly, then a target uniformly among the admissible ones.
func (e *MoveEngine) AttemptVSHD(c *Conformation) (Move, bool) {
	n := c.Len()
	kind := MoveKind(e.rng.Intn(3))
	var m Move
	switch kind {
	case MoveEnd:
		i := 0
		if e.rng.Intn(2) == 1 {
			i = n - 1
		}
		targets := c.endTargets(i)
		if len(targets) == 0 {
			return e.fail(kind)
		}
		m = Move{Kind: MoveEnd, Index: i, Targets: []Coord{targets[e.rng.Intn(len(targets))]}}
	case MoveCorner:
		if n < 3 {
			return e.fail(kind)
		}
		i := 1 + e.rng.Intn(n-2)
		t, ok := c.cornerTarget(i)
		if !ok {
			return e.fail(kind)
		}
		m = Move{Kind: MoveCorner, Index: i, Targets: []Coord{t}}
	default:
		if n < 4 {
			return e.fail(kind)
		}
		i := e.rng.Intn(n - 3)
		ts, ok := c.crankshaftTargets(i)
		if !ok {
			return e.fail(kind)
		}
		m = Move{Kind: MoveCrankshaft, Index: i, Targets: ts[:]}
	}
	return e.apply(c, m)
}

// AttemptPull picks a residue and a direction uniformly, then an (L, C)
// pair uniformly among the admissible ones.
func (e *MoveEngine) AttemptPull(c *Conformation) (Move, bool) {
	n := c.Len()
	if n < 2 {
		return e.fail(MovePull)
	}
	i := e.rng.Intn(n)
	dir := PullDirection(e.rng.Intn(2))
	cands := c.pullTargets(i, dir)
	if len(cands) == 0 {
		return e.fail(MovePull)
	}
	lc := cands[e.rng.Intn(len(cands))]
	return e.apply(c, Move{Kind: MovePull, Index: i, Dir: dir, Targets: []Coord{lc[0], lc[1]}})
}

func (e *MoveEngine) apply(c *Conformation, m Move) (Move, bool) {
	if !c.TryApply(m) {
		return e.fail(m.Kind)
	}
	moveAttempts.WithLabelValues(m.Kind.String(), "applied").Inc()
	return m, true
}

func (e *MoveEngine) fail(kind MoveKind) (Move, bool) {
	moveAttempts.WithLabelValues(kind.String(), "no_target").Inc()
	return Move{}, false
}

// String describes the engine for logs.
func (e *MoveEngine) String() string {
	if e.set == MoveSetHybrid {
		return fmt.Sprintf("hybrid(rho=%.2f)", e.rho)
	}
	return string(e.set)
}
