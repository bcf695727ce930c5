package sim

import "time"

// ReplicaResult is the end state of one ladder slot.
type ReplicaResult struct {
	Slot        int
	Temperature float64
	Final       Snapshot
	Best        Snapshot // best-so-far of the slot's history, not of a migrating conformation
}

// Result is what a finished run hands to export and persistence.
type Result struct {
	Algorithm Algorithm
	MoveSet   MoveSet
	Sequence  Sequence
	Seed      int64
	Steps     int

	Initial Snapshot
	Final   Snapshot // MC: the chain; REMC: the coldest slot
	Best    Snapshot // global best-so-far

	Accepted int // MC: accepted moves; REMC: summed over replicas
	Rejected int
	NoMove   int

	Replicas          []ReplicaResult // REMC only
	ExchangePhases    int
	ExchangeAttempts  int
	ExchangesAccepted int

	Duration time.Duration
}

// AcceptanceRate is the fraction of steps whose move was kept.
func (r *Result) AcceptanceRate() float64 {
	total := r.Accepted + r.Rejected + r.NoMove
	if total == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(total)
}

func (r *Result) count(o StepOutcome) {
	switch o {
	case StepAccepted:
		r.Accepted++
	case StepRejected:
		r.Rejected++
	default:
		r.NoMove++
	}
}
