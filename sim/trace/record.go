// Package trace provides energy-trace recording for folding runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StepRecord captures the state of a run after one completed step.
// For replica exchange, Energy is the current energy of the coldest slot
// and BestEnergy the global best over all slots.
type StepRecord struct {
	Step       int
	Energy     int
	BestEnergy int
}

// ExchangeRecord captures a single replica exchange attempt between
// adjacent ladder slots Lower < Upper.
type ExchangeRecord struct {
	Round       int
	Phase       int // 1-based index of the exchange phase
	Lower       int
	Upper       int
	LowerTemp   float64
	UpperTemp   float64
	LowerEnergy int
	UpperEnergy int
	Probability float64 // min(1, exp[(1/T_upper - 1/T_lower)(E_lower - E_upper)])
	Accepted    bool
}
