package trace

import "fmt"

// TraceSummary aggregates statistics from an EnergyTrace.
type TraceSummary struct {
	TotalSteps       int
	FinalEnergy      int
	BestEnergy       int
	FirstBestStep    int // first step whose best-so-far equals BestEnergy; 0 if no steps
	ExchangeAttempts int
	ExchangeAccepted int
	PairAcceptance   map[string]float64 // "lower-upper" → acceptance ratio
}

// PairKey names the ladder pair (lower, upper) in PairAcceptance.
func PairKey(lower, upper int) string {
	return fmt.Sprintf("%d-%d", lower, upper)
}

// Summarize computes aggregate statistics from an EnergyTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(et *EnergyTrace) *TraceSummary {
	summary := &TraceSummary{
		PairAcceptance: make(map[string]float64),
	}
	if et == nil {
		return summary
	}

	summary.TotalSteps = len(et.Steps)
	if n := len(et.Steps); n > 0 {
		summary.FinalEnergy = et.Steps[n-1].Energy
		summary.BestEnergy = et.Steps[n-1].BestEnergy
		for _, s := range et.Steps {
			if s.BestEnergy == summary.BestEnergy {
				summary.FirstBestStep = s.Step
				break
			}
		}
	}

	attempts := make(map[string]int)
	accepted := make(map[string]int)
	for _, x := range et.Exchanges {
		key := PairKey(x.Lower, x.Upper)
		attempts[key]++
		summary.ExchangeAttempts++
		if x.Accepted {
			accepted[key]++
			summary.ExchangeAccepted++
		}
	}
	for key, n := range attempts {
		summary.PairAcceptance[key] = float64(accepted[key]) / float64(n)
	}

	return summary
}
