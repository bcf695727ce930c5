package sim

import (
	"math"
	"math/rand"
)

// AcceptanceProbability is the Metropolis acceptance probability of an
// energy change deltaE at temperature T: 1 when deltaE ≤ 0, else exp(-deltaE/T).
func AcceptanceProbability(deltaE int, temperature float64) float64 {
	if deltaE <= 0 {
		return 1
	}
	return math.Exp(-float64(deltaE) / temperature)
}

// Metropolis decides whether to accept an energy change. Downhill and
// neutral changes are accepted without consuming a draw; uphill changes
// consume exactly one uniform draw in [0, 1).
func Metropolis(deltaE int, temperature float64, rng *rand.Rand) bool {
	if deltaE <= 0 {
		return true
	}
	return rng.Float64() < AcceptanceProbability(deltaE, temperature)
}

// ExchangeProbability is the acceptance probability of swapping the states
// of ladder slots i and j (T_i < T_j): min(1, exp[(1/T_j - 1/T_i)(E_i - E_j)]).
func ExchangeProbability(ti, tj float64, ei, ej int) float64 {
	delta := (1/tj - 1/ti) * float64(ei-ej)
	if delta >= 0 {
		return 1
	}
	return math.Exp(delta)
}
