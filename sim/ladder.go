package sim

// Ladder returns R temperatures spaced uniformly from tMin to tMax:
// T_r = tMin + r·(tMax−tMin)/(R−1). The last rung is exactly tMax.
func Ladder(tMin, tMax float64, replicas int) []float64 {
	if replicas < 2 {
		return []float64{tMin}
	}
	out := make([]float64, replicas)
	spacing := (tMax - tMin) / float64(replicas-1)
	for r := range out {
		out[r] = tMin + float64(r)*spacing
	}
	out[replicas-1] = tMax
	return out
}

// IsExchangeRound reports whether an exchange phase follows round
// (1-based).
func IsExchangeRound(round, every int) bool {
	return every > 0 && round > 0 && round%every == 0
}

// ExchangeParity returns the parity of the exchange phase following round:
// the k-th phase (k = round/every) uses parity (k-1) mod 2. Parity 0 pairs
// slots (0,1),(2,3),…; parity 1 pairs (1,2),(3,4),….
func ExchangeParity(round, every int) int {
	return (round/every - 1) % 2
}

// ExchangePairs lists the adjacent slot pairs tried under parity. Each slot
// appears in at most one pair.
func ExchangePairs(replicas, parity int) [][2]int {
	var pairs [][2]int
	for i := parity; i+1 < replicas; i += 2 {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	return pairs
}
