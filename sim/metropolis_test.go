package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestAcceptanceProbability(t *testing.T) {
	tests := []struct {
		name   string
		deltaE int
		temp   float64
		want   float64
	}{
		{"downhill", -2, 1, 1},
		{"neutral", 0, 1, 1},
		{"uphill T=1", 1, 1, math.Exp(-1)},
		{"uphill T=2", 2, 2, math.Exp(-1)},
		{"uphill cold", 3, 0.5, math.Exp(-6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AcceptanceProbability(tt.deltaE, tt.temp); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AcceptanceProbability(%d, %g) = %g, want %g", tt.deltaE, tt.temp, got, tt.want)
			}
		})
	}
}

func TestMetropolis_DownhillConsumesNoDraw(t *testing.T) {
	// GIVEN two generators with the same seed
	a := rand.New(rand.NewSource(3))
	b := rand.New(rand.NewSource(3))

	// WHEN one decides a downhill and a neutral change
	if !Metropolis(-1, 1, a) || !Metropolis(0, 1, a) {
		t.Fatal("downhill and neutral changes must be accepted")
	}

	// THEN its stream has not advanced
	if a.Int63() != b.Int63() {
		t.Error("non-positive deltaE consumed a draw")
	}
}

func TestMetropolis_UphillConsumesOneDraw(t *testing.T) {
	a := rand.New(rand.NewSource(3))
	b := rand.New(rand.NewSource(3))
	Metropolis(1, 1, a)
	b.Float64()
	if a.Int63() != b.Int63() {
		t.Error("uphill decision should consume exactly one draw")
	}
}

func TestMetropolis_UphillAcceptanceRate(t *testing.T) {
	// GIVEN ΔE=2 at T=1 the acceptance probability is e^-2 ≈ 0.1353
	rng := rand.New(rand.NewSource(42))
	const trials = 100000
	accepted := 0
	for i := 0; i < trials; i++ {
		if Metropolis(2, 1, rng) {
			accepted++
		}
	}
	// THEN the observed rate is within 5 standard errors
	p := math.Exp(-2)
	rate := float64(accepted) / trials
	tol := 5 * math.Sqrt(p*(1-p)/trials)
	if math.Abs(rate-p) > tol {
		t.Errorf("acceptance rate %.4f, want %.4f ± %.4f", rate, p, tol)
	}
}

func TestExchangeProbability(t *testing.T) {
	tests := []struct {
		name   string
		ti, tj float64
		ei, ej int
		want   float64
	}{
		{"cold holds lower energy", 1, 2, -5, -3, 1},
		{"hot holds lower energy", 1, 2, -3, -5, math.Exp((0.5 - 1) * 2)},
		{"equal energies", 1, 2, -4, -4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExchangeProbability(tt.ti, tt.tj, tt.ei, tt.ej)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ExchangeProbability = %g, want %g", got, tt.want)
			}
		})
	}
}
