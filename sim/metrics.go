// Process-wide counters for the folding kernel, registered with the default
// Prometheus registry. `hpfold run --metrics` prints them at run end.

package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// moveAttempts counts move proposals by kind and outcome
	// ("applied" or "no_target").
	moveAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hpfold_move_attempts_total",
		Help: "Move proposals by kind and outcome",
	}, []string{"kind", "outcome"})

	// metropolisDecisions counts Metropolis tests by result.
	metropolisDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hpfold_metropolis_decisions_total",
		Help: "Metropolis acceptance tests by result",
	}, []string{"result"})

	// exchangeAttempts counts replica exchange attempts by result.
	exchangeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hpfold_exchange_attempts_total",
		Help: "Replica exchange attempts by result",
	}, []string{"result"})

	// bestEnergy holds the best energy of the most recently finished run.
	bestEnergy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hpfold_best_energy",
		Help: "Best HP energy of the most recently finished run",
	})
)

func observeBest(e int) {
	bestEnergy.Set(float64(e))
}
