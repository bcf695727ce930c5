package trace

// TraceLevel controls the verbosity of energy tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps records one StepRecord per step.
	TraceLevelSteps TraceLevel = "steps"
	// TraceLevelExchanges records steps and every replica exchange attempt.
	TraceLevelExchanges TraceLevel = "exchanges"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelSteps:     true,
	TraceLevelExchanges: true,
	"":                  true, // empty defaults to steps
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

func (c TraceConfig) recordsSteps() bool {
	return c.Level != TraceLevelNone
}

func (c TraceConfig) recordsExchanges() bool {
	return c.Level == TraceLevelExchanges
}

// EnergyTrace collects step and exchange records during a run.
type EnergyTrace struct {
	Config    TraceConfig
	Steps     []StepRecord
	Exchanges []ExchangeRecord
}

// NewEnergyTrace creates an EnergyTrace ready for recording.
func NewEnergyTrace(config TraceConfig) *EnergyTrace {
	return &EnergyTrace{
		Config:    config,
		Steps:     make([]StepRecord, 0),
		Exchanges: make([]ExchangeRecord, 0),
	}
}

// RecordStep appends a step record unless tracing is disabled.
func (et *EnergyTrace) RecordStep(record StepRecord) {
	if et.Config.recordsSteps() {
		et.Steps = append(et.Steps, record)
	}
}

// RecordExchange appends an exchange record at TraceLevelExchanges.
func (et *EnergyTrace) RecordExchange(record ExchangeRecord) {
	if et.Config.recordsExchanges() {
		et.Exchanges = append(et.Exchanges, record)
	}
}

// Energies returns the current-energy series.
func (et *EnergyTrace) Energies() []int {
	out := make([]int, len(et.Steps))
	for i, s := range et.Steps {
		out[i] = s.Energy
	}
	return out
}

// BestEnergies returns the best-so-far series.
func (et *EnergyTrace) BestEnergies() []int {
	out := make([]int, len(et.Steps))
	for i, s := range et.Steps {
		out[i] = s.BestEnergy
	}
	return out
}
