// Package store persists finished folding runs.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hpfold/hpfold/sim"
)

// RunRecord is the persisted summary of one run.
type RunRecord struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	Algorithm  sim.Algorithm `json:"algorithm"`
	MoveSet    sim.MoveSet   `json:"move_set"`
	Sequence   string        `json:"sequence"`
	Seed       int64         `json:"seed"`
	Steps      int           `json:"steps"`
	BestEnergy int           `json:"best_energy"`
	BestCoords [][2]int      `json:"best_coords"`
	BestStep   int           `json:"best_step"`
	Acceptance float64       `json:"acceptance"`
}

// NewRunRecord summarizes res under a fresh run ID.
func NewRunRecord(res *sim.Result) RunRecord {
	fold := res.Best.Fold()
	return RunRecord{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Algorithm:  res.Algorithm,
		MoveSet:    res.MoveSet,
		Sequence:   res.Sequence.String(),
		Seed:       res.Seed,
		Steps:      res.Steps,
		BestEnergy: res.Best.Energy,
		BestCoords: fold.Coords,
		BestStep:   res.Best.Step,
		Acceptance: res.AcceptanceRate(),
	}
}

// Store defines persistence operations for finished runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)
}

func encodeRun(run RunRecord) ([]byte, error) {
	return json.Marshal(run)
}

func decodeRun(data []byte) (RunRecord, error) {
	var run RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return RunRecord{}, err
	}
	return run, nil
}
