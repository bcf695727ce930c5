package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpfold/hpfold/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Algorithm: sim.AlgorithmREMC,
		MoveSet:   sim.MoveSetHybrid,
		Sequence:  sim.MustParseSequence("HPPH"),
		Seed:      42,
		Steps:     100,
		Best: sim.Snapshot{
			Energy: -1,
			Coords: []sim.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
			Step:   17,
		},
		Accepted: 30,
		Rejected: 50,
		NoMove:   20,
	}
}

func TestNewRunRecord(t *testing.T) {
	rec := NewRunRecord(sampleResult())
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "HPPH", rec.Sequence)
	assert.Equal(t, -1, rec.BestEnergy)
	assert.Equal(t, 17, rec.BestStep)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, rec.BestCoords)
	assert.InDelta(t, 0.3, rec.Acceptance, 1e-12)
	assert.NotEqual(t, rec.ID, NewRunRecord(sampleResult()).ID)
}

func exerciseStore(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.Init(ctx))

	// GIVEN two runs saved in reverse creation order
	older := NewRunRecord(sampleResult())
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := NewRunRecord(sampleResult())
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)
	newer.BestEnergy = -2
	require.NoError(t, st.SaveRun(ctx, newer))
	require.NoError(t, st.SaveRun(ctx, older))

	// WHEN one is fetched by ID
	got, ok, err := st.GetRun(ctx, newer.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, -2, got.BestEnergy)
	assert.Equal(t, newer.BestCoords, got.BestCoords)

	// THEN unknown IDs report not found
	_, ok, err = st.GetRun(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// AND listing is ordered by creation time
	runs, err := st.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, older.ID, runs[0].ID)
	assert.Equal(t, newer.ID, runs[1].ID)

	// AND saving an existing ID replaces it
	newer.BestEnergy = -3
	require.NoError(t, st.SaveRun(ctx, newer))
	got, _, err = st.GetRun(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, -3, got.BestEnergy)
	runs, err = st.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_SaveBeforeInit(t *testing.T) {
	err := NewMemoryStore().SaveRun(context.Background(), NewRunRecord(sampleResult()))
	assert.Error(t, err)
}

func TestSQLiteStore(t *testing.T) {
	st := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	defer func() { _ = st.Close() }()
	exerciseStore(t, st)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	first := NewSQLiteStore(path)
	require.NoError(t, first.Init(ctx))
	rec := NewRunRecord(sampleResult())
	require.NoError(t, first.SaveRun(ctx, rec))
	require.NoError(t, first.Close())

	second := NewSQLiteStore(path)
	require.NoError(t, second.Init(ctx))
	defer func() { _ = second.Close() }()
	got, ok, err := second.GetRun(ctx, rec.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Sequence, got.Sequence)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	assert.Error(t, NewSQLiteStore("").Init(context.Background()))
}

func TestNewStore(t *testing.T) {
	st, err := NewStore("", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)
	assert.NoError(t, CloseIfSupported(st))

	st, err = NewStore("sqlite", "x.db")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)

	_, err = NewStore("postgres", "")
	assert.Error(t, err)
}
