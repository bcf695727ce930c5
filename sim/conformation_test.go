package sim

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(xy ...int) []Coord {
	out := make([]Coord, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, Coord{xy[i], xy[i+1]})
	}
	return out
}

func mustConformation(t *testing.T, seq string, cs []Coord) *Conformation {
	t.Helper()
	c, err := NewConformation(MustParseSequence(seq), cs)
	require.NoError(t, err)
	return c
}

func TestNewLine_StraightAlongX(t *testing.T) {
	c := NewLine(MustParseSequence("HPHPH"))
	require.Equal(t, 5, c.Len())
	for i := 0; i < 5; i++ {
		assert.Equal(t, Coord{X: i}, c.At(i))
	}
	assert.NoError(t, c.Validate())
	assert.Equal(t, 0, c.Energy())
}

func TestNewConformation_RejectsInvalidWalks(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		coords []Coord
	}{
		{"collision", "HPHP", coords(0, 0, 1, 0, 1, 1, 1, 0)},
		{"broken bond", "HPH", coords(0, 0, 1, 0, 3, 0)},
		{"diagonal bond", "HP", coords(0, 0, 1, 1)},
		{"length mismatch", "HPH", coords(0, 0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConformation(MustParseSequence(tt.seq), tt.coords)
			assert.Error(t, err)
		})
	}
}

func TestNewConformation_InvariantErrorIsMatchable(t *testing.T) {
	_, err := NewConformation(MustParseSequence("HPH"), coords(0, 0, 1, 0, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}

func TestEnergy(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		coords []Coord
		want   int
	}{
		// square: residues 0 and 3 are lattice neighbours
		{"square HH contact", "HPPH", coords(0, 0, 1, 0, 1, 1, 0, 1), -1},
		{"square polar end", "HPPP", coords(0, 0, 1, 0, 1, 1, 0, 1), 0},
		{"bonded H pair not counted", "HH", coords(0, 0, 1, 0), 0},
		// U of 6 with contacts 0-5 and 1-4
		{"two contacts", "HHPPHH", coords(0, 0, 1, 0, 2, 0, 2, 1, 1, 1, 0, 1), -2},
		{"line", "HHHHHH", coords(0, 0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustConformation(t, tt.seq, tt.coords)
			assert.Equal(t, tt.want, c.Energy())
		})
	}
}

func TestNewRandomWalk_ValidAndDeterministic(t *testing.T) {
	seq := MustParseSequence("HPHPPHHPHPPHPHHPPHPH")
	a := NewRandomWalk(seq, rand.New(rand.NewSource(3)))
	b := NewRandomWalk(seq, rand.New(rand.NewSource(3)))
	require.NoError(t, a.Validate())
	assert.Equal(t, Coord{}, a.At(0))
	assert.True(t, a.Equal(b), "same seed must give the same walk")
}

func TestClone_Independent(t *testing.T) {
	c := NewLine(MustParseSequence("HPHP"))
	d := c.Clone()
	require.True(t, d.TryApply(Move{Kind: MoveEnd, Index: 3, Targets: []Coord{{2, 1}}}))
	assert.Equal(t, Coord{3, 0}, c.At(3), "original must not move")
	assert.False(t, c.Equal(d))
}

func TestCoords_ReturnsCopy(t *testing.T) {
	c := NewLine(MustParseSequence("HPH"))
	cs := c.Coords()
	cs[0] = Coord{9, 9}
	assert.Equal(t, Coord{}, c.At(0))
}

func TestOccupantAt(t *testing.T) {
	c := NewLine(MustParseSequence("HPH"))
	i, ok := c.OccupantAt(Coord{2, 0})
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = c.OccupantAt(Coord{0, 1})
	assert.False(t, ok)
}

func TestTryApply_FailureLeavesStateUnchanged(t *testing.T) {
	// GIVEN a straight chain
	c := NewLine(MustParseSequence("HPHPH"))
	before := c.Coords()

	// WHEN moves with inadmissible targets are attempted
	bad := []Move{
		{Kind: MoveEnd, Index: 0, Targets: []Coord{{1, 0}}}, // occupied
		{Kind: MoveEnd, Index: 2, Targets: []Coord{{2, 1}}}, // not an end
		{Kind: MoveCorner, Index: 2, Targets: []Coord{{2, 1}}},
		{Kind: MoveCrankshaft, Index: 0, Targets: []Coord{{0, 1}, {1, 1}}},
		{Kind: MovePull, Index: 2, Dir: PullForward, Targets: []Coord{{5, 5}, {6, 5}}},
		{Kind: MoveEnd, Index: 0},
	}
	for _, m := range bad {
		// THEN each is refused and the walk is untouched
		assert.False(t, c.TryApply(m), "%v should be refused", m)
		assert.Equal(t, before, c.Coords())
		assert.NoError(t, c.Validate())
	}
}

func TestUndo_RestoresPreviousState(t *testing.T) {
	c := NewLine(MustParseSequence("HPHPH"))
	before := c.Coords()
	require.True(t, c.TryApply(Move{Kind: MovePull, Index: 2, Dir: PullForward, Targets: []Coord{{1, 1}, {2, 1}}}))
	require.NotEqual(t, before, c.Coords())

	c.Undo()
	assert.Equal(t, before, c.Coords())
	assert.NoError(t, c.Validate())

	// A second Undo is a no-op.
	c.Undo()
	assert.Equal(t, before, c.Coords())
}

func TestUndo_AfterFailedApplyIsNoop(t *testing.T) {
	c := NewLine(MustParseSequence("HPH"))
	require.True(t, c.TryApply(Move{Kind: MoveEnd, Index: 2, Targets: []Coord{{1, 1}}}))
	after := c.Coords()
	require.False(t, c.TryApply(Move{Kind: MoveEnd, Index: 2, Targets: []Coord{{0, 0}}}))
	c.Undo()
	assert.Equal(t, after, c.Coords())
}

func TestRender(t *testing.T) {
	c := mustConformation(t, "HPPH", coords(0, 0, 1, 0, 1, 1, 0, 1))
	want := strings.Join([]string{
		"H-P",
		"  |",
		"h-P",
	}, "\n")
	assert.Equal(t, want, c.Render())
}
