package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLadder_UniformAndExactEnds(t *testing.T) {
	l := Ladder(0.5, 2.0, 4)
	assert.Equal(t, []float64{0.5, 1.0, 1.5, 2.0}, l)

	l = Ladder(0.1, 0.7, 7)
	assert.Len(t, l, 7)
	assert.Equal(t, 0.1, l[0])
	assert.Equal(t, 0.7, l[6], "last rung must be exactly t_max")
	for r := 1; r < len(l); r++ {
		assert.Greater(t, l[r], l[r-1])
	}
}

func TestIsExchangeRound(t *testing.T) {
	tests := []struct {
		round, every int
		want         bool
	}{
		{0, 5, false},
		{4, 5, false},
		{5, 5, true},
		{10, 5, true},
		{1, 1, true},
		{3, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsExchangeRound(tt.round, tt.every), "round=%d every=%d", tt.round, tt.every)
	}
}

func TestExchangeParity_Alternates(t *testing.T) {
	// Phases 1, 2, 3, 4 after rounds 5, 10, 15, 20
	assert.Equal(t, 0, ExchangeParity(5, 5))
	assert.Equal(t, 1, ExchangeParity(10, 5))
	assert.Equal(t, 0, ExchangeParity(15, 5))
	assert.Equal(t, 1, ExchangeParity(20, 5))
}

func TestExchangePairs_DisjointAdjacent(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, ExchangePairs(4, 0))
	assert.Equal(t, [][2]int{{1, 2}}, ExchangePairs(4, 1))
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, ExchangePairs(5, 0))
	assert.Equal(t, [][2]int{{1, 2}, {3, 4}}, ExchangePairs(5, 1))
	assert.Nil(t, ExchangePairs(2, 1))
}
