package analysis

import (
	"math/big"
	"testing"

	"github.com/san-kum/dicesim/internal/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheoreticalProbabilities_BucketsSumToOne(t *testing.T) {
	for _, c := range dice.Counts() {
		t.Run(c.String(), func(t *testing.T) {
			sum := new(big.Rat)
			for _, e := range TheoreticalProbabilities(c).Buckets() {
				sum.Add(sum, e.Exact)
			}
			assert.Equal(t, 0, sum.Cmp(big.NewRat(1, 1)), "sum = %s", sum.RatString())
		})
	}
}

func TestTheoreticalProbabilities_Values(t *testing.T) {
	tests := []struct {
		dice  dice.Count
		label string
		exact *big.Rat
	}{
		{dice.One, "face_1", big.NewRat(1, 6)},
		{dice.One, "face_6", big.NewRat(1, 6)},
		{dice.Two, "0_sixes", big.NewRat(25, 36)},
		{dice.Two, "1_sixes", big.NewRat(10, 36)},
		{dice.Two, "2_sixes", big.NewRat(1, 36)},
		{dice.Two, AtLeastOneSix, big.NewRat(11, 36)},
		{dice.Three, "0_sixes", big.NewRat(125, 216)},
		{dice.Three, "1_sixes", big.NewRat(75, 216)},
		{dice.Three, "2_sixes", big.NewRat(15, 216)},
		{dice.Three, "3_sixes", big.NewRat(1, 216)},
		{dice.Three, AtLeastOneSix, big.NewRat(91, 216)},
	}

	for _, tt := range tests {
		t.Run(tt.dice.String()+"/"+tt.label, func(t *testing.T) {
			table := TheoreticalProbabilities(tt.dice)
			var found *Entry
			for i := range table.Entries {
				if table.Entries[i].Label == tt.label {
					found = &table.Entries[i]
				}
			}
			require.NotNil(t, found)
			assert.Equal(t, 0, found.Exact.Cmp(tt.exact), "got %s", found.Exact.RatString())

			want, _ := tt.exact.Float64()
			p, ok := table.Get(tt.label)
			require.True(t, ok)
			assert.InDelta(t, want, p, 1e-12)
		})
	}
}

func TestTheoreticalProbabilities_OneSixOfTwo(t *testing.T) {
	p, ok := TheoreticalProbabilities(dice.Two).Get("1_sixes")
	require.True(t, ok)
	assert.InDelta(t, 2*(1.0/6)*(5.0/6), p, 1e-12)
}

func TestTheoreticalProbabilities_CompoundNotBucket(t *testing.T) {
	table := TheoreticalProbabilities(dice.Three)
	assert.Len(t, table.Entries, 5)
	assert.Len(t, table.Buckets(), 4)
	for _, e := range table.Buckets() {
		assert.NotEqual(t, AtLeastOneSix, e.Label)
	}

	_, ok := table.Get("4_sixes")
	assert.False(t, ok)
}

func TestTheoreticalProbabilities_InvalidPanics(t *testing.T) {
	assert.Panics(t, func() { TheoreticalProbabilities(dice.Count(4)) })
}
