package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s, ok := Describe([]int{6, 1, 6, 2, 1, 6})
	require.True(t, ok)

	assert.Equal(t, 6, s.N)
	assert.InDelta(t, 11.0/3, s.Mean, 1e-9)
	assert.InDelta(t, 4.0, s.Median, 1e-9)
	assert.Equal(t, 6, s.Mode)
	assert.InDelta(t, 50.0/9, s.Variance, 1e-9)
	assert.InDelta(t, 2.357022, s.StdDev, 1e-6)
	assert.Equal(t, 1, s.Min)
	assert.Equal(t, 6, s.Max)
	assert.Equal(t, 5, s.Range)
	assert.InDelta(t, 1.25, s.P25, 1e-9)
	assert.InDelta(t, 6.0, s.P75, 1e-9)
}

func TestDescribe_Empty(t *testing.T) {
	_, ok := Describe(nil)
	assert.False(t, ok)
}

func TestDescribe_SingleValue(t *testing.T) {
	s, ok := Describe([]int{3})
	require.True(t, ok)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 3.0, s.P25)
	assert.Equal(t, 3.0, s.P75)
	assert.Zero(t, s.Variance)
	assert.Zero(t, s.Range)
}

func TestDescribe_ModeTieBreaksLow(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{"two way tie", []int{2, 5, 5, 2}, 2},
		{"all distinct", []int{4, 3, 1, 2}, 1},
		{"clear winner", []int{0, 1, 1, 1, 0}, 1},
		{"three way tie", []int{3, 2, 1, 3, 2, 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Describe(tt.values)
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Mode)
		})
	}
}

func TestDescribe_DoesNotReorderInput(t *testing.T) {
	in := []int{3, 1, 2}
	_, _ = Describe(in)
	assert.Equal(t, []int{3, 1, 2}, in)
}
