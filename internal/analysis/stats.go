package analysis

import (
	"math"
	"slices"
)

// Stats describes an integer sample. Variance and StdDev are population
// values (divided by N).
type Stats struct {
	N        int
	Mean     float64
	Median   float64
	Mode     int
	StdDev   float64
	Variance float64
	Min      int
	Max      int
	Range    int
	P25      float64
	P75      float64
}

// Describe returns the statistics of values, or false when values is empty.
// Mode ties resolve to the smallest tied value.
func Describe(values []int) (Stats, bool) {
	if len(values) == 0 {
		return Stats{}, false
	}

	data := slices.Clone(values)
	slices.Sort(data)
	n := float64(len(data))

	sum := 0.0
	for _, v := range data {
		sum += float64(v)
	}
	mean := sum / n

	m2 := 0.0
	for _, v := range data {
		d := float64(v) - mean
		m2 += d * d
	}
	variance := m2 / n

	return Stats{
		N:        len(data),
		Mean:     mean,
		Median:   percentile(data, 50),
		Mode:     mode(data),
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Min:      data[0],
		Max:      data[len(data)-1],
		Range:    data[len(data)-1] - data[0],
		P25:      percentile(data, 25),
		P75:      percentile(data, 75),
	}, true
}

// percentile interpolates linearly between the closest ranks of sorted data.
func percentile(data []int, p float64) float64 {
	index := float64(len(data)-1) * p / 100
	i := int(index)
	if i >= len(data)-1 {
		return float64(data[len(data)-1])
	}
	frac := index - float64(i)
	return float64(data[i]) + (float64(data[i+1])-float64(data[i]))*frac
}

// mode walks the sorted runs; a later run must be strictly longer to win.
func mode(data []int) int {
	best, bestCount := data[0], 0
	for i := 0; i < len(data); {
		j := i
		for j < len(data) && data[j] == data[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = data[i], j-i
		}
		i = j
	}
	return best
}
