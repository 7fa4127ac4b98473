package stats

import (
	"math"
	"slices"
)

// mean returns the arithmetic mean of the sizes, or 0 when empty.
func mean(sizes []int) float64 {
	if len(sizes) == 0 {
		return 0
	}
	sum := 0
	for _, v := range sizes {
		sum += v
	}
	return float64(sum) / float64(len(sizes))
}

// median returns the middle value of the sizes, averaging the two middle
// values for even-length input, or 0 when empty.
func median(sizes []int) float64 {
	if len(sizes) == 0 {
		return 0
	}
	sorted := slices.Clone(sizes)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// stdev returns the sample standard deviation of the sizes. Fewer than
// two samples have no spread, so the result is 0.
func stdev(sizes []int) float64 {
	n := len(sizes)
	if n < 2 {
		return 0
	}
	m := mean(sizes)
	sum := 0.0
	for _, v := range sizes {
		d := float64(v) - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}
