package comparator

import (
	"math"
	"sort"
)

// Summary aggregates the scores of a finished comparison.
type Summary struct {
	FrameCount int
	Mean       float64
	Median     float64
	StdDev     float64
	P5         float64
	P95        float64
}

// Summarize computes summary statistics over scores. The standard
// deviation is the sample estimate (n-1); percentiles interpolate
// linearly between order statistics.
func Summarize(scores []float64) Summary {
	n := len(scores)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, scores)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range scores {
		sum += v
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var stddev float64
	if n > 1 {
		var variance float64
		for _, v := range scores {
			d := v - mean
			variance += d * d
		}
		stddev = math.Sqrt(variance / float64(n-1))
	}

	return Summary{
		FrameCount: n,
		Mean:       mean,
		Median:     median,
		StdDev:     stddev,
		P5:         percentile(sorted, 5),
		P95:        percentile(sorted, 95),
	}
}

// percentile interpolates rank p/100*(n-1) over a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
