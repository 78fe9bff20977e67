package comparator

// RunningAverage is the live display average. The divisor grows with
// the sample count and caps at ten, so recent scores dominate once the
// window fills. It never feeds the final statistics.
type RunningAverage struct {
	avg   float64
	count int
}

// Add folds score in and returns the updated average.
func (r *RunningAverage) Add(score float64) float64 {
	r.count++
	r.avg += (score - r.avg) / float64(min(r.count, 10))
	return r.avg
}

// Value returns the current average.
func (r *RunningAverage) Value() float64 { return r.avg }
