package report

import (
	"fmt"
	"io"

	"github.com/GreatValueCreamSoda/gossimu2/internal/comparator"
)

// WriteSummary prints the final statistics block.
func WriteSummary(w io.Writer, s comparator.Summary) {
	fmt.Fprintf(w, "Video Score for %d frames\n", s.FrameCount)
	fmt.Fprintf(w, "Mean: %.8f\n", s.Mean)
	fmt.Fprintf(w, "Median: %.8f\n", s.Median)
	fmt.Fprintf(w, "Std Dev: %.8f\n", s.StdDev)
	fmt.Fprintf(w, "5th Percentile: %.8f\n", s.P5)
	fmt.Fprintf(w, "95th Percentile: %.8f\n", s.P95)
}
