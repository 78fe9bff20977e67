package report

import (
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/GreatValueCreamSoda/gossimu2/internal/comparator"
)

// ChartPath names a chart file stamped with the current time.
func ChartPath() string {
	return fmt.Sprintf("ssimulacra2-video-%d.png", time.Now().Unix())
}

// WriteChart renders records as a score-over-frame PNG with the Y axis
// pinned to the metric's nominal 0-100 range. Nonpositive dimensions fall
// back to 1500x1000.
func WriteChart(path string, records []comparator.ScoreRecord, width, height int) error {
	if len(records) < 2 {
		return fmt.Errorf("%d records are not enough to chart", len(records))
	}
	if width < 1 {
		width = 1500
	}
	if height < 1 {
		height = 1000
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	for i, rec := range records {
		xs[i] = float64(rec.Frame)
		ys[i] = rec.Score
	}

	graph := chart.Chart{
		Title:  "SSIMULACRA2",
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: "frame"},
		YAxis: chart.YAxis{
			Name:  "score",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "ssimulacra2",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					FillColor:   chart.GetDefaultColor(0).WithAlpha(64),
				},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
