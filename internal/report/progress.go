// Package report renders run output: live progress, the final summary
// block, CSV score dumps and the score-over-frame chart.
package report

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Progress tracks scored frames on stderr. It renders a determinate bar
// when the expected total is known, a spinner otherwise, and nothing at
// all when stderr is not a terminal.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress builds a tracker for expected frames; pass 0 when the
// total is unknown.
func NewProgress(expected int) *Progress {
	if !stderrIsTerminal() {
		return &Progress{}
	}

	total := int64(expected)
	if total == 0 {
		total = -1 // spinner
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription("comparing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
	)
	return &Progress{bar: bar}
}

// Observe records one scored frame and refreshes the running average
// shown beside the bar.
func (p *Progress) Observe(avg float64) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("avg: %.2f", avg))
	_ = p.bar.Add(1)
}

// Finish completes the bar.
func (p *Progress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
