// Package comparator drives frame-accurate comparison of two video
// streams: a shared cursor serializes decoding while a fixed pool of
// workers scores pairs in parallel.
package comparator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
)

// ErrConfiguration reports an invalid comparison setup.
var ErrConfiguration = errors.New("invalid configuration")

// Scorer computes one metric score for a source/distorted frame pair.
// Implementations must allow Config.Workers concurrent calls.
type Scorer interface {
	Score(src, dst *decode.Frame) (float64, error)
}

// ScoreRecord is one scored frame.
type ScoreRecord struct {
	Frame int
	Score float64
}

// Result is a finished comparison: records ordered by frame index plus
// their summary statistics.
type Result struct {
	Records []ScoreRecord
	Summary Summary
}

// Config shapes a comparison run.
type Config struct {
	Workers    int // scoring goroutines; values below 1 mean 1
	StartFrame int // first stream index to score
	Increment  int // stride between scored indices; values below 1 mean 1
	Frames     int // maximum pairs to score; 0 means unbounded
}

// Engine owns the cursor and worker pool for one run.
type Engine struct {
	cfg      Config
	cursor   *PairCursor
	scorer   Scorer
	expected int
	log      zerolog.Logger

	// OnScore, when set, observes every record in completion order
	// together with the live running average. It runs on the
	// aggregator goroutine.
	OnScore func(rec ScoreRecord, avg float64)
}

// New validates cfg against the decoders' reported frame counts and
// builds an engine. The engine owns both decoders; Close releases them.
func New(source, distorted decode.Decoder, scorer Scorer, cfg Config,
	log zerolog.Logger) (*Engine, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Increment < 1 {
		cfg.Increment = 1
	}
	if cfg.StartFrame < 0 {
		return nil, fmt.Errorf("%w: start frame %d", ErrConfiguration, cfg.StartFrame)
	}
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrConfiguration, cfg.Frames)
	}

	srcCount := source.Details().FrameCount
	dstCount := distorted.Details().FrameCount
	if srcCount > 0 && dstCount > 0 && srcCount != dstCount {
		log.Warn().Int("source", srcCount).Int("distorted", dstCount).
			Msg("streams report different frame counts, comparing the overlap")
	}
	if srcCount == 0 && dstCount == 0 && cfg.StartFrame > 0 {
		return nil, fmt.Errorf(
			"%w: start frame %d needs a stream that reports its length",
			ErrConfiguration, cfg.StartFrame)
	}

	known := srcCount
	if known == 0 || (dstCount > 0 && dstCount < known) {
		known = dstCount
	}

	expected := 0
	if known > 0 {
		avail := known - cfg.StartFrame
		if avail <= 0 {
			return nil, fmt.Errorf("%w: start frame %d past the %d reported frames",
				ErrConfiguration, cfg.StartFrame, known)
		}
		expected = (avail + cfg.Increment - 1) / cfg.Increment
		if cfg.Frames > 0 && cfg.Frames < expected {
			expected = cfg.Frames
		}
	} else if cfg.Frames > 0 {
		expected = cfg.Frames
	}

	return &Engine{
		cfg: cfg,
		cursor: NewPairCursor(source, distorted,
			cfg.StartFrame, cfg.Increment, cfg.Frames),
		scorer:   scorer,
		expected: expected,
		log:      log,
	}, nil
}

// Expected returns the number of pairs the run should score, or 0 when
// neither stream reports a length and no bound was set.
func (e *Engine) Expected() int { return e.expected }

// Run scores pairs until exhaustion, the configured bound, or the first
// error. The first decode or metric failure cancels the whole run.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan ScoreRecord, e.cfg.Workers*3/2)
	errs := make(chan error, e.cfg.Workers+4)

	var wg sync.WaitGroup
	wg.Add(e.cfg.Workers)
	for id := range e.cfg.Workers {
		go e.worker(ctx, id, &wg, results, errs)
	}

	var records []ScoreRecord
	var aggWg sync.WaitGroup
	aggWg.Add(1)
	go func() {
		defer aggWg.Done()
		records = e.aggregate(ctx, results)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(results)
		close(done)
	}()

	select {
	case err := <-errs:
		return Result{}, err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-done:
	}
	aggWg.Wait()

	sort.Slice(records, func(i, j int) bool {
		return records[i].Frame < records[j].Frame
	})

	scores := make([]float64, len(records))
	for i, rec := range records {
		scores[i] = rec.Score
	}
	return Result{Records: records, Summary: Summarize(scores)}, nil
}

// Close releases the decoders. Call it once Run has returned.
func (e *Engine) Close() error { return e.cursor.Close() }

func (e *Engine) worker(ctx context.Context, id int, wg *sync.WaitGroup,
	results chan<- ScoreRecord, errs chan<- error) {
	defer wg.Done()

	for {
		if ctx.Err() != nil {
			errs <- ctx.Err()
			return
		}

		pair, err := e.cursor.Next()
		if err != nil {
			errs <- fmt.Errorf("worker %d: %w", id, err)
			return
		}
		if pair == nil {
			e.log.Debug().Int("worker", id).Msg("stream exhausted")
			return
		}

		index := pair.Index
		score, err := e.scorer.Score(pair.Source, pair.Distorted)
		e.cursor.Recycle(pair)
		if err != nil {
			errs <- fmt.Errorf("worker %d frame %d: %w", id, index, err)
			return
		}

		select {
		case results <- ScoreRecord{Frame: index, Score: score}:
		case <-ctx.Done():
			errs <- ctx.Err()
			return
		}
	}
}

func (e *Engine) aggregate(ctx context.Context,
	results <-chan ScoreRecord) []ScoreRecord {
	var records []ScoreRecord
	var avg RunningAverage

	for rec := range withContext(ctx, results) {
		records = append(records, rec)
		v := avg.Add(rec.Score)
		if e.OnScore != nil {
			e.OnScore(rec, v)
		}
	}
	return records
}
