// Package metrics scores frame pairs with libvship's GPU SSIMULACRA2
// implementation.
package metrics

import (
	"errors"
	"fmt"

	vship "github.com/GreatValueCreamSoda/govship"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
)

// ErrMetricComputation reports a failed handler construction or score
// computation.
var ErrMetricComputation = errors.New("metric computation failed")

// SSIMU2 scores source/distorted frame pairs. It owns one GPU handler
// per worker in a blocking pool, so Score may be called from that many
// goroutines at once.
type SSIMU2 struct {
	pool     blockingPool[*vship.SSIMU2Handler]
	handlers []*vship.SSIMU2Handler
}

// NewSSIMU2 builds workers handlers comparing streams described by src
// and dst. Colorimetry the metric cannot express is reported as
// decode.ErrUnsupportedStream.
func NewSSIMU2(workers int, src, dst colorspace.Config) (*SSIMU2, error) {
	srcCS, err := vshipColorspace(src)
	if err != nil {
		return nil, err
	}
	dstCS, err := vshipColorspace(dst)
	if err != nil {
		return nil, err
	}
	// Geometry mismatches are resolved on the distorted side.
	dstCS.TargetWidth, dstCS.TargetHeight = srcCS.Width, srcCS.Height

	s := &SSIMU2{pool: newBlockingPool[*vship.SSIMU2Handler](workers)}
	for range workers {
		h, exception := vship.NewSSIMU2Handler(&srcCS, &dstCS)
		if !exception.IsNone() {
			s.Close()
			return nil, fmt.Errorf("%w: creating handler: %w",
				ErrMetricComputation, exception.GetError())
		}
		s.pool.Put(h)
		s.handlers = append(s.handlers, h)
	}
	return s, nil
}

// Score computes the SSIMULACRA2 score for one frame pair.
func (s *SSIMU2) Score(src, dst *decode.Frame) (float64, error) {
	h := s.pool.Get()
	defer s.pool.Put(h)

	score, exception := h.ComputeScore(src.Data, dst.Data,
		src.LineSize, dst.LineSize)
	if !exception.IsNone() {
		return 0, fmt.Errorf("%w: %w", ErrMetricComputation, exception.GetError())
	}
	return score, nil
}

// Close releases every handler. Score must not be called afterwards.
func (s *SSIMU2) Close() {
	for _, h := range s.handlers {
		h.Close()
	}
	s.handlers = nil
}
