package comparator

import (
	"errors"
	"sync"

	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
)

// FramePair is one pickup: the source and distorted frames read at the
// same stream position.
type FramePair struct {
	Index     int
	Source    *decode.Frame
	Distorted *decode.Frame
}

// PairCursor serializes two decoders behind one mutex and hands out
// frame pairs at a fixed stride. Decoders are stateful and sequential,
// so every read happens under the lock; callers score outside it and
// Recycle the pair when finished.
type PairCursor struct {
	mu        sync.Mutex
	source    decode.Decoder
	distorted decode.Decoder

	increment int
	current   int // frames physically consumed from both decoders
	next      int // stream index of the next pair to hand out
	end       int // exclusive bound on next; 0 means unbounded
	done      bool

	srcPool sync.Pool
	dstPool sync.Pool
	skip    decode.Frame // scratch for skip reads, guarded by mu
}

// NewPairCursor builds a cursor that starts at startFrame and advances
// by increment per pickup. frames bounds the number of pickups when
// positive; zero means run until either stream is exhausted.
func NewPairCursor(source, distorted decode.Decoder,
	startFrame, increment, frames int) *PairCursor {
	if increment < 1 {
		increment = 1
	}
	c := &PairCursor{
		source:    source,
		distorted: distorted,
		increment: increment,
		next:      startFrame,
	}
	if frames > 0 {
		c.end = startFrame + frames*increment
	}
	c.srcPool.New = func() any { return new(decode.Frame) }
	c.dstPool.New = func() any { return new(decode.Frame) }
	return c
}

// Next returns the next pair, or nil once either stream is exhausted or
// the bound is reached. Exhaustion is sticky.
func (c *PairCursor) Next() (*FramePair, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return nil, nil
	}

	for c.current < c.next {
		srcOK, err := c.source.ReadFrame(&c.skip)
		if err != nil {
			c.done = true
			return nil, err
		}
		dstOK, err := c.distorted.ReadFrame(&c.skip)
		if err != nil {
			c.done = true
			return nil, err
		}
		if !srcOK || !dstOK {
			c.done = true
			return nil, nil
		}
		c.current++
	}

	c.next = c.current + c.increment
	if c.end > 0 && c.next > c.end {
		c.done = true
		return nil, nil
	}

	src := c.srcPool.Get().(*decode.Frame)
	dst := c.dstPool.Get().(*decode.Frame)

	srcOK, err := c.source.ReadFrame(src)
	var dstOK bool
	if err == nil {
		dstOK, err = c.distorted.ReadFrame(dst)
	}
	if err != nil || !srcOK || !dstOK {
		c.srcPool.Put(src)
		c.dstPool.Put(dst)
		c.done = true
		return nil, err
	}

	pair := &FramePair{Index: c.current, Source: src, Distorted: dst}
	c.current++
	return pair, nil
}

// Recycle returns the pair's buffers for reuse.
func (c *PairCursor) Recycle(pair *FramePair) {
	if pair == nil {
		return
	}
	c.srcPool.Put(pair.Source)
	c.dstPool.Put(pair.Distorted)
	pair.Source, pair.Distorted = nil, nil
}

// Close closes both decoders.
func (c *PairCursor) Close() error {
	return errors.Join(c.source.Close(), c.distorted.Close())
}
