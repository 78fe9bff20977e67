package comparator_test

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/GreatValueCreamSoda/gossimu2/internal/comparator"
	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
)

// fakeDecoder yields frames whose first luma byte is the frame index.
// reported sets Details().FrameCount independently of the number of
// frames actually served, mimicking pipes and lying containers.
type fakeDecoder struct {
	frames   int
	reported int
	failAt   int // frame index whose read errors; -1 disables
	next     int
	closed   bool
}

func newFakeDecoder(frames, reported int) *fakeDecoder {
	return &fakeDecoder{frames: frames, reported: reported, failAt: -1}
}

func (d *fakeDecoder) Details() decode.VideoDetails {
	return decode.VideoDetails{
		Width: 4, Height: 4, BitDepth: 8, FrameCount: d.reported,
	}
}

func (d *fakeDecoder) ReadFrame(dst *decode.Frame) (bool, error) {
	if d.next == d.failAt {
		return false, fmt.Errorf("%w: frame %d", decode.ErrFrameRead, d.next)
	}
	if d.next >= d.frames {
		return false, nil
	}
	dst.Data = [3][]byte{{byte(d.next)}, {0}, {0}}
	dst.LineSize = [3]int64{1, 1, 1}
	d.next++
	return true, nil
}

func (d *fakeDecoder) Close() error {
	d.closed = true
	return nil
}

// indexScorer checks the pair is in lockstep and scores it with its
// frame index.
type indexScorer struct{}

func (indexScorer) Score(src, dst *decode.Frame) (float64, error) {
	if src.Data[0][0] != dst.Data[0][0] {
		return 0, fmt.Errorf("pair out of lockstep: source %d distorted %d",
			src.Data[0][0], dst.Data[0][0])
	}
	return float64(src.Data[0][0]), nil
}

func drainCursor(t *testing.T, c *comparator.PairCursor) []int {
	t.Helper()
	var got []int
	for {
		pair, err := c.Next()
		if err != nil {
			t.Fatal(err)
		}
		if pair == nil {
			return got
		}
		if want := byte(pair.Index); pair.Source.Data[0][0] != want ||
			pair.Distorted.Data[0][0] != want {
			t.Fatalf("pair %d carries frames %d/%d",
				pair.Index, pair.Source.Data[0][0], pair.Distorted.Data[0][0])
		}
		got = append(got, pair.Index)
		c.Recycle(pair)
	}
}

func Test_PairCursor_Strides(t *testing.T) {
	seq := func(start, inc, n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = start + i*inc
		}
		return out
	}

	cases := []struct {
		name             string
		src, dst         int
		start, inc, ncap int
		want             []int
	}{
		{"every frame", 10, 10, 0, 1, 0, seq(0, 1, 10)},
		{"stride ten", 100, 100, 0, 10, 0, seq(0, 10, 10)},
		{"offset window", 100, 100, 5, 2, 3, []int{5, 7, 9}},
		{"bounded count", 10, 10, 0, 1, 3, []int{0, 1, 2}},
		{"shorter distorted", 50, 48, 0, 1, 0, seq(0, 1, 48)},
		{"shorter source", 48, 50, 0, 1, 0, seq(0, 1, 48)},
		{"single frame", 1, 1, 0, 1, 0, []int{0}},
		{"start at exhaustion", 10, 10, 10, 1, 0, nil},
		{"start past exhaustion", 10, 10, 15, 1, 0, nil},
		{"window past exhaustion", 10, 10, 0, 1, 99, seq(0, 1, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := comparator.NewPairCursor(
				newFakeDecoder(tc.src, tc.src),
				newFakeDecoder(tc.dst, tc.dst),
				tc.start, tc.inc, tc.ncap)
			got := drainCursor(t, c)

			if len(got) != len(tc.want) {
				t.Log("indices:", got)
				t.Fatalf("emitted %d pairs, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("pair %d has index %d, want %d", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func Test_PairCursor_StickyExhaustion(t *testing.T) {
	c := comparator.NewPairCursor(
		newFakeDecoder(2, 2), newFakeDecoder(2, 2), 0, 1, 0)
	drainCursor(t, c)

	for range 3 {
		pair, err := c.Next()
		if pair != nil || err != nil {
			t.Fatalf("Next after exhaustion = %v, %v", pair, err)
		}
	}
}

func Test_PairCursor_ReadError(t *testing.T) {
	src := newFakeDecoder(10, 10)
	src.failAt = 3
	c := comparator.NewPairCursor(src, newFakeDecoder(10, 10), 0, 1, 0)

	var got []int
	for {
		pair, err := c.Next()
		if err != nil {
			if !errors.Is(err, decode.ErrFrameRead) {
				t.Fatalf("err = %v, want ErrFrameRead", err)
			}
			break
		}
		if pair == nil {
			t.Fatal("cursor reported exhaustion before the failing frame")
		}
		got = append(got, pair.Index)
		c.Recycle(pair)
	}
	if len(got) != 3 {
		t.Fatalf("scored %v before the failure, want 3 pairs", got)
	}

	// Errors latch the cursor closed.
	pair, err := c.Next()
	if pair != nil || err != nil {
		t.Fatalf("Next after error = %v, %v", pair, err)
	}
}

func Test_PairCursor_ConcurrentUniqueIndices(t *testing.T) {
	const frames = 200
	c := comparator.NewPairCursor(
		newFakeDecoder(frames, frames), newFakeDecoder(frames, frames),
		0, 1, 0)

	var mu sync.Mutex
	var got []int

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				pair, err := c.Next()
				if err != nil {
					t.Error(err)
					return
				}
				if pair == nil {
					return
				}
				mu.Lock()
				got = append(got, pair.Index)
				mu.Unlock()
				c.Recycle(pair)
			}
		}()
	}
	wg.Wait()

	if len(got) != frames {
		t.Fatalf("emitted %d pairs, want %d", len(got), frames)
	}
	sort.Ints(got)
	for i, idx := range got {
		if idx != i {
			t.Fatalf("indices not unique and dense at %d: %d", i, idx)
		}
	}
}

func Test_PairCursor_Close(t *testing.T) {
	src := newFakeDecoder(1, 1)
	dst := newFakeDecoder(1, 1)
	c := comparator.NewPairCursor(src, dst, 0, 1, 0)

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.closed || !dst.closed {
		t.Fatal("Close must close both decoders")
	}
}
