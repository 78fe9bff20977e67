// Package decode provides sequential frame decoders for video quality
// comparison. Every backend exposes the same capability: immutable
// stream details plus a ReadFrame operation that fills caller-owned
// plane buffers and reports exhaustion instead of erroring on it.
//
// Decoders are stateful and not safe for concurrent use; the comparison
// engine serializes access to them.
package decode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
)

var (
	// ErrDecoderInit reports a stream that cannot be opened or probed.
	ErrDecoderInit = errors.New("decoder initialization failed")
	// ErrUnsupportedStream reports a stream the pipeline cannot score:
	// unusual sample types, missing chroma planes, malformed headers.
	ErrUnsupportedStream = errors.New("unsupported stream")
	// ErrFrameRead reports a mid-stream decode failure. Distinct from
	// clean exhaustion, which ReadFrame signals with a false return.
	ErrFrameRead = errors.New("frame read failed")
)

// VideoDetails is the immutable metadata of one stream, read once when
// the decoder opens. Colorimetry fields carry raw H.273 codes with
// Unspecified where the container stayed silent; resolution of the final
// colorimetry happens in the colorspace package.
type VideoDetails struct {
	Width, Height int
	BitDepth      int
	SubsamplingX  int // log2 horizontal chroma decimation
	SubsamplingY  int // log2 vertical chroma decimation
	FrameCount    int // 0 when the stream cannot report a count
	RGB           bool
	FullRange     bool
	Matrix        colorspace.Matrix
	Transfer      colorspace.Transfer
	Primaries     colorspace.Primaries
	ChromaLoc     colorspace.ChromaLocation
}

// Stream converts the details into the colorspace package's pre-resolve
// view of the stream.
func (d VideoDetails) Stream() colorspace.Stream {
	return colorspace.Stream{
		Width:        d.Width,
		Height:       d.Height,
		BitDepth:     d.BitDepth,
		SubsamplingX: d.SubsamplingX,
		SubsamplingY: d.SubsamplingY,
		RGB:          d.RGB,
		FullRange:    d.FullRange,
		Matrix:       d.Matrix,
		Transfer:     d.Transfer,
		Primaries:    d.Primaries,
		ChromaLoc:    d.ChromaLoc,
	}
}

// Frame holds one decoded picture as three planes with per-plane line
// sizes in bytes. Samples wider than 8 bits occupy two little-endian
// bytes. Buffers are reused across ReadFrame calls.
type Frame struct {
	Data     [3][]byte
	LineSize [3]int64
}

// resize readies each plane to hold sizes[p] bytes, reusing capacity
// where possible.
func (f *Frame) resize(sizes [3]int) {
	for p := 0; p < 3; p++ {
		if cap(f.Data[p]) < sizes[p] {
			f.Data[p] = make([]byte, sizes[p])
		} else {
			f.Data[p] = f.Data[p][:sizes[p]]
		}
	}
}

// Decoder is a sequential, stateful frame producer for one stream.
type Decoder interface {
	// Details returns the stream metadata read at open time.
	Details() VideoDetails
	// ReadFrame decodes the next frame into dst, reusing dst's buffers.
	// It returns false with a nil error once the stream is exhausted.
	ReadFrame(dst *Frame) (bool, error)
	// Close releases backend resources. Safe after exhaustion.
	Close() error
}

// Open constructs a decoder for path. Backend "auto" selects from the
// path itself: "-" reads a YUV4MPEG2 stream from standard input, *.y4m
// files parse directly, *.vpy scripts pipe through vspipe, and anything
// else goes through FFMS2 indexing. Explicit backends override the
// selection; "ffmpeg" decodes any input by piping yuv4mpegpipe output.
func Open(path, backend string) (Decoder, error) {
	switch backend {
	case "", "auto":
		switch {
		case path == "-":
			return NewY4M(os.Stdin, 0)
		case strings.EqualFold(filepath.Ext(path), ".y4m"):
			return OpenY4MFile(path)
		case strings.EqualFold(filepath.Ext(path), ".vpy"):
			return NewVSPipe(path)
		default:
			return NewFFMS2(path)
		}
	case "ffms2":
		return NewFFMS2(path)
	case "ffmpeg":
		return NewFFmpegPipe(path)
	case "y4m":
		if path == "-" {
			return NewY4M(os.Stdin, 0)
		}
		return OpenY4MFile(path)
	case "vspipe":
		return NewVSPipe(path)
	}
	return nil, fmt.Errorf("%w: unknown decoder backend %q", ErrDecoderInit, backend)
}
