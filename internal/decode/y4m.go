package decode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
)

// Y4M parses a YUV4MPEG2 stream: one stream header line, then a
// "FRAME" line plus raw planes per picture. YUV4MPEG2 carries no
// colorimetry beyond an optional XCOLORRANGE extension, so matrix,
// transfer and primaries stay unspecified for later inference.
type Y4M struct {
	r          *bufio.Reader
	closer     io.Closer
	details    VideoDetails
	planeSizes [3]int
	lineSizes  [3]int64
}

// NewY4M reads the stream header from r. size is the total stream size
// in bytes when known (regular files) and lets the frame count be
// derived arithmetically; pass 0 for pipes.
func NewY4M(r io.Reader, size int64) (*Y4M, error) {
	br := bufio.NewReaderSize(r, 1<<16)

	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: reading YUV4MPEG2 header: %w", ErrDecoderInit, err)
	}
	headerLen := len(line)

	fields := strings.Fields(strings.TrimSuffix(line, "\n"))
	if len(fields) == 0 || fields[0] != "YUV4MPEG2" {
		return nil, fmt.Errorf("%w: not a YUV4MPEG2 stream", ErrUnsupportedStream)
	}

	var width, height int
	cs := "420"
	fullRange := false
	for _, tag := range fields[1:] {
		if len(tag) < 2 {
			continue
		}
		switch tag[0] {
		case 'W':
			width, err = strconv.Atoi(tag[1:])
		case 'H':
			height, err = strconv.Atoi(tag[1:])
		case 'C':
			cs = tag[1:]
		case 'X':
			if v, ok := strings.CutPrefix(tag, "XCOLORRANGE="); ok {
				fullRange = v == "FULL"
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed header tag %q", ErrUnsupportedStream, tag)
		}
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: stream header missing geometry", ErrUnsupportedStream)
	}

	subX, subY, depth, loc, err := parseY4MColorspace(cs)
	if err != nil {
		return nil, err
	}

	bps := 1
	if depth > 8 {
		bps = 2
	}
	cw := (width + (1 << subX) - 1) >> subX
	ch := (height + (1 << subY) - 1) >> subY

	d := &Y4M{
		r: br,
		details: VideoDetails{
			Width:        width,
			Height:       height,
			BitDepth:     depth,
			SubsamplingX: subX,
			SubsamplingY: subY,
			FullRange:    fullRange,
			Matrix:       colorspace.MatrixUnspecified,
			Transfer:     colorspace.TransferUnspecified,
			Primaries:    colorspace.PrimariesUnspecified,
			ChromaLoc:    loc,
		},
		planeSizes: [3]int{width * height * bps, cw * ch * bps, cw * ch * bps},
		lineSizes:  [3]int64{int64(width * bps), int64(cw * bps), int64(cw * bps)},
	}

	// Plain frame headers have a fixed size, so a regular file's frame
	// count follows from arithmetic. Frames carrying parameters break
	// the division and the count stays unknown.
	if size > 0 {
		frameBytes := int64(len("FRAME\n") + d.planeSizes[0] + d.planeSizes[1] + d.planeSizes[2])
		payload := size - int64(headerLen)
		if payload > 0 && payload%frameBytes == 0 {
			d.details.FrameCount = int(payload / frameBytes)
		}
	}

	return d, nil
}

// OpenY4MFile opens a .y4m file from disk.
func OpenY4MFile(path string) (Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoderInit, err)
	}

	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	d, err := NewY4M(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}
	d.closer = f
	return d, nil
}

func (d *Y4M) Details() VideoDetails { return d.details }

func (d *Y4M) ReadFrame(dst *Frame) (bool, error) {
	line, err := d.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return false, nil
		}
		return false, fmt.Errorf("%w: frame header: %w", ErrFrameRead, err)
	}
	if line != "FRAME\n" && !strings.HasPrefix(line, "FRAME ") {
		return false, fmt.Errorf("%w: malformed frame header %q",
			ErrFrameRead, strings.TrimSpace(line))
	}

	dst.resize(d.planeSizes)
	for p := 0; p < 3; p++ {
		if _, err := io.ReadFull(d.r, dst.Data[p]); err != nil {
			return false, fmt.Errorf("%w: plane %d: %w", ErrFrameRead, p, err)
		}
		dst.LineSize[p] = d.lineSizes[p]
	}
	return true, nil
}

func (d *Y4M) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// parseY4MColorspace interprets the stream header's C tag. A "pNN"
// suffix selects sample depth; the base name selects subsampling and
// chroma siting.
func parseY4MColorspace(cs string) (subX, subY, depth int, loc colorspace.ChromaLocation, err error) {
	base, depth := cs, 8
	if i := strings.LastIndexByte(cs, 'p'); i > 0 {
		if d, aerr := strconv.Atoi(cs[i+1:]); aerr == nil {
			base, depth = cs[:i], d
		}
	}
	if depth < 8 || depth > 16 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedStream, depth)
	}

	switch base {
	case "420", "420jpeg":
		return 1, 1, depth, colorspace.ChromaCenter, nil
	case "420mpeg2":
		return 1, 1, depth, colorspace.ChromaLeft, nil
	case "420paldv":
		return 1, 1, depth, colorspace.ChromaTopLeft, nil
	case "422":
		return 1, 0, depth, colorspace.ChromaLeft, nil
	case "444":
		return 0, 0, depth, colorspace.ChromaLeft, nil
	case "411":
		return 2, 0, depth, colorspace.ChromaLeft, nil
	case "mono":
		return 0, 0, 0, 0, fmt.Errorf("%w: monochrome streams have no chroma planes",
			ErrUnsupportedStream)
	}
	return 0, 0, 0, 0, fmt.Errorf("%w: colorspace C%s", ErrUnsupportedStream, cs)
}
