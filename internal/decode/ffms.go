package decode

import (
	"fmt"
	"runtime"

	ffms "github.com/GreatValueCreamSoda/goffms2"
	"github.com/GreatValueCreamSoda/gopixfmts"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
)

// ffmsDecoder reads frames through FFMS2 indexing. The output format is
// pinned to the encoded format of the first frame so every subsequent
// frame shares one geometry and pixel layout.
type ffmsDecoder struct {
	video      *ffms.VideoSource
	details    VideoDetails
	planeSizes [3]int
	next       int
}

// NewFFMS2 indexes path and opens its first video track.
func NewFFMS2(path string) (*ffmsDecoder, error) {
	indexer, _, err := ffms.CreateIndexer(path)
	if err != nil {
		return nil, fmt.Errorf("%w: indexing %s: %w", ErrDecoderInit, path, err)
	}

	index, _, err := indexer.DoIndexing(ffms.IEHAbort)
	if err != nil {
		return nil, fmt.Errorf("%w: indexing %s: %w", ErrDecoderInit, path, err)
	}

	track, _, err := index.GetFirstTrackOfType(ffms.TypeVideo)
	if err != nil {
		return nil, fmt.Errorf("%w: no video track in %s: %w", ErrDecoderInit, path, err)
	}

	video, _, err := ffms.CreateVideoSource(path, index, track,
		runtime.NumCPU()/2, ffms.SeekNormal)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrDecoderInit, path, err)
	}

	props, err := video.GetVideoProperties()
	if err != nil {
		return nil, fmt.Errorf("%w: probing %s: %w", ErrDecoderInit, path, err)
	}

	first, _, err := video.GetFrame(0)
	if err != nil {
		return nil, fmt.Errorf("%w: reading first frame of %s: %w", ErrDecoderInit, path, err)
	}

	video.SetOutputFormatV2([]int{first.EncodedPixelFormat},
		first.EncodedWidth, first.EncodedHeight, ffms.ResizerBicubic)

	first, _, err = video.GetFrame(0)
	if err != nil {
		return nil, fmt.Errorf("%w: reading first frame of %s: %w", ErrDecoderInit, path, err)
	}

	desc, err := gopixfmts.PixFmtDescGet(gopixfmts.PixelFormat(first.ConvertedPixelFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: pixel format %d: %w",
			ErrUnsupportedStream, first.ConvertedPixelFormat, err)
	}

	comp, err := desc.Component(0)
	if err != nil {
		return nil, fmt.Errorf("%w: pixel format %s: %w",
			ErrUnsupportedStream, desc.Name(), err)
	}
	switch comp.Depth {
	case 8, 9, 10, 12, 14, 16:
	default:
		return nil, fmt.Errorf("%w: %d-bit samples in pixel format %s",
			ErrUnsupportedStream, comp.Depth, desc.Name())
	}

	if len(first.Data[1]) == 0 || len(first.Data[2]) == 0 {
		return nil, fmt.Errorf("%w: pixel format %s has fewer than three planes",
			ErrUnsupportedStream, desc.Name())
	}

	rgb := desc.Flags()&uint64(gopixfmts.PixFmtFlagRGB) != 0

	// Code 0 means identity for RGB formats but unset everywhere else;
	// transfer and primaries 0 are reserved outright. Fold unset values
	// to unspecified so inference can fill them.
	matrix := colorspace.Matrix(first.ColorSpace)
	if first.ColorSpace == 0 && !rgb {
		matrix = colorspace.MatrixUnspecified
	}
	transfer := colorspace.Transfer(first.TransferCharateristics)
	if first.TransferCharateristics == 0 {
		transfer = colorspace.TransferUnspecified
	}
	primaries := colorspace.Primaries(first.ColorPrimaries)
	if first.ColorPrimaries == 0 {
		primaries = colorspace.PrimariesUnspecified
	}

	d := &ffmsDecoder{
		video: video,
		details: VideoDetails{
			Width:        first.ScaledWidth,
			Height:       first.ScaledHeight,
			BitDepth:     comp.Depth,
			SubsamplingX: desc.Log2ChromaW(),
			SubsamplingY: desc.Log2ChromaH(),
			FrameCount:   props.NumFrames,
			RGB:          rgb,
			FullRange: first.ColorRange != int(gopixfmts.ColorRangeMPEG) &&
				first.ColorRange != 0,
			Matrix:    matrix,
			Transfer:  transfer,
			Primaries: primaries,
			ChromaLoc: colorspace.ChromaLocation(first.ChromaLocation),
		},
		planeSizes: [3]int{
			len(first.Data[0]),
			len(first.Data[1]),
			len(first.Data[2]),
		},
	}

	return d, nil
}

func (d *ffmsDecoder) Details() VideoDetails { return d.details }

func (d *ffmsDecoder) ReadFrame(dst *Frame) (bool, error) {
	if d.next >= d.details.FrameCount {
		return false, nil
	}

	frame, _, err := d.video.GetFrame(d.next)
	if err != nil {
		return false, fmt.Errorf("%w: frame %d: %w", ErrFrameRead, d.next, err)
	}

	dst.resize(d.planeSizes)
	for p := 0; p < 3; p++ {
		copy(dst.Data[p], frame.Data[p])
		dst.LineSize[p] = int64(frame.Linesize[p])
	}
	d.next++
	return true, nil
}

// Close is a no-op: FFMS2 sources stay valid for the process lifetime
// and goffms2 exposes no destroy call.
func (d *ffmsDecoder) Close() error { return nil }
