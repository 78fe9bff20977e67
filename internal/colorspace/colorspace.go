// Package colorspace models the three independent H.273 colorimetry
// parameters (matrix coefficients, transfer characteristic, color
// primaries) together with the bit depth, chroma subsampling, and range
// information needed to interpret raw video samples.
//
// Streams frequently ship with some or all of these left unspecified.
// Resolve layers user overrides on top of stream metadata and fills the
// remaining gaps from resolution heuristics, producing an immutable
// Config that is safe to share across worker threads.
package colorspace

// Matrix identifies the YUV<->RGB matrix coefficients, coded as in
// ITU-T H.273.
type Matrix int

const (
	MatrixIdentity    Matrix = 0
	MatrixBT709       Matrix = 1
	MatrixUnspecified Matrix = 2
	MatrixBT470M      Matrix = 4
	MatrixBT470BG     Matrix = 5
	MatrixST170M      Matrix = 6
	MatrixST240M      Matrix = 7
	MatrixYCgCo       Matrix = 8
	MatrixBT2020NCL   Matrix = 9
	MatrixBT2020CL    Matrix = 10
	MatrixST2085      Matrix = 11
	MatrixCDNCL       Matrix = 12
	MatrixCDCL        Matrix = 13
	MatrixICtCp       Matrix = 14
)

// Transfer identifies the opto-electronic transfer characteristic, coded
// as in ITU-T H.273.
type Transfer int

const (
	TransferBT1886      Transfer = 1
	TransferUnspecified Transfer = 2
	TransferBT470M      Transfer = 4
	TransferBT470BG     Transfer = 5
	TransferST170M      Transfer = 6
	TransferST240M      Transfer = 7
	TransferLinear      Transfer = 8
	TransferLog100      Transfer = 9
	TransferLog316      Transfer = 10
	TransferXVYCC       Transfer = 11
	TransferBT1361E     Transfer = 12
	TransferSRGB        Transfer = 13
	TransferBT2020Ten   Transfer = 14
	TransferBT2020Twel  Transfer = 15
	TransferPQ          Transfer = 16
	TransferST428       Transfer = 17
	TransferHLG         Transfer = 18
)

// Primaries identifies the chromaticity coordinates of the RGB channels,
// coded as in ITU-T H.273.
type Primaries int

const (
	PrimariesBT709       Primaries = 1
	PrimariesUnspecified Primaries = 2
	PrimariesBT470M      Primaries = 4
	PrimariesBT470BG     Primaries = 5
	PrimariesST170M      Primaries = 6
	PrimariesST240M      Primaries = 7
	PrimariesFilm        Primaries = 8
	PrimariesBT2020      Primaries = 9
	PrimariesST428       Primaries = 10
	PrimariesP3DCI       Primaries = 11
	PrimariesP3Display   Primaries = 12
	PrimariesTech3213    Primaries = 22
)

// ChromaLocation specifies where chroma samples sit relative to luma,
// matching FFmpeg's AVChromaLocation codes. Zero means unspecified.
type ChromaLocation int

const (
	ChromaUnspecified ChromaLocation = 0
	ChromaLeft        ChromaLocation = 1
	ChromaCenter      ChromaLocation = 2
	ChromaTopLeft     ChromaLocation = 3
	ChromaTop         ChromaLocation = 4
	ChromaBottomLeft  ChromaLocation = 5
	ChromaBottom      ChromaLocation = 6
)

// Stream describes one video stream's properties as reported by its
// decoder, before overrides and inference. Matrix, Transfer and
// Primaries carry the raw H.273 codes; unspecified values stay at their
// Unspecified constants, never zero.
type Stream struct {
	Width, Height int
	BitDepth      int
	SubsamplingX  int // log2 horizontal chroma decimation
	SubsamplingY  int // log2 vertical chroma decimation
	RGB           bool
	FullRange     bool
	Matrix        Matrix
	Transfer      Transfer
	Primaries     Primaries
	ChromaLoc     ChromaLocation
}

// Overrides carries user-supplied colorimetry that takes precedence over
// stream metadata. Construct with NewOverrides: the zero values of
// Matrix and Transfer are meaningful H.273 codes, not "unset".
type Overrides struct {
	Matrix    Matrix
	Transfer  Transfer
	Primaries Primaries
	FullRange bool
}

// NewOverrides returns an Overrides with every field unspecified.
func NewOverrides() Overrides {
	return Overrides{
		Matrix:    MatrixUnspecified,
		Transfer:  TransferUnspecified,
		Primaries: PrimariesUnspecified,
	}
}

// Config is the fully resolved colorimetry for one stream. It is
// immutable after Resolve and shared read-only by all workers.
type Config struct {
	Width, Height int
	BitDepth      int
	SubsamplingX  int
	SubsamplingY  int
	RGB           bool
	FullRange     bool
	Matrix        Matrix
	Transfer      Transfer
	Primaries     Primaries
	ChromaLoc     ChromaLocation
}

// GuessMatrix infers matrix coefficients from resolution when a stream
// does not declare them. HD sizes assume BT.709, 576-line content
// assumes PAL, anything smaller assumes NTSC-era SMPTE 170M.
func GuessMatrix(width, height int) Matrix {
	if width >= 1280 || height > 576 {
		return MatrixBT709
	}
	if height == 576 {
		return MatrixBT470BG
	}
	return MatrixST170M
}

// GuessPrimaries infers color primaries from the resolved matrix and the
// resolution. Heuristic taken from mpv.
func GuessPrimaries(matrix Matrix, width, height int) Primaries {
	switch {
	case matrix == MatrixBT2020NCL || matrix == MatrixBT2020CL:
		return PrimariesBT2020
	case matrix == MatrixBT709 || width >= 1280 || height > 576:
		return PrimariesBT709
	case height == 576:
		return PrimariesBT470BG
	case height == 480 || height == 488:
		return PrimariesST170M
	default:
		return PrimariesBT709
	}
}

// Resolve layers o over s and fills anything still unspecified: matrix
// and primaries from the resolution heuristics, transfer always from the
// BT.1886 default, chroma location from the left-sited default. The
// result is applied independently per stream; source and distorted may
// resolve differently.
func Resolve(s Stream, o Overrides) Config {
	m, t, p := s.Matrix, s.Transfer, s.Primaries
	if o.Matrix != MatrixUnspecified {
		m = o.Matrix
	}
	if o.Transfer != TransferUnspecified {
		t = o.Transfer
	}
	if o.Primaries != PrimariesUnspecified {
		p = o.Primaries
	}

	if m == MatrixUnspecified {
		m = GuessMatrix(s.Width, s.Height)
	}
	if t == TransferUnspecified {
		t = TransferBT1886
	}
	if p == PrimariesUnspecified {
		p = GuessPrimaries(m, s.Width, s.Height)
	}

	loc := s.ChromaLoc
	if loc == ChromaUnspecified {
		loc = ChromaLeft
	}

	return Config{
		Width:        s.Width,
		Height:       s.Height,
		BitDepth:     s.BitDepth,
		SubsamplingX: s.SubsamplingX,
		SubsamplingY: s.SubsamplingY,
		RGB:          s.RGB,
		FullRange:    s.FullRange || o.FullRange,
		Matrix:       m,
		Transfer:     t,
		Primaries:    p,
		ChromaLoc:    loc,
	}
}
