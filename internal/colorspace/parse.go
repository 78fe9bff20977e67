package colorspace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnrecognizedToken reports a user-supplied colorimetry name or code
// that matches no known value. Parsing never falls back to a default.
var ErrUnrecognizedToken = errors.New("unrecognized colorimetry token")

// ParseMatrix interprets a numeric H.273 code or a case-insensitive
// alias ("bt709", "pal", "ntsc", "ictcp", ...) as matrix coefficients.
func ParseMatrix(input string) (Matrix, error) {
	if n, err := strconv.Atoi(input); err == nil {
		m := Matrix(n)
		if m.defined() {
			return m, nil
		}
		return 0, fmt.Errorf("%w: matrix coefficients %q", ErrUnrecognizedToken, input)
	}

	switch strings.ToLower(input) {
	case "identity", "rgb", "srgb", "smpte428", "xyz":
		return MatrixIdentity, nil
	case "709", "bt709":
		return MatrixBT709, nil
	case "unspecified":
		return MatrixUnspecified, nil
	case "bt470m", "470m":
		return MatrixBT470M, nil
	case "bt470bg", "470bg", "601-625", "bt601-625", "pal":
		return MatrixBT470BG, nil
	case "smpte170m", "170m", "601-525", "bt601-525", "bt601", "601", "ntsc":
		return MatrixST170M, nil
	case "240m", "smpte240m":
		return MatrixST240M, nil
	case "ycgco":
		return MatrixYCgCo, nil
	case "2020", "2020ncl", "2020-ncl", "bt2020", "bt2020ncl", "bt2020-ncl":
		return MatrixBT2020NCL, nil
	case "2020cl", "2020-cl", "bt2020cl", "bt2020-cl":
		return MatrixBT2020CL, nil
	case "2085", "smpte2085":
		return MatrixST2085, nil
	case "cd-ncl":
		return MatrixCDNCL, nil
	case "cd-cl":
		return MatrixCDCL, nil
	case "2100", "bt2100", "ictcp":
		return MatrixICtCp, nil
	}
	return 0, fmt.Errorf("%w: matrix coefficients %q", ErrUnrecognizedToken, input)
}

// ParseTransfer interprets a numeric H.273 code or a case-insensitive
// alias ("bt1886", "srgb", "pq", "hlg", ...) as a transfer
// characteristic.
func ParseTransfer(input string) (Transfer, error) {
	if n, err := strconv.Atoi(input); err == nil {
		t := Transfer(n)
		if t.defined() {
			return t, nil
		}
		return 0, fmt.Errorf("%w: transfer characteristics %q", ErrUnrecognizedToken, input)
	}

	switch strings.ToLower(input) {
	case "709", "bt709", "1886", "bt1886", "1361", "bt1361":
		return TransferBT1886, nil
	case "unspecified":
		return TransferUnspecified, nil
	case "470m", "bt470m", "pal":
		return TransferBT470M, nil
	case "470bg", "bt470bg":
		return TransferBT470BG, nil
	case "601", "bt601", "ntsc", "smpte170m", "170m", "1358", "bt1358", "1700", "bt1700":
		return TransferST170M, nil
	case "240m", "smpte240m":
		return TransferST240M, nil
	case "linear":
		return TransferLinear, nil
	case "log100":
		return TransferLog100, nil
	case "log316":
		return TransferLog316, nil
	case "xvycc":
		return TransferXVYCC, nil
	case "1361e", "bt1361e":
		return TransferBT1361E, nil
	case "srgb":
		return TransferSRGB, nil
	case "2020", "bt2020", "2020-10", "bt2020-10":
		return TransferBT2020Ten, nil
	case "2020-12", "bt2020-12":
		return TransferBT2020Twel, nil
	case "pq", "2084", "smpte2084", "2100", "bt2100":
		return TransferPQ, nil
	case "428", "smpte428":
		return TransferST428, nil
	case "hlg", "b67", "arib-b67":
		return TransferHLG, nil
	}
	return 0, fmt.Errorf("%w: transfer characteristics %q", ErrUnrecognizedToken, input)
}

// ParsePrimaries interprets a numeric H.273 code or a case-insensitive
// alias ("bt709", "p3", "film", ...) as color primaries.
func ParsePrimaries(input string) (Primaries, error) {
	if n, err := strconv.Atoi(input); err == nil {
		p := Primaries(n)
		if p.defined() {
			return p, nil
		}
		return 0, fmt.Errorf("%w: color primaries %q", ErrUnrecognizedToken, input)
	}

	switch strings.ToLower(input) {
	case "709", "bt709", "1361", "bt1361", "srgb":
		return PrimariesBT709, nil
	case "unspecified":
		return PrimariesUnspecified, nil
	case "470m", "bt470m":
		return PrimariesBT470M, nil
	case "470bg", "bt470bg", "601-625", "bt601-625", "pal":
		return PrimariesBT470BG, nil
	case "smpte170m", "170m", "601-525", "bt601-525", "bt601", "601", "ntsc":
		return PrimariesST170M, nil
	case "240m", "smpte240m":
		return PrimariesST240M, nil
	case "film", "c":
		return PrimariesFilm, nil
	case "2020", "bt2020", "2100", "bt2100":
		return PrimariesBT2020, nil
	case "428", "smpte428", "xyz":
		return PrimariesST428, nil
	case "p3", "p3dci", "p3-dci", "431", "smpte431":
		return PrimariesP3DCI, nil
	case "p3display", "p3-display", "432", "smpte432":
		return PrimariesP3Display, nil
	case "3213", "tech3213":
		return PrimariesTech3213, nil
	}
	return 0, fmt.Errorf("%w: color primaries %q", ErrUnrecognizedToken, input)
}

func (m Matrix) defined() bool {
	switch m {
	case MatrixIdentity, MatrixBT709, MatrixUnspecified, MatrixBT470M,
		MatrixBT470BG, MatrixST170M, MatrixST240M, MatrixYCgCo,
		MatrixBT2020NCL, MatrixBT2020CL, MatrixST2085, MatrixCDNCL,
		MatrixCDCL, MatrixICtCp:
		return true
	}
	return false
}

func (t Transfer) defined() bool {
	switch t {
	case TransferBT1886, TransferUnspecified, TransferBT470M,
		TransferBT470BG, TransferST170M, TransferST240M, TransferLinear,
		TransferLog100, TransferLog316, TransferXVYCC, TransferBT1361E,
		TransferSRGB, TransferBT2020Ten, TransferBT2020Twel, TransferPQ,
		TransferST428, TransferHLG:
		return true
	}
	return false
}

func (p Primaries) defined() bool {
	switch p {
	case PrimariesBT709, PrimariesUnspecified, PrimariesBT470M,
		PrimariesBT470BG, PrimariesST170M, PrimariesST240M, PrimariesFilm,
		PrimariesBT2020, PrimariesST428, PrimariesP3DCI,
		PrimariesP3Display, PrimariesTech3213:
		return true
	}
	return false
}

func (m Matrix) String() string {
	switch m {
	case MatrixIdentity:
		return "identity"
	case MatrixBT709:
		return "bt709"
	case MatrixUnspecified:
		return "unspecified"
	case MatrixBT470M:
		return "bt470m"
	case MatrixBT470BG:
		return "bt470bg"
	case MatrixST170M:
		return "smpte170m"
	case MatrixST240M:
		return "smpte240m"
	case MatrixYCgCo:
		return "ycgco"
	case MatrixBT2020NCL:
		return "bt2020-ncl"
	case MatrixBT2020CL:
		return "bt2020-cl"
	case MatrixST2085:
		return "smpte2085"
	case MatrixCDNCL:
		return "cd-ncl"
	case MatrixCDCL:
		return "cd-cl"
	case MatrixICtCp:
		return "ictcp"
	}
	return fmt.Sprintf("matrix(%d)", int(m))
}

func (t Transfer) String() string {
	switch t {
	case TransferBT1886:
		return "bt1886"
	case TransferUnspecified:
		return "unspecified"
	case TransferBT470M:
		return "bt470m"
	case TransferBT470BG:
		return "bt470bg"
	case TransferST170M:
		return "smpte170m"
	case TransferST240M:
		return "smpte240m"
	case TransferLinear:
		return "linear"
	case TransferLog100:
		return "log100"
	case TransferLog316:
		return "log316"
	case TransferXVYCC:
		return "xvycc"
	case TransferBT1361E:
		return "bt1361e"
	case TransferSRGB:
		return "srgb"
	case TransferBT2020Ten:
		return "bt2020-10"
	case TransferBT2020Twel:
		return "bt2020-12"
	case TransferPQ:
		return "pq"
	case TransferST428:
		return "smpte428"
	case TransferHLG:
		return "hlg"
	}
	return fmt.Sprintf("transfer(%d)", int(t))
}

func (p Primaries) String() string {
	switch p {
	case PrimariesBT709:
		return "bt709"
	case PrimariesUnspecified:
		return "unspecified"
	case PrimariesBT470M:
		return "bt470m"
	case PrimariesBT470BG:
		return "bt470bg"
	case PrimariesST170M:
		return "smpte170m"
	case PrimariesST240M:
		return "smpte240m"
	case PrimariesFilm:
		return "film"
	case PrimariesBT2020:
		return "bt2020"
	case PrimariesST428:
		return "smpte428"
	case PrimariesP3DCI:
		return "p3-dci"
	case PrimariesP3Display:
		return "p3-display"
	case PrimariesTech3213:
		return "tech3213"
	}
	return fmt.Sprintf("primaries(%d)", int(p))
}
