package metrics

import (
	"fmt"

	vship "github.com/GreatValueCreamSoda/govship"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
)

// vshipColorspace translates resolved colorimetry into the descriptor
// libvship consumes. vship exposes a narrower enum set than H.273, so a
// few values fold to their nearest supported neighbor and everything
// else is rejected as unsupported.
func vshipColorspace(cfg colorspace.Config) (vship.Colorspace, error) {
	cs := vship.Colorspace{
		Width:                   int64(cfg.Width),
		Height:                  int64(cfg.Height),
		TargetWidth:             int64(cfg.Width),
		TargetHeight:            int64(cfg.Height),
		ChromaSubsamplingWidth:  cfg.SubsamplingX,
		ChromaSubsamplingHeight: cfg.SubsamplingY,
	}

	switch cfg.BitDepth {
	case 8:
		cs.SamplingFormat = vship.SamplingFormatUInt8
	case 9:
		cs.SamplingFormat = vship.SamplingFormatUInt9
	case 10:
		cs.SamplingFormat = vship.SamplingFormatUInt10
	case 12:
		cs.SamplingFormat = vship.SamplingFormatUInt12
	case 14:
		cs.SamplingFormat = vship.SamplingFormatUInt14
	case 16:
		cs.SamplingFormat = vship.SamplingFormatUInt16
	default:
		return cs, fmt.Errorf("%w: %d-bit samples",
			decode.ErrUnsupportedStream, cfg.BitDepth)
	}

	if cfg.FullRange {
		cs.ColorRange = vship.ColorRangeFull
	} else {
		cs.ColorRange = vship.ColorRangeLimited
	}

	if cfg.RGB {
		cs.ColorFamily = vship.ColorFamilyRGB
	} else {
		cs.ColorFamily = vship.ColorFamilyYUV
	}

	// vship has no bottom-sited positions; bottom variants keep their
	// horizontal alignment.
	switch cfg.ChromaLoc {
	case colorspace.ChromaCenter, colorspace.ChromaBottom:
		cs.ChromaLocation = vship.ChromaLocationCenter
	case colorspace.ChromaTopLeft:
		cs.ChromaLocation = vship.ChromaLocationTopLeft
	case colorspace.ChromaTop:
		cs.ChromaLocation = vship.ChromaLocationTop
	default:
		cs.ChromaLocation = vship.ChromaLocationLeft
	}

	switch cfg.Matrix {
	case colorspace.MatrixIdentity:
		cs.ColorMatrix = vship.ColorMatrixRGB
	case colorspace.MatrixBT709:
		cs.ColorMatrix = vship.ColorMatrixBT709
	case colorspace.MatrixBT470BG:
		cs.ColorMatrix = vship.ColorMatrixBT470BG
	case colorspace.MatrixST170M:
		cs.ColorMatrix = vship.ColorMatrixST170M
	case colorspace.MatrixBT2020NCL:
		cs.ColorMatrix = vship.ColorMatrixBT2020NCL
	case colorspace.MatrixBT2020CL:
		cs.ColorMatrix = vship.ColorMatrixBT2020CL
	case colorspace.MatrixICtCp:
		cs.ColorMatrix = vship.ColorMatrixBT2100ICTCP
	default:
		return cs, fmt.Errorf("%w: matrix %s",
			decode.ErrUnsupportedStream, cfg.Matrix)
	}

	switch cfg.Transfer {
	case colorspace.TransferBT1886, colorspace.TransferBT2020Ten,
		colorspace.TransferBT2020Twel:
		// BT.2020 10/12-bit transfers share BT.1886's curve.
		cs.ColorTransfer = vship.ColorTransferTRCBT709
	case colorspace.TransferBT470M:
		cs.ColorTransfer = vship.ColorTransferTRCBT470_M
	case colorspace.TransferBT470BG:
		cs.ColorTransfer = vship.ColorTransferTRCBT470_BG
	case colorspace.TransferST170M:
		cs.ColorTransfer = vship.ColorTransferTRCBT601
	case colorspace.TransferLinear:
		cs.ColorTransfer = vship.ColorTransferTRCLinear
	case colorspace.TransferSRGB:
		cs.ColorTransfer = vship.ColorTransferTRCSRGB
	case colorspace.TransferPQ:
		cs.ColorTransfer = vship.ColorTransferTRCPQ
	case colorspace.TransferST428:
		cs.ColorTransfer = vship.ColorTransferTRCST428
	case colorspace.TransferHLG:
		cs.ColorTransfer = vship.ColorTransferTRCHLG
	default:
		return cs, fmt.Errorf("%w: transfer %s",
			decode.ErrUnsupportedStream, cfg.Transfer)
	}

	switch cfg.Primaries {
	case colorspace.PrimariesBT709:
		cs.ColorPrimaries = vship.ColorPrimariesBT709
	case colorspace.PrimariesBT470M:
		cs.ColorPrimaries = vship.ColorPrimariesBT470_M
	case colorspace.PrimariesBT470BG:
		cs.ColorPrimaries = vship.ColorPrimariesBT470_BG
	case colorspace.PrimariesST170M, colorspace.PrimariesST240M:
		// SMPTE-C is not in vship's set; BT.709 is the nearest gamut.
		cs.ColorPrimaries = vship.ColorPrimariesBT709
	case colorspace.PrimariesBT2020:
		cs.ColorPrimaries = vship.ColorPrimariesBT2020
	default:
		return cs, fmt.Errorf("%w: primaries %s",
			decode.ErrUnsupportedStream, cfg.Primaries)
	}

	return cs, nil
}
