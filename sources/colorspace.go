package sources

import (
	"fmt"

	ffms "github.com/GreatValueCreamSoda/goffms2"
	"github.com/GreatValueCreamSoda/gopixfmts"
	vship "github.com/GreatValueCreamSoda/govship"
)

var samplingFormats = map[int]vship.SamplingFormat{
	8:  vship.SamplingFormatUInt8,
	9:  vship.SamplingFormatUInt9,
	10: vship.SamplingFormatUInt10,
	12: vship.SamplingFormatUInt12,
	14: vship.SamplingFormatUInt14,
	16: vship.SamplingFormatUInt16,
}

// renderColorspace describes a decoded ffms2 frame the way a vship based
// renderer expects it. Unset colour properties fall back to what encoders
// assume in practice: BT.709 matrix, transfer and primaries, limited range
// and left chroma siting.
func renderColorspace(frame *ffms.Frame) (vship.Colorspace, error) {
	var cs vship.Colorspace

	cs.Width = int64(frame.ScaledWidth)
	cs.Height = int64(frame.ScaledHeight)
	if cs.Width <= 0 || cs.Height <= 0 {
		cs.Width, cs.Height = int64(frame.EncodedWidth),
			int64(frame.EncodedHeight)
	}
	cs.TargetWidth, cs.TargetHeight = cs.Width, cs.Height

	desc, err := gopixfmts.PixFmtDescGet(gopixfmts.PixelFormat(
		frame.ConvertedPixelFormat))
	if err != nil {
		return cs, err
	}

	comp, err := desc.Component(0)
	if err != nil {
		return cs, err
	}

	sampling, ok := samplingFormats[int(comp.Depth)]
	if !ok {
		return cs, fmt.Errorf("unsupported %d-bit pixel format %s",
			int(comp.Depth), desc.Name())
	}
	cs.SamplingFormat = sampling

	switch frame.ColorRange {
	case 0, int(gopixfmts.ColorRangeMPEG):
		cs.ColorRange = vship.ColorRangeLimited
	default:
		cs.ColorRange = vship.ColorRangeFull
	}

	cs.ChromaSubsamplingHeight = desc.Log2ChromaH()
	cs.ChromaSubsamplingWidth = desc.Log2ChromaW()

	cs.ChromaLocation = 1 // left
	if frame.ChromaLocation > 0 {
		cs.ChromaLocation = vship.ChromaLocation(frame.ChromaLocation)
	}

	rgb := desc.Flags()&uint64(gopixfmts.PixFmtFlagRGB) != 0
	if rgb {
		cs.ColorFamily = vship.ColorFamilyRGB
	} else {
		cs.ColorFamily = vship.ColorFamilyYUV
	}

	switch {
	case frame.ColorSpace > 0:
		cs.ColorMatrix = vship.ColorMatrix(frame.ColorSpace)
	case rgb:
		cs.ColorMatrix = 0
	default:
		cs.ColorMatrix = 1 // BT.709
	}

	cs.ColorTransfer = 1
	if frame.TransferCharateristics > 0 {
		cs.ColorTransfer = vship.ColorTransfer(frame.TransferCharateristics)
	}

	cs.ColorPrimaries = 1
	if frame.ColorPrimaries > 0 {
		cs.ColorPrimaries = vship.ColorPrimaries(frame.ColorPrimaries)
	}

	return cs, nil
}
