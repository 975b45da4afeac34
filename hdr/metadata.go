package hdr

import (
	"fmt"

	"github.com/GreatValueCreamSoda/gopixfmts"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
)

// Metadata summarises everything HDR related known about a stream.
type Metadata struct {
	Format   Format `json:"format"`
	BitDepth int    `json:"bit_depth,omitempty"`

	Mastering    *avcodec.MasteringDisplayMetadata `json:"mastering_display,omitempty"`
	ContentLight *avcodec.ContentLightMetadata     `json:"content_light,omitempty"`
	DOVI         *avcodec.DOVIConfig               `json:"dolby_vision,omitempty"`

	// Clockwise display rotation in degrees.
	Rotation    float64 `json:"rotation"`
	HasRotation bool    `json:"has_rotation"`
}

// Describe decodes the HDR related coded side data of par. Side data that is
// present but malformed is an error.
func Describe(par *avcodec.CodecParameters) (Metadata, error) {
	var md Metadata
	if par == nil {
		return md, nil
	}
	md.Format = Classify(par, nil)
	md.BitDepth = bitDepth(par.PixelFormat)

	if sd := par.SideData(avcodec.PktDataMasteringDisplayMetadata); sd != nil {
		m, err := avcodec.ParseMasteringDisplayMetadata(sd.Data)
		if err != nil {
			return md, err
		}
		md.Mastering = &m
	}

	if sd := par.SideData(avcodec.PktDataContentLightLevel); sd != nil {
		c, err := avcodec.ParseContentLightMetadata(sd.Data)
		if err != nil {
			return md, err
		}
		md.ContentLight = &c
	}

	if sd := par.SideData(avcodec.PktDataDOVIConf); sd != nil {
		d, err := avcodec.ParseDOVIConfig(sd.Data)
		if err != nil {
			return md, err
		}
		md.DOVI = &d
	}

	if sd := par.SideData(avcodec.PktDataDisplayMatrix); sd != nil {
		m, err := avcodec.ParseDisplayMatrix(sd.Data)
		if err != nil {
			return md, err
		}
		md.Rotation, md.HasRotation = m.Rotation()
		if !md.HasRotation {
			md.Rotation = 0
		}
	}

	return md, nil
}

// PeakLuminance is the brightest level in cd/m2 the content is expected to
// reach: the mastering display peak, then MaxCLL, then a default for the
// transfer function.
func (m *Metadata) PeakLuminance() float64 {
	if m.Mastering != nil && m.Mastering.HasLuminance {
		if peak := m.Mastering.MaxLuminance.Float64(); peak > 0 {
			return peak
		}
	}
	if m.ContentLight != nil && m.ContentLight.MaxCLL > 0 {
		return float64(m.ContentLight.MaxCLL)
	}
	if m.Format == SDR {
		return DefaultSDRPeak
	}
	return DefaultHDRPeak
}

func (m *Metadata) String() string {
	s := fmt.Sprintf("%s, %d-bit, peak %.0f nits", m.Format, m.BitDepth,
		m.PeakLuminance())
	if m.DOVI != nil {
		s += ", " + m.DOVI.String()
	}
	return s
}

// bitDepth returns the depth of the first component of pixFmt, or 0 if the
// format is unknown.
func bitDepth(pixFmt gopixfmts.PixelFormat) int {
	desc, err := gopixfmts.PixFmtDescGet(pixFmt)
	if err != nil {
		return 0
	}
	comp, err := desc.Component(0)
	if err != nil {
		return 0
	}
	return int(comp.Depth)
}
