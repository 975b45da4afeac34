// Package hdr classifies a stream's dynamic range and collects the HDR
// metadata a renderer needs, without touching pixel data.
package hdr

import (
	"fmt"
	"strings"

	"github.com/GreatValueCreamSoda/gopixfmts"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
)

type Format int

const (
	SDR Format = iota
	HLG
	HDR10
	HDR10Plus
	DolbyVision
)

var formatNames = [...]string{
	SDR:         "SDR",
	HLG:         "HLG",
	HDR10:       "HDR10",
	HDR10Plus:   "HDR10+",
	DolbyVision: "Dolby Vision",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFormat accepts the String form of a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(name, s) {
			return Format(i), nil
		}
	}
	return SDR, fmt.Errorf("unknown dynamic range format %q", s)
}

// Reference peak luminance in cd/m2 assumed when a stream carries no
// mastering or content light metadata.
const (
	DefaultSDRPeak = 100
	DefaultHDRPeak = 1000
)

func hasSideData(side []avcodec.PacketSideData,
	typ avcodec.PacketSideDataType) bool {
	for _, sd := range side {
		if sd.Type == typ && len(sd.Data) > 0 {
			return true
		}
	}
	return false
}

// Classify decides the dynamic range format of a stream from its codec
// parameters and, optionally, the side data of one of its frames. Dolby
// Vision wins over everything else; HDR10+ needs a PQ transfer plus dynamic
// metadata on the stream or the frame.
func Classify(par *avcodec.CodecParameters,
	frameSide []avcodec.PacketSideData) Format {
	if par == nil {
		return SDR
	}

	if par.SideData(avcodec.PktDataDOVIConf) != nil {
		return DolbyVision
	}

	switch par.ColorTransfer {
	case gopixfmts.ColorTransferCharacteristicSMPTE2084:
		if hasSideData(frameSide, avcodec.PktDataDynamicHDR10Plus) ||
			par.SideData(avcodec.PktDataDynamicHDR10Plus) != nil {
			return HDR10Plus
		}
		return HDR10
	case gopixfmts.ColorTransferCharacteristicARIB_STD_B67:
		return HLG
	}
	return SDR
}
