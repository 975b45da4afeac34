// Package avcodec holds a Go owned view of the parts of AVCodecParameters the
// player cares about, most importantly the coded side data that carries HDR
// metadata from the container to the renderer.
package avcodec

import (
	"slices"

	"github.com/GreatValueCreamSoda/gopixfmts"

	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

// MediaType mirrors enum AVMediaType.
type MediaType int

const (
	MediaTypeUnknown MediaType = iota - 1
	MediaTypeVideo
	MediaTypeAudio
	MediaTypeData
	MediaTypeSubtitle
	MediaTypeAttachment
)

func (m MediaType) String() string {
	switch m {
	case MediaTypeVideo:
		return "video"
	case MediaTypeAudio:
		return "audio"
	case MediaTypeData:
		return "data"
	case MediaTypeSubtitle:
		return "subtitle"
	case MediaTypeAttachment:
		return "attachment"
	}
	return "unknown"
}

// PacketSideData is one typed side data payload. Data layout depends on Type
// and follows the in-memory structs libavutil uses for that type.
type PacketSideData struct {
	Type PacketSideDataType
	Data []byte
}

// CodecParameters describes an encoded stream.
type CodecParameters struct {
	CodecType MediaType
	CodecName string

	Width, Height  int
	PixelFormat    gopixfmts.PixelFormat
	ColorRange     gopixfmts.ColorRange
	ColorSpace     gopixfmts.ColorSpace
	ColorTransfer  gopixfmts.ColorTransferCharacteristic
	ColorPrimaries gopixfmts.ColorPrimaries
	ChromaLocation gopixfmts.ChromaLocation

	SampleAspectRatio avtime.Rational
	FrameRate         avtime.Rational
	BitRate           int64

	// Side data that applies to the whole stream.
	CodedSideData []PacketSideData
}

// GetCodecSideData returns the first entry of par.CodedSideData whose type is
// typ. It returns nil when par is nil, when it carries no side data and when
// nothing matches; callers cannot tell those cases apart.
//
// The returned entry is borrowed from par and stays valid until par's side
// data is next modified.
func GetCodecSideData(par *CodecParameters, typ PacketSideDataType) *PacketSideData {
	if par == nil || len(par.CodedSideData) == 0 {
		return nil
	}
	for i := range par.CodedSideData {
		if par.CodedSideData[i].Type == typ {
			return &par.CodedSideData[i]
		}
	}
	return nil
}

// SideData is GetCodecSideData in method form.
func (par *CodecParameters) SideData(typ PacketSideDataType) *PacketSideData {
	return GetCodecSideData(par, typ)
}

// AddSideData stores data under typ. An existing entry of the same type has
// its payload replaced, otherwise a new entry is appended. data is not
// copied.
func (par *CodecParameters) AddSideData(typ PacketSideDataType, data []byte) *PacketSideData {
	if sd := GetCodecSideData(par, typ); sd != nil {
		sd.Data = data
		return sd
	}
	par.CodedSideData = append(par.CodedSideData, PacketSideData{typ, data})
	return &par.CodedSideData[len(par.CodedSideData)-1]
}

// RemoveSideData drops every entry of type typ.
func (par *CodecParameters) RemoveSideData(typ PacketSideDataType) {
	par.CodedSideData = slices.DeleteFunc(par.CodedSideData,
		func(sd PacketSideData) bool { return sd.Type == typ })
}

// Clone returns a deep copy of par, including side data payloads.
func (par *CodecParameters) Clone() *CodecParameters {
	if par == nil {
		return nil
	}
	out := *par
	out.CodedSideData = make([]PacketSideData, len(par.CodedSideData))
	for i, sd := range par.CodedSideData {
		out.CodedSideData[i] = PacketSideData{sd.Type, slices.Clone(sd.Data)}
	}
	return &out
}
