package avcodec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

// ErrShortSideData is returned when a payload is smaller than the struct it
// is supposed to hold.
var ErrShortSideData = errors.New("side data payload too short")

// Denominators FFmpeg's parsers use when filling mastering display metadata.
const (
	ChromaDenominator    = 50000
	LuminanceDenominator = 10000
)

// MasteringDisplayMetadata is AVMasteringDisplayMetadata (SMPTE ST 2086).
type MasteringDisplayMetadata struct {
	// CIE 1931 xy chromaticity of the R, G and B primaries.
	DisplayPrimaries [3][2]avtime.Rational
	WhitePoint       [2]avtime.Rational
	// cd/m2
	MinLuminance avtime.Rational
	MaxLuminance avtime.Rational

	HasPrimaries bool
	HasLuminance bool
}

// sizeof(AVMasteringDisplayMetadata)
const masteringDisplaySize = (3*2+2+2)*8 + 2*4

func putRational(b []byte, r avtime.Rational) []byte {
	b = binary.NativeEndian.AppendUint32(b, uint32(r.Num))
	return binary.NativeEndian.AppendUint32(b, uint32(r.Den))
}

func getRational(b []byte) avtime.Rational {
	return avtime.Rational{
		Num: int32(binary.NativeEndian.Uint32(b)),
		Den: int32(binary.NativeEndian.Uint32(b[4:])),
	}
}

func putBool(b []byte, v bool) []byte {
	var n uint32
	if v {
		n = 1
	}
	return binary.NativeEndian.AppendUint32(b, n)
}

// Marshal encodes m with the AVMasteringDisplayMetadata memory layout.
func (m *MasteringDisplayMetadata) Marshal() []byte {
	b := make([]byte, 0, masteringDisplaySize)
	for _, p := range m.DisplayPrimaries {
		b = putRational(b, p[0])
		b = putRational(b, p[1])
	}
	b = putRational(b, m.WhitePoint[0])
	b = putRational(b, m.WhitePoint[1])
	b = putRational(b, m.MinLuminance)
	b = putRational(b, m.MaxLuminance)
	b = putBool(b, m.HasPrimaries)
	return putBool(b, m.HasLuminance)
}

// ParseMasteringDisplayMetadata decodes a MASTERING_DISPLAY_METADATA payload.
func ParseMasteringDisplayMetadata(b []byte) (MasteringDisplayMetadata, error) {
	var m MasteringDisplayMetadata
	if len(b) < masteringDisplaySize {
		return m, fmt.Errorf("%w: mastering display metadata is %d bytes, "+
			"want %d", ErrShortSideData, len(b), masteringDisplaySize)
	}

	off := 0
	next := func() avtime.Rational {
		r := getRational(b[off:])
		off += 8
		return r
	}

	for i := range m.DisplayPrimaries {
		m.DisplayPrimaries[i][0] = next()
		m.DisplayPrimaries[i][1] = next()
	}
	m.WhitePoint[0], m.WhitePoint[1] = next(), next()
	m.MinLuminance, m.MaxLuminance = next(), next()
	m.HasPrimaries = binary.NativeEndian.Uint32(b[off:]) != 0
	m.HasLuminance = binary.NativeEndian.Uint32(b[off+4:]) != 0
	return m, nil
}

// ContentLightMetadata is AVContentLightMetadata (CTA-861.3).
type ContentLightMetadata struct {
	MaxCLL  uint32
	MaxFALL uint32
}

func (c ContentLightMetadata) Marshal() []byte {
	b := binary.NativeEndian.AppendUint32(make([]byte, 0, 8), c.MaxCLL)
	return binary.NativeEndian.AppendUint32(b, c.MaxFALL)
}

// ParseContentLightMetadata decodes a CONTENT_LIGHT_LEVEL payload.
func ParseContentLightMetadata(b []byte) (ContentLightMetadata, error) {
	if len(b) < 8 {
		return ContentLightMetadata{}, fmt.Errorf(
			"%w: content light level is %d bytes, want 8", ErrShortSideData,
			len(b))
	}
	return ContentLightMetadata{
		MaxCLL:  binary.NativeEndian.Uint32(b),
		MaxFALL: binary.NativeEndian.Uint32(b[4:]),
	}, nil
}

// DOVIConfig is AVDOVIDecoderConfigurationRecord.
type DOVIConfig struct {
	VersionMajor            uint8
	VersionMinor            uint8
	Profile                 uint8
	Level                   uint8
	RPUPresent              bool
	ELPresent               bool
	BLPresent               bool
	BLSignalCompatibilityID uint8
	MetadataCompression     uint8
}

// Older libavutil releases stop before dv_md_compression.
const (
	doviConfigMinSize = 8
	doviConfigSize    = 9
)

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func (d DOVIConfig) Marshal() []byte {
	return []byte{d.VersionMajor, d.VersionMinor, d.Profile, d.Level,
		boolByte(d.RPUPresent), boolByte(d.ELPresent), boolByte(d.BLPresent),
		d.BLSignalCompatibilityID, d.MetadataCompression}
}

// ParseDOVIConfig decodes a DOVI_CONF payload.
func ParseDOVIConfig(b []byte) (DOVIConfig, error) {
	if len(b) < doviConfigMinSize {
		return DOVIConfig{}, fmt.Errorf(
			"%w: dovi configuration is %d bytes, want %d", ErrShortSideData,
			len(b), doviConfigMinSize)
	}
	d := DOVIConfig{
		VersionMajor:            b[0],
		VersionMinor:            b[1],
		Profile:                 b[2],
		Level:                   b[3],
		RPUPresent:              b[4] != 0,
		ELPresent:               b[5] != 0,
		BLPresent:               b[6] != 0,
		BLSignalCompatibilityID: b[7],
	}
	if len(b) >= doviConfigSize {
		d.MetadataCompression = b[8]
	}
	return d, nil
}

// String returns the codec string form, for example dvhe.08.06.
func (d DOVIConfig) String() string {
	var prefix string
	switch d.Profile {
	case 9:
		prefix = "dvav"
	case 10:
		prefix = "dav1"
	default:
		prefix = "dvhe"
	}
	return fmt.Sprintf("%s.%02d.%02d", prefix, d.Profile, d.Level)
}
