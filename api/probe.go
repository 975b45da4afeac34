package api

import (
	"context"
	"fmt"
	"time"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/hdr"
	"github.com/GreatValueCreamSoda/hdrplay/media"
	"github.com/GreatValueCreamSoda/hdrplay/sources"
)

// Prober inspects a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (*ProbeResult, error)
}

type SideDataInfo struct {
	Type int    `json:"type"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ProbeResult is the JSON description of a probed stream.
type ProbeResult struct {
	Path      string  `json:"path"`
	Format    string  `json:"format,omitempty"`
	Codec     string  `json:"codec,omitempty"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FrameRate string  `json:"frame_rate"`
	TimeBase  string  `json:"time_base"`
	NumFrames int     `json:"frames"`
	Duration  float64 `json:"duration_seconds"`

	PixelFormat    int `json:"pix_fmt"`
	ColorRange     int `json:"color_range"`
	ColorSpace     int `json:"color_space"`
	ColorTransfer  int `json:"color_transfer"`
	ColorPrimaries int `json:"color_primaries"`

	HDR           hdr.Metadata   `json:"hdr"`
	PeakLuminance float64        `json:"peak_luminance"`
	SideData      []SideDataInfo `json:"side_data"`

	ProbedAt time.Time `json:"probed_at"`
}

// Describe builds a ProbeResult from an opened source.
func Describe(src media.Source) (*ProbeResult, error) {
	info := src.StreamInfo()
	if info == nil || info.Codec == nil {
		return nil, fmt.Errorf("source exposes no codec parameters")
	}
	par := info.Codec

	meta, err := hdr.Describe(par)
	if err != nil {
		return nil, fmt.Errorf("describe hdr metadata: %w", err)
	}

	res := &ProbeResult{
		Path:           info.Path,
		Format:         info.Format,
		Codec:          par.CodecName,
		Width:          par.Width,
		Height:         par.Height,
		FrameRate:      info.FrameRate.String(),
		TimeBase:       info.TimeBase.String(),
		NumFrames:      info.NumFrames,
		Duration:       info.Duration.Seconds(),
		PixelFormat:    int(par.PixelFormat),
		ColorRange:     int(par.ColorRange),
		ColorSpace:     int(par.ColorSpace),
		ColorTransfer:  int(par.ColorTransfer),
		ColorPrimaries: int(par.ColorPrimaries),
		HDR:            meta,
		PeakLuminance:  meta.PeakLuminance(),
		SideData:       sideDataInfo(par.CodedSideData),
		ProbedAt:       time.Now().UTC(),
	}
	return res, nil
}

func sideDataInfo(side []avcodec.PacketSideData) []SideDataInfo {
	out := make([]SideDataInfo, 0, len(side))
	for _, sd := range side {
		out = append(out, SideDataInfo{int(sd.Type), sd.Type.String(),
			len(sd.Data)})
	}
	return out
}

// FFmsProber probes files by opening them with ffms2.
type FFmsProber struct {
	Options sources.Options
}

func (p FFmsProber) Probe(ctx context.Context, path string) (*ProbeResult,
	error) {
	src, err := sources.Open(ctx, path, p.Options)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return Describe(src)
}
