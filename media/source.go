// Package media defines the decoded frame, the description of a video stream
// and the contract every decoder backend satisfies.
package media

import (
	"context"
	"time"

	"github.com/GreatValueCreamSoda/hdrplay/avcodec"
	"github.com/GreatValueCreamSoda/hdrplay/avtime"
)

// Source produces decoded frames in presentation order.
type Source interface {
	// ReadFrame decodes the next frame into frame. It returns averror.ErrEOF
	// once the stream is exhausted and may return averror.EAGAIN() when no
	// frame is ready yet, in which case the call should be retried.
	ReadFrame(ctx context.Context, frame *Frame) error
	StreamInfo() *StreamInfo
	Close() error
}

// StreamInfo describes the video stream a Source decodes.
type StreamInfo struct {
	Path   string
	Format string // container format name

	Codec *avcodec.CodecParameters

	// Time base of Frame.PTS and Frame.Duration.
	TimeBase  avtime.Rational
	FrameRate avtime.Rational
	NumFrames int
	Duration  time.Duration

	// Decoded layout, as needed by NewFrame.
	PlaneSizes   [3]int
	PlaneStrides [3]int
}

// FrameDuration is the nominal duration of one frame in TimeBase units, 0 if
// either rational is unset.
func (s *StreamInfo) FrameDuration() int64 {
	if s.FrameRate.IsZero() || s.TimeBase.IsZero() {
		return 0
	}
	return avtime.RescaleQ(1, s.FrameRate.Invert(), s.TimeBase)
}

// NewFrame allocates a frame sized for this stream.
func (s *StreamInfo) NewFrame() *Frame {
	return NewFrame(s.PlaneSizes, s.PlaneStrides)
}
