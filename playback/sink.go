package playback

import (
	"context"
	"hash"
	"hash/fnv"

	"github.com/GreatValueCreamSoda/hdrplay/media"
)

// Sink receives frames in presentation order. The frame is only valid for
// the duration of the call; it goes back to the decoder's pool afterwards.
type Sink interface {
	Present(ctx context.Context, frame *media.Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, frame *media.Frame) error

func (f SinkFunc) Present(ctx context.Context, frame *media.Frame) error {
	return f(ctx, frame)
}

// NullSink discards frames, keeping a count and a running FNV-1a digest of
// every plane so two decodes of the same file can be compared.
type NullSink struct {
	frames int
	digest hash.Hash64
}

func NewNullSink() *NullSink { return &NullSink{digest: fnv.New64a()} }

func (s *NullSink) Present(_ context.Context, frame *media.Frame) error {
	data, _ := frame.Read()
	for _, plane := range data {
		s.digest.Write(plane)
	}
	s.frames++
	return nil
}

func (s *NullSink) Frames() int   { return s.frames }
func (s *NullSink) Sum64() uint64 { return s.digest.Sum64() }
