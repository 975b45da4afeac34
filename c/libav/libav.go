// Package libav reads libav's error codes, timestamp sentinel and codec side
// data straight from the FFmpeg headers. It only links against FFmpeg when
// built with the ffmpeg tag; without it the native Go values from averror and
// avtime are served instead and handle operations fail.
package libav

import "errors"

var (
	ErrFFmpegNotAvailable = errors.New("FFmpeg support not compiled in " +
		"(build with -tags ffmpeg)")
	ErrInvalidHandle = errors.New("codec parameters handle is closed or nil")
	ErrAllocFailed   = errors.New("avcodec_parameters_alloc returned nil")
)
