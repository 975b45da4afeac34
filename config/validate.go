package config

import (
	"fmt"

	ffms "github.com/GreatValueCreamSoda/goffms2"

	"github.com/GreatValueCreamSoda/hdrplay/playback"
	"github.com/GreatValueCreamSoda/hdrplay/sources"
)

var seekModes = map[string]ffms.SeekMode{
	"linear_no_rw": ffms.SeekLinearNoRw,
	"linear":       ffms.SeekLinear,
	"normal":       ffms.SeekNormal,
	"unsafe":       ffms.SeekUnsafe,
	"aggressive":   ffms.SeekAggressive,
}

// Validate reports the first out of range value.
func (c *Config) Validate() error {
	if err := c.Decode.Validate(); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if c.Playback.MaxFrames < 0 {
		return fmt.Errorf("playback config: max_frames must be >= 0, got %d",
			c.Playback.MaxFrames)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server config: port must be between 1 and 65535, "+
			"got %d", c.Server.Port)
	}
	if _, err := sources.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

func (d *DecodeConfig) Validate() error {
	if d.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", d.Threads)
	}
	if _, ok := seekModes[d.SeekMode]; !ok {
		return fmt.Errorf("unknown seek_mode %q", d.SeekMode)
	}
	if d.QueueDepth < 1 {
		return fmt.Errorf("queue_depth must be >= 1, got %d", d.QueueDepth)
	}
	if d.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", d.MaxRetries)
	}
	if d.RetryBackoff < 0 {
		return fmt.Errorf("retry_backoff must be >= 0, got %s", d.RetryBackoff)
	}
	return nil
}

// SourceOptions converts the decode section for sources.Open. The config must
// have been validated.
func (c *Config) SourceOptions() sources.Options {
	opts := sources.DefaultOptions()
	opts.Threads = c.Decode.Threads
	if mode, ok := seekModes[c.Decode.SeekMode]; ok {
		opts.SeekMode = mode
	}
	return opts
}

func (c *Config) PlaybackOptions() playback.Options {
	return playback.Options{
		QueueDepth:   c.Decode.QueueDepth,
		MaxRetries:   c.Decode.MaxRetries,
		RetryBackoff: c.Decode.RetryBackoff,
		Realtime:     c.Playback.Realtime,
		DropLate:     c.Playback.DropLate,
		MaxFrames:    c.Playback.MaxFrames,
	}
}
