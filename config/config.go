// Package config loads hdrplay's YAML configuration. Decoding is strict and
// every field has an explicit default, so an empty file is a valid config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Decode   DecodeConfig   `yaml:"decode"`
	Playback PlaybackConfig `yaml:"playback"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type DecodeConfig struct {
	Threads      int           `yaml:"threads"`       // 0 picks half the CPUs
	SeekMode     string        `yaml:"seek_mode"`     // ffms2 seek mode name
	QueueDepth   int           `yaml:"queue_depth"`   // frames between stages
	MaxRetries   int           `yaml:"max_retries"`   // EAGAIN retries per frame
	RetryBackoff time.Duration `yaml:"retry_backoff"` // first retry delay
}

type PlaybackConfig struct {
	Realtime  bool `yaml:"realtime"`
	DropLate  bool `yaml:"drop_late"`
	MaxFrames int  `yaml:"max_frames"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
	Port   int    `yaml:"port"`
	Dev    bool   `yaml:"dev"` // gin debug mode and request logging
}

type LogConfig struct {
	Level string `yaml:"level"` // quiet, panic, fatal, error, warning, info, verbose, debug or trace
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := preset()
	cfg.setDefaults()
	return &cfg
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	cfg := preset()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	// An empty document decodes to io.EOF.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// preset holds the defaults whose zero value is also a legal setting. They
// are filled in before decoding so only omitted keys keep them.
func preset() Config {
	return Config{Decode: DecodeConfig{MaxRetries: 8}}
}

func (c *Config) setDefaults() {
	if c.Decode.SeekMode == "" {
		c.Decode.SeekMode = "normal"
	}
	if c.Decode.QueueDepth == 0 {
		c.Decode.QueueDepth = 4
	}
	if c.Decode.RetryBackoff == 0 {
		c.Decode.RetryBackoff = time.Millisecond
	}
	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Log.Level == "" {
		c.Log.Level = "error"
	}
}

// Addr is the host:port the API server listens on.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Listen, strconv.Itoa(s.Port))
}
