package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/forestrie/go-playlist/playlist"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatCBOR = "cbor"
)

var (
	ErrUnknownFormat = errors.New("unknown script format")
	ErrConfig        = errors.New("invalid configuration")
)

// Config is the yaml configuration file. Flags given on the command line
// override the file.
type Config struct {
	LogLevel      string `yaml:"log_level"`
	SegmentHeight uint8  `yaml:"segment_height"`
	Metrics       bool   `yaml:"metrics"`
	// Format is text or cbor. Empty selects by file extension.
	Format string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:      "NOOP",
		SegmentHeight: playlist.DefaultSegmentHeight,
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %w", ErrConfig, path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.SegmentHeight > playlist.MaxSegmentHeight {
		return fmt.Errorf("%w: segment_height %d exceeds %d", ErrConfig, c.SegmentHeight, playlist.MaxSegmentHeight)
	}
	switch c.Format {
	case "", formatText, formatCBOR:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	if c.LogLevel == "" {
		return fmt.Errorf("%w: log_level is empty", ErrConfig)
	}
	return nil
}
