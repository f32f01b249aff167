package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/linesaver/internal/palette"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 320
	DefaultHeight       = 200
	DefaultLines        = 40
	DefaultAverageSpeed = 6
	DefaultFPS          = 30

	maxSide = 4096
)

// Restart policies applied when an effect is activated again after it was
// deactivated.
const (
	RestartFresh  = "fresh"
	RestartResume = "resume"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Lines        int    `yaml:"lines"`
	Hues         int    `yaml:"hues"`
	Shades       int    `yaml:"shades"`
	AverageSpeed int    `yaml:"average_speed"`
	FPS          int    `yaml:"fps"`
	Seed         int64  `yaml:"seed"`
	Restart      string `yaml:"restart"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Lines:        DefaultLines,
		Hues:         palette.DefaultHues,
		Shades:       palette.DefaultShades,
		AverageSpeed: DefaultAverageSpeed,
		FPS:          DefaultFPS,
		Restart:      RestartFresh,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Apply(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays the keys present in the file at path onto cfg and
// validates the result. Keys missing from the file keep cfg's values.
func Apply(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every tunable. Errors wrap ErrInvalid, or a palette
// error when hues and shades do not fit an 8-bit table.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Width > maxSide {
		return fmt.Errorf("%w: width %d not in [1, %d]", ErrInvalid, c.Width, maxSide)
	}
	if c.Height < 1 || c.Height > maxSide {
		return fmt.Errorf("%w: height %d not in [1, %d]", ErrInvalid, c.Height, maxSide)
	}
	if c.Lines < 1 {
		return fmt.Errorf("%w: lines must be at least 1, got %d", ErrInvalid, c.Lines)
	}
	if limit := max(c.Width, c.Height); c.AverageSpeed < 1 || c.AverageSpeed > limit {
		return fmt.Errorf("%w: average_speed %d not in [1, %d]", ErrInvalid, c.AverageSpeed, limit)
	}
	if c.FPS < 1 {
		return fmt.Errorf("%w: fps must be at least 1, got %d", ErrInvalid, c.FPS)
	}
	switch c.Restart {
	case "", RestartFresh, RestartResume:
	default:
		return fmt.Errorf("%w: restart %q (want %q or %q)", ErrInvalid, c.Restart, RestartFresh, RestartResume)
	}
	return palette.Validate(c.Hues, c.Shades)
}

// Resume reports whether reactivation continues the previous trajectory.
func (c *Config) Resume() bool { return c.Restart == RestartResume }

func (c *Config) Palette() (*palette.Palette, error) {
	return palette.New(c.Hues, c.Shades)
}
