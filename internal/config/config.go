// Package config holds the demo's tunables. Values are layered: built-in
// defaults, then an optional YAML file, then PIVOTQUAD_* environment
// variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/core/math32"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Collision modes.
const (
	// ModeReanchor moves the pivot to the corner that left the viewport.
	ModeReanchor = 0
	// ModeReverse flips the direction of rotation.
	ModeReverse = 1
)

var (
	ErrInvalidSize       = errors.New("size must be positive")
	ErrInvalidHalfExtent = errors.New("half extent must be positive")
	ErrInvalidScale      = errors.New("invalid scale limits")
	ErrInvalidMode       = errors.New("unknown collision mode")
	ErrInvalidCorner     = errors.New("corner must be in 0..3")
	ErrInvalidWindow     = errors.New("window dimensions must be positive")
	ErrInvalidColors     = errors.New("wrong number of vertex colors")
	ErrInvalidNudge      = errors.New("nudge must not be negative")
	ErrNotFinite         = errors.New("value must be finite")
)

// VertexCount is the number of vertices in the square's geometry buffer.
const VertexCount = 6

// Config is the full set of demo settings.
type Config struct {
	WindowWidth  int    `yaml:"window_width"  env:"WINDOW_WIDTH"`
	WindowHeight int    `yaml:"window_height" env:"WINDOW_HEIGHT"`
	Title        string `yaml:"title"         env:"TITLE"`

	// HalfExtent is the viewport half-width in world units; the viewport
	// spans [-HalfExtent, HalfExtent] on both axes.
	HalfExtent float32 `yaml:"half_extent" env:"HALF_EXTENT"`
	Size       float32 `yaml:"size"        env:"SIZE"`

	Corner    int     `yaml:"corner"     env:"CORNER"`
	Mode      int     `yaml:"mode"       env:"MODE"`
	AngleStep float32 `yaml:"angle_step" env:"ANGLE_STEP"`
	ScaleStep float32 `yaml:"scale_step" env:"SCALE_STEP"`
	MinScale  float32 `yaml:"min_scale"  env:"MIN_SCALE"`
	MaxScale  float32 `yaml:"max_scale"  env:"MAX_SCALE"`
	Nudge     float32 `yaml:"nudge"      env:"NUDGE"`

	// Colors holds one color per vertex of the two triangles, as hex
	// (#rrggbb) or CSS names.
	Colors []string `yaml:"colors" env:"COLORS" envSeparator:","`

	Debug    bool   `yaml:"debug"     env:"DEBUG"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		WindowWidth:  640,
		WindowHeight: 640,
		Title:        "pivotquad",
		HalfExtent:   1,
		Size:         0.7,
		Corner:       0,
		Mode:         ModeReanchor,
		AngleStep:    0.03,
		ScaleStep:    0.004,
		MinScale:     0.6,
		MaxScale:     1.6,
		Nudge:        0.01,
		Colors: []string{
			"#ff0000", "#00ff00", "#0000ff",
			"#ff0000", "#0000ff", "#ffff00",
		},
		LogLevel: "info",
	}
}

// Load layers the YAML file at path (skipped when path is empty) and the
// environment on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PIVOTQUAD_"}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Validate reports the first setting that cannot drive the demo.
func (c Config) Validate() error {
	for _, field := range []struct {
		name  string
		value float32
	}{
		{"size", c.Size},
		{"half_extent", c.HalfExtent},
		{"angle_step", c.AngleStep},
		{"scale_step", c.ScaleStep},
		{"min_scale", c.MinScale},
		{"max_scale", c.MaxScale},
		{"nudge", c.Nudge},
	} {
		if math32.IsNaN(field.value) || math32.IsInf(field.value, 0) {
			return fmt.Errorf("%w: %s = %g", ErrNotFinite, field.name, field.value)
		}
	}

	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.WindowWidth, c.WindowHeight)
	case c.Size <= 0:
		return fmt.Errorf("%w: %g", ErrInvalidSize, c.Size)
	case c.HalfExtent <= 0:
		return fmt.Errorf("%w: %g", ErrInvalidHalfExtent, c.HalfExtent)
	case c.MinScale <= 0 || c.MinScale > c.MaxScale:
		return fmt.Errorf("%w: min %g max %g", ErrInvalidScale, c.MinScale, c.MaxScale)
	case c.Nudge < 0:
		return fmt.Errorf("%w: %g", ErrInvalidNudge, c.Nudge)
	case c.Mode != ModeReanchor && c.Mode != ModeReverse:
		return fmt.Errorf("%w: %d", ErrInvalidMode, c.Mode)
	case c.Corner < 0 || c.Corner > 3:
		return fmt.Errorf("%w: %d", ErrInvalidCorner, c.Corner)
	}
	if len(c.Colors) != VertexCount {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidColors, len(c.Colors), VertexCount)
	}
	for i, s := range c.Colors {
		if _, err := ParseColor(s); err != nil {
			return fmt.Errorf("color %d: %w", i, err)
		}
	}
	return nil
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
