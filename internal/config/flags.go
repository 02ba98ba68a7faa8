package config

import (
	"flag"
	"fmt"
	"strconv"
)

// Flags binds command-line overrides to a FlagSet. Only flags that were
// actually given replace values from the file and environment.
type Flags struct {
	Path string

	fs     *flag.FlagSet
	values Config
}

// NewFlags registers the shared flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()

	fs.StringVar(&f.Path, "config", "", "path to a YAML config file")
	fs.IntVar(&f.values.WindowWidth, "width", d.WindowWidth, "window width in pixels")
	fs.IntVar(&f.values.WindowHeight, "height", d.WindowHeight, "window height in pixels")
	fs.Func("size", fmt.Sprintf("side of the square in world units (default %g)", d.Size), float32Setter(&f.values.Size))
	fs.Func("half-extent", fmt.Sprintf("viewport half width (default %g)", d.HalfExtent), float32Setter(&f.values.HalfExtent))
	fs.IntVar(&f.values.Corner, "corner", d.Corner, "initial pivot corner, 0..3 counter-clockwise from bottom-left")
	fs.IntVar(&f.values.Mode, "mode", d.Mode, "collision mode: 0 re-anchors the pivot, 1 reverses rotation")
	fs.Func("angle-step", fmt.Sprintf("rotation per frame in radians (default %g)", d.AngleStep), float32Setter(&f.values.AngleStep))
	fs.Func("scale-step", fmt.Sprintf("scale change per frame (default %g)", d.ScaleStep), float32Setter(&f.values.ScaleStep))
	fs.Func("min-scale", fmt.Sprintf("lower scale limit (default %g)", d.MinScale), float32Setter(&f.values.MinScale))
	fs.Func("max-scale", fmt.Sprintf("upper scale limit (default %g)", d.MaxScale), float32Setter(&f.values.MaxScale))
	fs.Func("nudge", fmt.Sprintf("corrective translation after a hit (default %g)", d.Nudge), float32Setter(&f.values.Nudge))
	fs.BoolVar(&f.values.Debug, "debug", d.Debug, "start with the debug overlay open")
	fs.StringVar(&f.values.LogLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")

	return f
}

func float32Setter(dst *float32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*dst = float32(v)
		return nil
	}
}

// Load reads the config file and environment, applies the flags that were
// set and validates the result. fs must already be parsed.
func (f *Flags) Load() (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return cfg, err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.WindowWidth = f.values.WindowWidth
		case "height":
			cfg.WindowHeight = f.values.WindowHeight
		case "size":
			cfg.Size = f.values.Size
		case "half-extent":
			cfg.HalfExtent = f.values.HalfExtent
		case "corner":
			cfg.Corner = f.values.Corner
		case "mode":
			cfg.Mode = f.values.Mode
		case "angle-step":
			cfg.AngleStep = f.values.AngleStep
		case "scale-step":
			cfg.ScaleStep = f.values.ScaleStep
		case "min-scale":
			cfg.MinScale = f.values.MinScale
		case "max-scale":
			cfg.MaxScale = f.values.MaxScale
		case "nudge":
			cfg.Nudge = f.values.Nudge
		case "debug":
			cfg.Debug = f.values.Debug
		case "log-level":
			cfg.LogLevel = f.values.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
