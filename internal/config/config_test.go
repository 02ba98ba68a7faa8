package config_test

import (
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/plus3/pivotquad/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
half_extent: 2
size: 0.5
mode: 1
log_level: debug
`), 0o644))

	t.Setenv("PIVOTQUAD_SIZE", "0.25")
	t.Setenv("PIVOTQUAD_CORNER", "2")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(2), cfg.HalfExtent)
	assert.Equal(t, config.ModeReverse, cfg.Mode)
	assert.Equal(t, float32(0.25), cfg.Size, "env overrides file")
	assert.Equal(t, 2, cfg.Corner)
	assert.Equal(t, 640, cfg.WindowWidth, "defaults survive")
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("size: [not, a, number]"), 0o644))
	_, err = config.Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"zero size", func(c *config.Config) { c.Size = 0 }, config.ErrInvalidSize},
		{"negative half extent", func(c *config.Config) { c.HalfExtent = -1 }, config.ErrInvalidHalfExtent},
		{"inverted scale limits", func(c *config.Config) { c.MinScale, c.MaxScale = 2, 1 }, config.ErrInvalidScale},
		{"zero min scale", func(c *config.Config) { c.MinScale = 0 }, config.ErrInvalidScale},
		{"unknown mode", func(c *config.Config) { c.Mode = 7 }, config.ErrInvalidMode},
		{"corner out of range", func(c *config.Config) { c.Corner = 4 }, config.ErrInvalidCorner},
		{"no window", func(c *config.Config) { c.WindowWidth = 0 }, config.ErrInvalidWindow},
		{"short color list", func(c *config.Config) { c.Colors = c.Colors[:3] }, config.ErrInvalidColors},
		{"negative nudge", func(c *config.Config) { c.Nudge = -0.05 }, config.ErrInvalidNudge},
		{"NaN size", func(c *config.Config) { c.Size = math32.NaN() }, config.ErrNotFinite},
		{"infinite half extent", func(c *config.Config) { c.HalfExtent = math32.Inf(1) }, config.ErrNotFinite},
		{"NaN nudge", func(c *config.Config) { c.Nudge = math32.NaN() }, config.ErrNotFinite},
		{"infinite angle step", func(c *config.Config) { c.AngleStep = math32.Inf(-1) }, config.ErrNotFinite},
		{"NaN scale step", func(c *config.Config) { c.ScaleStep = math32.NaN() }, config.ErrNotFinite},
		{"NaN min scale", func(c *config.Config) { c.MinScale = math32.NaN() }, config.ErrNotFinite},
		{"infinite max scale", func(c *config.Config) { c.MaxScale = math32.Inf(1) }, config.ErrNotFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	t.Run("unparseable color", func(t *testing.T) {
		cfg := config.Default()
		cfg.Colors = append([]string(nil), cfg.Colors...)
		cfg.Colors[4] = "not-a-color"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero nudge", func(t *testing.T) {
		cfg := config.Default()
		cfg.Nudge = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestVertexColors(t *testing.T) {
	cfg := config.Default()
	cfg.Colors = []string{"#f00", "lime", "#0000ff", "Red", "#00000080", "yellow"}
	require.NoError(t, cfg.Validate())

	got := cfg.VertexColors()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, got[0])
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, got[1])
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, got[3])
	assert.Equal(t, color.RGBA{0, 0, 0, 128}, got[4])
	assert.Equal(t, color.RGBA{255, 255, 0, 255}, got[5])
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "chatty"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
