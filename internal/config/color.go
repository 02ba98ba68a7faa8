package config

import (
	"image/color"
	"strings"

	"cogentcore.org/core/colors"
)

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" or a CSS color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return colors.FromHex(s)
	}
	return colors.FromName(strings.ToLower(s))
}

// VertexColors parses Colors. Call Validate first.
func (c Config) VertexColors() [VertexCount]color.RGBA {
	var out [VertexCount]color.RGBA
	for i := range out {
		if i < len(c.Colors) {
			out[i], _ = ParseColor(c.Colors[i])
		}
	}
	return out
}
