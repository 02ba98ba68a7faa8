// Package render draws the bounce state with ebiten and turns keyboard
// input into bounce actions.
package render

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/config"
	"github.com/plus3/pivotquad/internal/transform"
)

// Background is the clear color behind the square.
var Background = color.RGBA{24, 26, 32, 255}

// Screen is the singleton carrying the image to draw into for the current
// frame. It is only valid while the draw scheduler runs.
type Screen struct {
	Image *ebiten.Image
}

// HUD controls the text overlay.
type HUD struct {
	Hidden bool
}

var indices = []uint16{0, 1, 2, 3, 4, 5}

// newWhitePixel returns a 1x1 white source region so vertex colors come
// through unmodified.
func newWhitePixel() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// ToScreen maps a clip space point onto a w by h pixel grid with y down.
func ToScreen(clip math32.Vector2, w, h int) (float32, float32) {
	return (clip.X + 1) / 2 * float32(w), (1 - clip.Y) / 2 * float32(h)
}

// Vertices returns the square's six vertices projected through
// projection·model into screen pixels.
func Vertices(quad *bounce.Quad, frame *bounce.Frame, w, h int) []ebiten.Vertex {
	mvp := transform.Mul(frame.Projection, frame.Model)
	out := make([]ebiten.Vertex, 0, bounce.VertexCount)
	for i, p := range bounce.Vertices(quad.Size) {
		x, y := ToScreen(transform.Apply(mvp, p), w, h)
		c := quad.Colors[i]
		out = append(out, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(c.R) / 0xff,
			ColorG: float32(c.G) / 0xff,
			ColorB: float32(c.B) / 0xff,
			ColorA: float32(c.A) / 0xff,
		})
	}
	return out
}

// RenderSystem clears the screen, draws every square and prints the HUD.
type RenderSystem struct {
	Squares ecs.Query[struct {
		*bounce.Quad
		*bounce.Pose
		*bounce.Frame
	}]
	Screen   ecs.Singleton[Screen]
	Viewport ecs.Singleton[bounce.Viewport]
	Counters ecs.Singleton[bounce.Counters]
	HUD      ecs.Singleton[HUD]

	white *ebiten.Image
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	if s.white == nil {
		s.white = newWhitePixel()
	}
	dst := screen.Image
	dst.Fill(Background)

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	var pose *bounce.Pose
	for sq := range s.Squares.Iter() {
		dst.DrawTriangles(Vertices(sq.Quad, sq.Frame, w, h), indices, s.white, &ebiten.DrawTrianglesOptions{})
		pose = sq.Pose
	}

	if hud := s.HUD.Get(); hud != nil && hud.Hidden {
		return
	}
	ebitenutil.DebugPrint(dst, s.status(pose))
}

func (s *RenderSystem) status(pose *bounce.Pose) string {
	mode := "reanchor"
	if v := s.Viewport.Get(); v != nil && v.Mode == config.ModeReverse {
		mode = "reverse"
	}
	text := fmt.Sprintf("mode %s  FPS %.0f\n", mode, ebiten.ActualFPS())
	if pose != nil {
		text += fmt.Sprintf("pivot %d  angle %.2f  scale %.2f\n", pose.Corner, pose.Angle, pose.Scale)
	}
	if c := s.Counters.Get(); c != nil {
		text += fmt.Sprintf("switches %d  reversals %d  %s\n", c.PivotSwitches, c.Reversals, c.LastEvent)
	}
	return text + "[1-4] pivot  [M] mode  [Space] pause  [arrows] speed  [R] reset"
}
