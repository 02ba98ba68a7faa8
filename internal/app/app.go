// Package app wires the bounce systems, the renderer and the optional
// debug overlay into an ebiten.Game.
package app

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/config"
	"github.com/plus3/pivotquad/internal/render"
)

const tps = 60

// overlay is the platform specific debug layer drawn on top of the scene.
type overlay interface {
	register(registry *ecs.ComponentRegistry)
	attach(storage *ecs.Storage, update, draw *ecs.Scheduler, keyboard *render.KeyboardSystem)
	beginFrame()
	endFrame()
	draw(screen *ebiten.Image)
	layout(width, height int)
}

// Game implements ebiten.Game. Update advances the simulation one tick and
// Draw renders the current state.
type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler

	input   *ecs.Singleton[bounce.Input]
	screen  *ecs.Singleton[render.Screen]
	overlay overlay
	logger  *slog.Logger
}

// New builds the world described by cfg. cfg must already be validated.
func New(cfg config.Config, logger *slog.Logger) *Game {
	ov := newOverlay(cfg)

	registry := ecs.NewComponentRegistry()
	bounce.RegisterComponents(registry)
	ov.register(registry)

	storage := ecs.NewStorage(registry)
	square := bounce.Setup(storage, cfg)
	logger.Debug("square spawned", "entity", square, "size", cfg.Size, "corner", cfg.Corner)

	input := ecs.NewSingleton[bounce.Input](storage)
	input.Get().ShowDebug = cfg.Debug
	screen := ecs.NewSingleton[render.Screen](storage)
	ecs.NewSingleton[render.HUD](storage)

	update := ecs.NewScheduler(storage)
	keyboard := &render.KeyboardSystem{Keys: render.Keyboard{}}
	update.Register(keyboard)
	bounce.Register(update, logger)

	draw := ecs.NewScheduler(storage)
	draw.Register(&render.RenderSystem{})

	ov.attach(storage, update, draw, keyboard)

	return &Game{
		storage: storage,
		update:  update,
		draw:    draw,
		input:   input,
		screen:  screen,
		overlay: ov,
		logger:  logger,
	}
}

// Run opens the window and blocks until the game ends.
func Run(cfg config.Config, logger *slog.Logger) error {
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(tps)

	g := New(cfg, logger)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	logger.Info("stopped", "ticks", g.update.Tick())
	return nil
}

func (g *Game) Update() error {
	g.overlay.beginFrame()
	g.update.Once(1.0 / tps)
	g.overlay.endFrame()

	if canQuit && g.input.Get().Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.draw.Once(0)
	g.screen.Get().Image = nil

	g.overlay.draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.overlay.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
