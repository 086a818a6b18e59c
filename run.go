package avg

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ClearColor fills the screen every frame when set.
	ClearColor *Color
	// Resizable lets the user resize the window; the logical size stays fixed.
	Resizable bool
	Debug     bool
	// OnUpdate runs after the scene's own Update each frame. Returning an
	// error stops the game loop.
	OnUpdate func() error
}

type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	g.scene.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		return g.cfg.Width, g.cfg.Height
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until the window closes or OnUpdate
// returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ClearColor != nil {
		scene.ClearColor = cfg.ClearColor
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	return ebiten.RunGame(&game{scene: scene, cfg: cfg})
}
