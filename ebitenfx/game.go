// Package ebitenfx hosts inkwell scenes in an Ebitengine window. It owns
// everything that touches the GPU: the ink filter shader, the blur passes,
// text layout and the debug overlay. Scenes stay headless.
package ebitenfx

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/inkwell"
	"github.com/phanxgames/inkwell/scene"
	"go.uber.org/zap"
)

// RunConfig configures the window and runtime of Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Runtime       inkwell.RuntimeConfig

	// Script, if set, is stepped once per frame. Every mark also captures
	// a screenshot into ScreenshotDir.
	Script        *scene.Runner
	ScreenshotDir string
}

// Game implements ebiten.Game for one scene.
type Game struct {
	sc       scene.Scene
	rt       *inkwell.Runtime
	renderer Renderer
	overlay  *Overlay
	shots    capturer
	script   *scene.Runner
	marks    int

	width, height int
}

// NewGame mounts sc on a fresh runtime and picks its renderer.
func NewGame(sc scene.Scene, cfg RunConfig) (*Game, error) {
	r, err := NewRenderer(sc)
	if err != nil {
		return nil, err
	}
	rt := inkwell.NewRuntime(cfg.Runtime)
	if err := sc.Mount(rt); err != nil {
		return nil, fmt.Errorf("mount %s: %w", sc.Name(), err)
	}
	dir := cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	g := &Game{
		sc:       sc,
		rt:       rt,
		renderer: r,
		overlay:  NewOverlay(),
		shots:    capturer{dir: dir},
		script:   cfg.Script,
	}
	g.overlay.SetVisible(cfg.Runtime.Debug)
	return g, nil
}

// Runtime returns the game's runtime.
func (g *Game) Runtime() *inkwell.Runtime { return g.rt }

// Update steps the script, handles input and advances one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.overlay.SetVisible(!g.overlay.Visible())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.shots.Queue(g.sc.Name())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if g.renderer.Hit(float64(mx), float64(my)) {
			g.sc.Toggle()
		}
	}

	if g.script != nil && !g.script.Done() {
		if err := g.script.Step(g.sc, g.rt.LastFrame()); err != nil {
			return err
		}
		if marks := g.script.Marks(); len(marks) > g.marks {
			for _, m := range marks[g.marks:] {
				g.shots.Queue(m.Label)
			}
			g.marks = len(marks)
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	g.rt.Update(dt)
	g.overlay.Update(dt, g.sc.Channels())
	return nil
}

// Draw renders the scene and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.renderer.Background()))
	g.renderer.Draw(screen)
	g.shots.flush(screen)
	g.overlay.Draw(screen)
}

// Layout forwards window size changes to the scene. The layout pass picks
// them up on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sc.Layout(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close releases the scene and GPU resources.
func (g *Game) Close() {
	g.sc.Close()
	g.renderer.Dispose()
}

// Run opens a resizable window and blocks until it is closed.
func Run(sc scene.Scene, cfg RunConfig) error {
	g, err := NewGame(sc, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	if cfg.Title == "" {
		cfg.Title = "inkwell: " + scene.Title(sc.Name())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 960, 640
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Runtime.FPS > 0 {
		ebiten.SetTPS(cfg.Runtime.FPS)
	}

	inkwell.Logger().Info("run", zap.String("scene", sc.Name()), zap.Int("tps", ebiten.TPS()))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
