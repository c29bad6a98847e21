//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/AlxndrStoev/game-of-life/internal/config"
	"github.com/AlxndrStoev/game-of-life/internal/core"
	"github.com/AlxndrStoev/game-of-life/internal/playback"
	"github.com/AlxndrStoev/game-of-life/internal/render"
	"github.com/AlxndrStoev/game-of-life/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth     = 200
	bannerFrames = 180
)

// Game adapts a playback controller to the ebiten.Game interface. Auto-play
// ticks are pumped from Update, so every mutation happens on the game loop.
type Game struct {
	ctrl    *playback.Controller
	ticker  *core.FixedStep
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	onColor  color.Color
	offColor color.Color

	n     int
	scale int
}

// New constructs a Game from cfg and seeds the board.
func New(cfg *config.Config) (*Game, error) {
	ticker := core.NewFixedStep(cfg.Interval)
	ctrl, err := playback.New(cfg.Size,
		playback.WithTicker(ticker),
		playback.WithInterval(cfg.Interval),
		playback.WithSeed(cfg.Seed),
	)
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctrl:     ctrl,
		ticker:   ticker,
		painter:  render.NewGridPainter(cfg.Size),
		overlay:  ui.NewOverlay(cfg.Size, cfg.Display.Scale),
		onColor:  color.White,
		offColor: color.Black,
		n:        cfg.Size,
		scale:    cfg.Display.Scale,
	}
	g.hud = ui.NewHUD(ctrl, "Game of Life", hudWidth)
	ctrl.AddObserver(playback.ObserverFuncs{OnNotify: func(msg string) {
		log.Print(msg)
		g.overlay.Show(msg, bannerFrames)
	}})
	if err := ctrl.Seed(cfg.Pattern); err != nil {
		return nil, err
	}
	return g, nil
}

// Update handles input and advances auto-play.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.ctrl.State() == playback.AutoPlaying {
			g.ctrl.Pause()
		} else {
			g.ctrl.Auto()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.ctrl.Auto()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.ctrl.Pause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.ctrl.Randomize()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if row, col, ok := render.CellAt(x, y, g.scale, g.n); ok {
			if err := g.ctrl.Toggle(row, col); err != nil {
				log.Printf("toggle: %v", err)
			}
		}
	}

	g.ticker.Poll()
	g.overlay.Update()
	g.hud.Update()
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.ctrl.Snapshot()
	g.painter.Blit(screen, snap.Cells, g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.n*g.scale, g.n*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.n * g.scale
	return side + g.hud.Width(), side
}

// Run opens a window and blocks until it is closed.
func Run(cfg *config.Config) error {
	game, err := New(cfg)
	if err != nil {
		return err
	}
	side := cfg.Size * cfg.Display.Scale
	ebiten.SetWindowTitle(fmt.Sprintf("game-of-life — %dx%d", cfg.Size, cfg.Size))
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetWindowSize(side+game.hud.Width(), side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
