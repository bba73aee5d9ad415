// Package window runs the rain in a desktop window with Ebiten.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/olivier-w/coderain/internal/engine"
	"github.com/olivier-w/coderain/internal/overlay"
)

// debugCorner is the clickable area holding the FPS readout, in pixels.
const (
	debugCornerW = 48
	debugCornerH = 24
)

// overlayScale sizes overlay text relative to the rain letters.
const overlayScale = 2.5

// Config sets up the window.
type Config struct {
	Width, Height int
	FontPath      string
}

// Game implements ebiten.Game. The simulation advances in Update onto an
// offscreen canvas; Draw only presents it.
type Game struct {
	loop   *engine.Loop
	faces  *faces
	canvas *Canvas

	width, height int
	cursorX       int
	cursorY       int
	chars         []rune

	storeDirty atomic.Bool
	now        func() time.Time
}

// New loads the font and prepares a Game. The layout is made on the first
// Layout call, once the window size is known.
func New(loop *engine.Loop, cfg Config) (*Game, error) {
	src, err := LoadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	f := newFaces(src)
	return &Game{
		loop:   loop,
		faces:  f,
		canvas: newCanvas(cfg.Width, cfg.Height, f),
		now:    time.Now,
	}, nil
}

// StoreChanged marks the overlay message for reload on the next Update. It is
// safe to call from any goroutine.
func (g *Game) StoreChanged() { g.storeDirty.Store(true) }

// Run opens the window and blocks until it is closed or Ctrl+C is pressed.
func Run(g *Game, cfg Config) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("coderain")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.loop.FPS())
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	now := g.now()
	if g.storeDirty.Swap(false) {
		g.loop.ReloadMessage()
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		return ebiten.Termination
	}
	g.handleKeys(now)
	g.handleMouse(now)

	g.loop.Settle(now)
	if g.loop.Tick(g.canvas, now) {
		g.drawOverlay(now)
	}
	return nil
}

func (g *Game) handleKeys(now time.Time) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.loop.ToggleDebug()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.loop.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.loop.Prev(now)
		} else {
			g.loop.Click(now)
		}
	case repeating(ebiten.KeyBackspace):
		g.loop.Key(overlay.KeyBackspace, 0)
	case repeating(ebiten.KeyDelete):
		g.loop.Key(overlay.KeyDelete, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.loop.Key(overlay.KeyEscape, 0)
	}

	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		g.loop.Key(overlay.KeyRune, r)
	}
}

// repeating reports a key press with keyboard auto-repeat.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%3 == 0)
}

func (g *Game) handleMouse(now time.Time) {
	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.loop.Pointer(float64(x), float64(y), now)
	}

	switch _, dy := ebiten.Wheel(); {
	case dy < 0:
		g.loop.Click(now)
	case dy > 0:
		g.loop.Prev(now)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.loop.Press()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.loop.Release()
		if inDebugCorner(x, y) {
			g.loop.ToggleDebug()
		} else {
			g.loop.Click(now)
		}
	}
}

func inDebugCorner(x, y int) bool {
	return x >= 0 && y >= 0 && x < debugCornerW && y < debugCornerH
}

func (g *Game) drawOverlay(now time.Time) {
	text := g.loop.Overlay(now)
	if text == "" {
		return
	}
	size := g.loop.Field().Layout.LetterSize * overlayScale
	g.canvas.drawCentered(text, size, g.loop.Palette().Head)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	screen.DrawImage(g.canvas.img, nil)
	if r := g.loop.Readout(); r != "" {
		ebitenutil.DebugPrintAt(screen, r, 4, 4)
	}
}

// Layout follows the window size. The first size lays the field out
// immediately; later changes go through the resize debounce.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.canvas.resize(outsideWidth, outsideHeight)
		g.canvas.Clear()
		w, h := float64(outsideWidth), float64(outsideHeight)
		if g.loop.Ready() {
			g.loop.Resize(w, h, g.now())
		} else {
			g.loop.Init(w, h)
		}
	}
	return outsideWidth, outsideHeight
}
