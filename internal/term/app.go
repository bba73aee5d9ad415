// Package term draws the rain straight onto a tcell screen, for terminals
// where a full-screen Bubbletea redraw is too slow.
package term

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/olivier-w/coderain/internal/engine"
	"github.com/olivier-w/coderain/internal/overlay"
	"github.com/olivier-w/coderain/internal/raster"
)

const debugCornerCols = 4

type storeChanged struct{}

// App owns a tcell screen and the loop drawn on it.
type App struct {
	screen tcell.Screen
	loop   *engine.Loop
	grid   *raster.Grid
	base   tcell.Style

	pressed bool
	now     func() time.Time
}

// New opens the terminal screen. Call Run to start drawing.
func New(loop *engine.Loop) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	return newApp(screen, loop), nil
}

func newApp(screen tcell.Screen, loop *engine.Loop) *App {
	a := &App{
		screen: screen,
		loop:   loop,
		grid:   raster.New(0, 0),
		base:   tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGreen),
		now:    time.Now,
	}
	loop.SetPointerStep(raster.CellHeight)
	screen.SetStyle(a.base)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	w, h := screen.Size()
	a.grid.Resize(w, h)
	loop.Init(a.grid.Size())
	return a
}

// StoreChanged wakes the event loop to reload the overlay message. It is
// safe to call from any goroutine.
func (a *App) StoreChanged() {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(storeChanged{})); err != nil {
		log.Printf("term: post store change: %v", err)
	}
}

// Run draws frames until Ctrl+C, then restores the terminal.
func (a *App) Run() error {
	defer a.screen.Fini()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / time.Duration(a.loop.FPS()))
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.handleEvent(ev) {
				close(quit)
				return nil
			}
		case now := <-ticker.C:
			a.frame(now)
		}
	}
}

// handleEvent applies one terminal event and reports whether to keep running.
func (a *App) handleEvent(ev tcell.Event) bool {
	now := a.now()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		a.grid.Resize(w, h)
		vw, vh := a.grid.Size()
		if a.loop.Resize(vw, vh, now) != 0 {
			a.screen.Clear()
			a.screen.Sync()
		}

	case *tcell.EventKey:
		return a.handleKey(ev, now)

	case *tcell.EventMouse:
		a.handleMouse(ev, now)

	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(storeChanged); ok {
			a.loop.ReloadMessage()
		}
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyF2:
		a.loop.ToggleDebug()
	case tcell.KeyF5:
		a.loop.Reset()
	case tcell.KeyTab:
		a.loop.Click(now)
	case tcell.KeyBacktab:
		a.loop.Prev(now)
	case tcell.KeyRune:
		a.loop.Key(overlay.KeyRune, ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.loop.Key(overlay.KeyBackspace, 0)
	case tcell.KeyDelete:
		a.loop.Key(overlay.KeyDelete, 0)
	case tcell.KeyEscape:
		a.loop.Key(overlay.KeyEscape, 0)
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelDown != 0:
		a.loop.Click(now)
		return
	case buttons&tcell.WheelUp != 0:
		a.loop.Prev(now)
		return
	}

	held := buttons&tcell.Button1 != 0
	switch {
	case held && !a.pressed:
		a.pressed = true
		a.loop.Press()
	case !held && a.pressed:
		a.pressed = false
		a.loop.Release()
		if y == 0 && x < debugCornerCols {
			a.loop.ToggleDebug()
		} else {
			a.loop.Click(now)
		}
	}
	a.loop.Pointer(float64(x*raster.CellWidth), float64(y*raster.CellHeight), now)
}

// frame settles a pending resize, advances the rain and pushes the grid to
// the screen.
func (a *App) frame(now time.Time) {
	a.loop.Settle(now)
	if !a.loop.Tick(a.grid, now) {
		return
	}
	pal := a.loop.Palette()
	if text := a.loop.Overlay(now); text != "" {
		a.grid.PutCentered(a.grid.Rows()/2, text, opaque(pal.Head), true)
	}
	if r := a.loop.Readout(); r != "" {
		a.grid.PutText(0, 0, r, opaque(pal.Glow), false)
	}
	a.blit()
	a.screen.Show()
}

func (a *App) blit() {
	for row := range a.grid.Rows() {
		prevWide := false
		for col := range a.grid.Cols() {
			c := a.grid.Cell(col, row)
			if c.Continuation() && prevWide {
				prevWide = false
				continue
			}
			prevWide = false
			if c.Rune == 0 {
				a.screen.SetContent(col, row, ' ', nil, a.base)
				continue
			}
			style := a.base.Foreground(tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B))).Bold(c.Bold)
			a.screen.SetContent(col, row, c.Rune, nil, style)
			prevWide = runewidth.RuneWidth(c.Rune) == 2
		}
	}
}

func opaque(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
