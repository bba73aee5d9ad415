package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/coderain/internal/engine"
	"github.com/olivier-w/coderain/internal/overlay"
	"github.com/olivier-w/coderain/internal/raster"
)

// debugCornerCols is the width of the clickable FPS readout in the top-left
// corner.
const debugCornerCols = 4

// Model is the Bubbletea model for the terminal rain.
type Model struct {
	loop    *engine.Loop
	grid    *raster.Grid
	profile raster.Profile

	keys     keyMap
	help     help.Model
	showHelp bool

	width    int
	height   int
	frame    string // last rendered rain
	pressed  bool
	quitting bool

	now func() time.Time
}

// New creates a Model drawing loop.
func New(loop *engine.Loop) Model {
	loop.SetPointerStep(raster.CellHeight)
	return Model{
		loop:    loop,
		grid:    raster.New(0, 0),
		profile: raster.DetectProfile(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		now:     time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.loop.FPS()), tea.SetWindowTitle("coderain"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.drawFrame(time.Time(msg))
		return m, frameCmd(m.loop.FPS())

	case settleMsg:
		m.loop.SettleGen(msg.gen)
		return m, nil

	case storeChangedMsg:
		m.loop.ReloadMessage()
		return m, nil

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// resize keeps one row for the status bar and maps the rest to virtual
// pixels.
func (m Model) resize(width, height int) (Model, tea.Cmd) {
	m.width, m.height = width, height
	m.help.Width = width
	m.grid.Resize(width, max(height-1, 0))
	m.frame = ""

	w, h := m.grid.Size()
	if !m.loop.Ready() {
		m.loop.Init(w, h)
		return m, nil
	}
	if gen := m.loop.Resize(w, h, m.now()); gen != 0 {
		return m, settleCmd(gen, m.loop.ResizeWait())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.Next):
		m.loop.Click(m.now())
	case key.Matches(msg, m.keys.Prev):
		m.loop.Prev(m.now())
	case key.Matches(msg, m.keys.Reset):
		m.loop.Reset()
	case key.Matches(msg, m.keys.Debug):
		m.loop.ToggleDebug()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	default:
		k, runes := messageKey(msg)
		if k != overlay.KeyRune {
			m.loop.Key(k, 0)
			break
		}
		for _, r := range runes {
			m.loop.Key(k, r)
		}
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	now := m.now()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pressed = true
			m.loop.Press()
		case tea.MouseButtonWheelDown:
			m.loop.Click(now)
		case tea.MouseButtonWheelUp:
			m.loop.Prev(now)
		}
	case tea.MouseActionRelease:
		m.loop.Release()
		if !m.pressed {
			return
		}
		m.pressed = false
		if msg.Y == 0 && msg.X < debugCornerCols {
			m.loop.ToggleDebug()
			return
		}
		m.loop.Click(now)
	case tea.MouseActionMotion:
		m.loop.Pointer(float64(msg.X*raster.CellWidth), float64(msg.Y*raster.CellHeight), now)
	}
}

// drawFrame advances the rain and keeps the rendered text for View. While a
// resize is pending the previous frame stays blank.
func (m *Model) drawFrame(now time.Time) {
	if !m.loop.Tick(m.grid, now) {
		return
	}
	pal := m.loop.Palette()
	if text := m.loop.Overlay(now); text != "" {
		m.grid.PutCentered(m.grid.Rows()/2, text, opaque(pal.Head), true)
	}
	if r := m.loop.Readout(); r != "" {
		m.grid.PutText(0, 0, r, opaque(pal.Glow), false)
	}
	m.frame = m.grid.String(m.profile)
}

func opaque(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	rows := max(m.height-1, 0)
	rain := m.frame
	if rain == "" && rows > 0 {
		rain = strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", m.width)+"\n", rows), "\n")
	}
	status := m.statusLine()
	if rows == 0 {
		return status
	}
	return rain + "\n" + status
}

func (m Model) statusLine() string {
	p := m.loop.Preset()
	left := presetStyle.Render(p.Prompt) + statusStyle.Render(fmt.Sprintf(" x%g", p.Speed))
	if m.loop.Paused() {
		left += statusStyle.Render("  resizing")
	}
	if m.loop.Debug() {
		left += readoutStyle.Render("  debug")
	}
	right := helpStyle.Render(m.help.View(m.keys))
	if m.showHelp {
		var all []key.Binding
		for _, col := range m.keys.FullHelp() {
			all = append(all, col...)
		}
		right = helpStyle.Render(m.help.ShortHelpView(all))
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}
