// Package raster rasterises the rain onto a grid of character cells so
// terminal frontends can draw it. Positions are in virtual pixels, each cell
// covering CellWidth x CellHeight of them, so the pixel layout formulas work
// unchanged on a terminal.
package raster

import (
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

// Cell is one terminal cell. Color is already composited over the
// background.
type Cell struct {
	Rune  rune
	Color color.RGBA
	Bold  bool

	// wide marks the right half of a double-width rune.
	wide bool
}

// Empty reports whether nothing is drawn in the cell.
func (c Cell) Empty() bool { return c.Rune == 0 && !c.wide }

// Continuation reports whether the cell is covered by the wide rune to its
// left.
func (c Cell) Continuation() bool { return c.wide }

// Grid is a rain.Surface backed by cells.
type Grid struct {
	cols, rows int
	cells      []Cell

	background colorful.Color
	fill       color.NRGBA

	glow      bool
	glowColor colorful.Color
	glowMix   float64
}

// New returns a cols x rows grid on a black background.
func New(cols, rows int) *Grid {
	g := &Grid{}
	g.Resize(cols, rows)
	return g
}

// Resize reallocates the grid and clears it.
func (g *Grid) Resize(cols, rows int) {
	g.cols, g.rows = max(cols, 0), max(rows, 0)
	g.cells = make([]Cell, g.cols*g.rows)
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Size returns the grid size in virtual pixels.
func (g *Grid) Size() (w, h float64) {
	return float64(g.cols * CellWidth), float64(g.rows * CellHeight)
}

// SetBackground sets the color letters are blended onto.
func (g *Grid) SetBackground(c color.Color) {
	g.background, _ = colorful.MakeColor(c)
}

func (g *Grid) Clear() {
	clear(g.cells)
}

func (g *Grid) SetFill(c color.NRGBA) {
	g.fill = c
}

// SetGlow makes subsequent letters bold and tints them toward c. A terminal
// cannot blur, so the radius is ignored.
func (g *Grid) SetGlow(on bool, c color.NRGBA, _ float64) {
	g.glow = on
	g.glowColor = colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	g.glowMix = float64(c.A) / 255 / 2
}

// DrawText places r in the cell containing the glyph's vertical centre.
// Fully transparent letters leave the cell untouched.
func (g *Grid) DrawText(r rune, x, y, size float64) {
	if g.fill.A == 0 {
		return
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	col := int(math.Floor(x / CellWidth))
	row := int(math.Floor((y - size/2) / CellHeight))
	if col < 0 || row < 0 || row >= g.rows || col+w > g.cols {
		return
	}
	g.put(col, row, r, g.blend(g.fill), g.glow)
	if w == 2 {
		g.cells[row*g.cols+col+1] = Cell{wide: true}
	}
}

func (g *Grid) blend(c color.NRGBA) color.RGBA {
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	if g.glow {
		fg = fg.BlendRgb(g.glowColor, g.glowMix)
	}
	out := g.background.BlendRgb(fg, float64(c.A)/255).Clamped()
	r, gg, b := out.RGB255()
	return color.RGBA{R: r, G: gg, B: b, A: 255}
}

func (g *Grid) put(col, row int, r rune, c color.RGBA, bold bool) {
	i := row*g.cols + col
	// Overwriting the right half of a wide rune orphans its left half.
	if g.cells[i].wide && col > 0 {
		g.cells[i-1] = Cell{}
	}
	g.cells[i] = Cell{Rune: r, Color: c, Bold: bold}
}

// Cell returns the cell at col, row; out of range cells are empty.
func (g *Grid) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return Cell{}
	}
	return g.cells[row*g.cols+col]
}

// PutText writes s starting at col, row in an opaque color, clipped to the
// grid. It returns the number of columns written.
func (g *Grid) PutText(col, row int, s string, c color.RGBA, bold bool) int {
	if row < 0 || row >= g.rows {
		return 0
	}
	start := col
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > g.cols {
			break
		}
		if col >= 0 {
			g.put(col, row, r, c, bold)
			if w == 2 {
				g.cells[row*g.cols+col+1] = Cell{wide: true}
			}
		}
		col += w
	}
	return col - start
}

// PutCentered writes s horizontally centred on row, truncating it to the
// grid width.
func (g *Grid) PutCentered(row int, s string, c color.RGBA, bold bool) {
	s = runewidth.Truncate(s, g.cols, "")
	col := (g.cols - runewidth.StringWidth(s)) / 2
	g.PutText(col, row, s, c, bold)
}

// String renders the grid as rows of text with SGR color sequences for
// profile p.
func (g *Grid) String(p Profile) string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1) * 4)
	st := newSGRState(p)
	for row := range g.rows {
		if row > 0 {
			st.reset(&sb)
			sb.WriteByte('\n')
		}
		for col := range g.cols {
			c := g.cells[row*g.cols+col]
			switch {
			case c.wide && col > 0 && runewidth.RuneWidth(g.cells[row*g.cols+col-1].Rune) == 2:
				continue
			case c.Rune == 0:
				sb.WriteByte(' ')
				continue
			}
			st.set(&sb, uint32(c.Color.R)<<16|uint32(c.Color.G)<<8|uint32(c.Color.B), c.Bold)
			sb.WriteRune(c.Rune)
		}
	}
	st.reset(&sb)
	return sb.String()
}
