package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// glowOffsets are the directions the glow copies are drawn in, in units of
// the glow radius.
var glowOffsets = [...][2]float64{{-0.25, 0}, {0.25, 0}, {0, -0.25}, {0, 0.25}}

// Canvas is a rain.Surface drawing onto an offscreen image.
type Canvas struct {
	img   *ebiten.Image
	faces *faces
	fill  color.NRGBA

	glow       bool
	glowColor  color.NRGBA
	glowRadius float64
}

func newCanvas(w, h int, f *faces) *Canvas {
	return &Canvas{img: ebiten.NewImage(max(w, 1), max(h, 1)), faces: f}
}

func (c *Canvas) resize(w, h int) {
	c.img.Deallocate()
	c.img = ebiten.NewImage(max(w, 1), max(h, 1))
}

func (c *Canvas) Clear() {
	c.img.Fill(color.Black)
}

func (c *Canvas) SetFill(col color.NRGBA) {
	c.fill = col
}

func (c *Canvas) SetGlow(on bool, col color.NRGBA, radius float64) {
	c.glow = on
	c.glowColor = col
	c.glowRadius = radius
}

// DrawText draws r with its baseline at y.
func (c *Canvas) DrawText(r rune, x, y, size float64) {
	if c.fill.A == 0 {
		return
	}
	face := c.faces.get(size)
	top := y - face.Metrics().HAscent
	s := string(r)

	if c.glow {
		halo := c.glowColor
		halo.A = uint8(uint16(halo.A) * uint16(c.fill.A) / 255 / 4)
		for _, o := range glowOffsets {
			c.draw(s, face, x+o[0]*c.glowRadius, top+o[1]*c.glowRadius, halo)
		}
	}
	c.draw(s, face, x, top, c.fill)
}

func (c *Canvas) draw(s string, face text.Face, x, y float64, col color.NRGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.img, s, face, op)
}

// drawCentered draws s centred on the canvas in col.
func (c *Canvas) drawCentered(s string, size float64, col color.NRGBA) {
	b := c.img.Bounds()
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(b.Dx())/2, float64(b.Dy())/2)
	op.ColorScale.ScaleWithColor(col)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	text.Draw(c.img, s, c.faces.get(size), op)
}
