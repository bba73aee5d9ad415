package rain

import "image/color"

// Surface is the drawing target of a frame.
type Surface interface {
	Clear()
	SetFill(c color.NRGBA)
	// DrawText draws r with its baseline at y, in the current fill.
	DrawText(r rune, x, y, size float64)
}

// Glower is implemented by surfaces that can render a glow behind glyphs.
type Glower interface {
	SetGlow(on bool, c color.NRGBA, radius float64)
}

// Palette holds the colors and fade settings shared by every letter.
type Palette struct {
	Head color.NRGBA
	Body color.NRGBA
	Glow color.NRGBA

	// DepthAlphaOffsetRatio scales how strongly depth dims a stream,
	// 0 (no effect) to 1 (full effect).
	DepthAlphaOffsetRatio float64
}

// DefaultPalette is the green-on-black look.
func DefaultPalette() Palette {
	return Palette{
		Head:                  color.NRGBA{R: 200, G: 255, B: 200, A: 255},
		Body:                  color.NRGBA{R: 3, G: 160, B: 98, A: 255},
		Glow:                  color.NRGBA{R: 0, G: 255, B: 100, A: 178},
		DepthAlphaOffsetRatio: 0.5,
	}
}
