package rain

import (
	"math"

	"github.com/olivier-w/coderain/internal/glyph"
)

// Letter is one positioned glyph of a stream.
type Letter struct {
	X    float64
	Y    float64
	Size float64
	Char rune

	depth        float64 // fixed for the letter's lifetime
	streamLength int     // fixed for the letter's lifetime
}

// NewLetter returns a letter whose depth and stream length stay fixed while
// it is moved and mutated.
func NewLetter(x, y, size float64, char rune, depth float64, streamLength int) Letter {
	return Letter{
		X:            x,
		Y:            y,
		Size:         size,
		Char:         char,
		depth:        depth,
		streamLength: streamLength,
	}
}

// Depth is the depth of the stream the letter was made for.
func (l *Letter) Depth() float64 { return l.depth }

// StreamLength is the length of the stream the letter was made for.
func (l *Letter) StreamLength() int { return l.streamLength }

// MoveTo sets the vertical position.
func (l *Letter) MoveTo(y float64) {
	l.Y = y
}

// Mutate swaps the glyph for a random one. Repeating a neighbor is allowed.
func (l *Letter) Mutate(src *glyph.Source) {
	l.Char = src.Pick()
}

// FillAlpha returns the opacity of the letter at index within its stream.
func (l *Letter) FillAlpha(index int, ratio float64) uint8 {
	return FillAlpha(index, l.depth, l.streamLength, ratio)
}

// FillAlpha combines depth dimming with a head-to-tail fade. Index 0 is the
// head. The result is non-increasing in index and clamped to [0, 255].
func FillAlpha(index int, depth float64, streamLength int, ratio float64) uint8 {
	if ratio <= 0 || streamLength <= 0 {
		return 0
	}
	base := math.Round(255 * depth / ratio)
	alpha := base
	if index > 0 {
		alpha = base - math.Round(base/float64(streamLength)*float64(index))
	}
	switch {
	case alpha <= 0:
		return 0
	case alpha >= 255:
		return 255
	}
	return uint8(alpha)
}

// Render draws the letter at index in the head or body color.
func (l *Letter) Render(s Surface, index int, p Palette) {
	c := p.Body
	if index == 0 {
		c = p.Head
	}
	c.A = l.FillAlpha(index, p.DepthAlphaOffsetRatio)
	s.SetFill(c)
	s.DrawText(l.Char, l.X, l.Y, l.Size)
}
