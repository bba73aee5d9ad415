package rain

import (
	"math/rand"

	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/layout"
)

// Depth maps a speed in [min, max] to a simulated z ratio in [0, 1].
// Faster streams are closer, so they render brighter.
func Depth(speed, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return (speed - min) / (max - min)
}

// Stream is a column of letters falling as one unit. Index 0 is the head.
type Stream struct {
	X     float64 // horizontal slot
	Y     float64 // head position
	speed float64 // base pixels per frame, before the intensity multiplier
	depth float64

	length  int
	letters []Letter

	size    float64
	spacing float64
	wrapY   float64
	glyphs  *glyph.Source
}

// NewStream builds a stream at (x, y) and generates its letters.
func NewStream(x, y, speed float64, length int, f layout.Field, glyphs *glyph.Source) *Stream {
	if length < 1 {
		length = 1
	}
	s := &Stream{
		X:       x,
		Y:       y,
		speed:   speed,
		depth:   Depth(speed, f.SpeedMin, f.SpeedMax),
		length:  length,
		size:    f.LetterSize,
		spacing: f.LetterSpacing,
		wrapY:   f.WrapY(),
		glyphs:  glyphs,
	}
	s.Regenerate()
	return s
}

// Speed is the base fall speed in pixels per frame.
func (s *Stream) Speed() float64 { return s.speed }

// Depth is derived from Speed; closer streams are brighter.
func (s *Stream) Depth() float64 { return s.depth }

// Length is the number of letters.
func (s *Stream) Length() int { return s.length }

// Letters returns the letters head first.
func (s *Stream) Letters() []Letter { return s.letters }

// Spacing is the vertical distance between letters.
func (s *Stream) Spacing() float64 { return s.spacing }

// Head returns the leading letter.
func (s *Stream) Head() *Letter { return &s.letters[0] }

// Tail returns the last letter.
func (s *Stream) Tail() *Letter { return &s.letters[len(s.letters)-1] }

func (s *Stream) letterY(i int) float64 {
	return s.Y - float64(i)*s.spacing
}

// Regenerate rebuilds the letter sequence below the current head. Adjacent
// letters never share a glyph.
func (s *Stream) Regenerate() {
	if cap(s.letters) >= s.length {
		s.letters = s.letters[:0]
	} else {
		s.letters = make([]Letter, 0, s.length)
	}
	var prev rune
	for i := range s.length {
		ch := s.glyphs.PickDistinctFrom(prev)
		s.letters = append(s.letters, NewLetter(s.X, s.letterY(i), s.size, ch, s.depth, s.length))
		prev = ch
	}
}

// Advance moves the head down by speed*multiplier and drags every letter
// along. Once the tail has left the viewport the stream restarts at the top
// with fresh letters. It reports whether the stream wrapped.
func (s *Stream) Advance(multiplier float64) bool {
	s.Y += s.speed * multiplier
	for i := range s.letters {
		s.letters[i].MoveTo(s.letterY(i))
	}
	if s.Tail().Y <= s.wrapY {
		return false
	}
	s.Y = 0
	s.Regenerate()
	return true
}

// Render draws every letter, head first.
func (s *Stream) Render(surface Surface, p Palette) {
	for i := range s.letters {
		s.letters[i].Render(surface, i, p)
	}
}

// Mutate applies one frame of glyph noise.
func (s *Stream) Mutate(m Mutation, rng *rand.Rand) {
	m.apply(s, rng)
}

// mutateBody swaps one random non-head letter.
func (s *Stream) mutateBody(rng *rand.Rand) {
	if len(s.letters) < 2 {
		return
	}
	s.letters[1+rng.Intn(len(s.letters)-1)].Mutate(s.glyphs)
}
