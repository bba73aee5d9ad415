package rain

import (
	"math/rand"

	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/layout"
)

// Field is the set of streams of one layout epoch. A resize replaces the
// whole Field.
type Field struct {
	Layout  layout.Field
	Streams []*Stream

	mutation Mutation
	rng      *rand.Rand
}

// NewField creates one stream per slot of l. Each stream gets a random
// length in [StreamLengthMin, StreamLengthMax] and a random speed in
// [SpeedMin, SpeedMax), and starts two letters above the top edge.
func NewField(l layout.Field, glyphs *glyph.Source, rng *rand.Rand, m Mutation) *Field {
	f := &Field{
		Layout:   l,
		Streams:  make([]*Stream, 0, l.TotalStreams),
		mutation: m,
		rng:      rng,
	}
	startY := -2 * l.LetterSpacing
	for i := range l.TotalStreams {
		length := l.StreamLengthMin + rng.Intn(l.StreamLengthMax-l.StreamLengthMin+1)
		speed := l.SpeedMin + rng.Float64()*(l.SpeedMax-l.SpeedMin)
		f.Streams = append(f.Streams, NewStream(l.SlotX(i), startY, speed, length, l, glyphs))
	}
	return f
}

// Frame runs one update-and-draw pass: every stream advances, renders and
// then flickers. The caller clears the surface beforehand.
func (f *Field) Frame(s Surface, p Palette, multiplier float64) {
	for _, st := range f.Streams {
		st.Advance(multiplier)
		st.Render(s, p)
		st.Mutate(f.mutation, f.rng)
	}
}
