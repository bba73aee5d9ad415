package raster

import (
	"image/color"
	"strings"
	"testing"
)

func TestDrawTextMapsVirtualPixelsToCells(t *testing.T) {
	g := New(10, 5)
	g.SetFill(color.NRGBA{R: 3, G: 160, B: 98, A: 255})
	g.DrawText('x', 20, 40, 15)

	c := g.Cell(2, 2)
	if c.Rune != 'x' {
		t.Fatalf("expected 'x' at (2,2), got %q", c.Rune)
	}
	if c.Color != (color.RGBA{R: 3, G: 160, B: 98, A: 255}) {
		t.Fatalf("unexpected opaque color %+v", c.Color)
	}
}

func TestTransparentLetterLeavesCellEmpty(t *testing.T) {
	g := New(4, 4)
	g.SetFill(color.NRGBA{G: 255, A: 0})
	g.DrawText('x', 0, 16, 15)
	if !g.Cell(0, 0).Empty() {
		t.Fatalf("expected empty cell, got %+v", g.Cell(0, 0))
	}
}

func TestLaterDrawsOverwrite(t *testing.T) {
	g := New(4, 4)
	g.SetFill(color.NRGBA{G: 255, A: 255})
	g.DrawText('a', 8, 24, 15)
	g.SetFill(color.NRGBA{R: 255, A: 255})
	g.DrawText('b', 8, 24, 15)

	c := g.Cell(1, 1)
	if c.Rune != 'b' || c.Color.R != 255 || c.Color.G != 0 {
		t.Fatalf("expected red 'b', got %+v", c)
	}
}

func TestAlphaBlendsOntoBackground(t *testing.T) {
	g := New(2, 2)
	g.SetFill(color.NRGBA{G: 255, A: 128})
	g.DrawText('z', 0, 8, 1)
	if got := g.Cell(0, 0).Color.G; got != 128 {
		t.Fatalf("expected half green, got %d", got)
	}

	g.SetBackground(color.White)
	g.DrawText('z', 0, 8, 1)
	if got := g.Cell(0, 0).Color; got.R != 127 || got.G != 255 || got.B != 127 {
		t.Fatalf("expected green over white, got %+v", got)
	}
}

func TestOutOfBoundsDrawsAreDropped(t *testing.T) {
	g := New(3, 3)
	g.SetFill(color.NRGBA{G: 255, A: 255})
	for _, p := range [][2]float64{{-8, 24}, {24, 24}, {8, -30}, {8, 500}} {
		g.DrawText('x', p[0], p[1], 15)
	}
	for row := range 3 {
		for col := range 3 {
			if !g.Cell(col, row).Empty() {
				t.Fatalf("expected empty grid, found %+v at (%d,%d)", g.Cell(col, row), col, row)
			}
		}
	}
}

func TestGlowMarksCellsBold(t *testing.T) {
	g := New(2, 2)
	g.SetGlow(true, color.NRGBA{G: 255, B: 100, A: 178}, 15)
	g.SetFill(color.NRGBA{R: 3, G: 160, B: 98, A: 255})
	g.DrawText('x', 0, 8, 1)
	c := g.Cell(0, 0)
	if !c.Bold {
		t.Fatal("expected glowing cell to be bold")
	}
	if c.Color.G <= 160 {
		t.Fatalf("expected glow to brighten green, got %d", c.Color.G)
	}

	g.SetGlow(false, color.NRGBA{}, 0)
	g.DrawText('y', 0, 8, 1)
	if g.Cell(0, 0).Bold {
		t.Fatal("expected plain cell after glow off")
	}
}

func TestWideRunesTakeTwoColumns(t *testing.T) {
	g := New(4, 1)
	g.SetFill(color.NRGBA{G: 255, A: 255})
	g.DrawText('日', 0, 8, 1)
	if out := g.String(ProfileNone); out != "日  " {
		t.Fatalf("expected wide rune plus two spaces, got %q", out)
	}

	g.DrawText('x', 8, 8, 1)
	if out := g.String(ProfileNone); out != " x  " {
		t.Fatalf("expected orphaned half blanked, got %q", out)
	}

	g.Clear()
	g.DrawText('日', 24, 8, 1)
	if !g.Cell(3, 0).Empty() {
		t.Fatal("wide rune must not overflow the last column")
	}
}

func TestPutCentered(t *testing.T) {
	g := New(11, 3)
	g.PutCentered(1, "neo", color.RGBA{R: 255, G: 255, B: 255, A: 255}, true)
	lines := strings.Split(g.String(ProfileNone), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "    neo    " {
		t.Fatalf("unexpected centred row %q", lines[1])
	}

	g.Clear()
	g.PutCentered(0, "there is no spoon", color.RGBA{A: 255}, false)
	if got := strings.Split(g.String(ProfileNone), "\n")[0]; got != "there is no" {
		t.Fatalf("expected truncation to grid width, got %q", got)
	}
}

func TestStringEmitsColorOncePerRun(t *testing.T) {
	g := New(3, 1)
	g.SetFill(color.NRGBA{G: 128, A: 255})
	g.DrawText('a', 0, 8, 1)
	g.DrawText('b', 8, 8, 1)

	out := g.String(ProfileTrueColor)
	seq := "\x1b[38;2;0;128;0m"
	if strings.Count(out, seq) != 1 {
		t.Fatalf("expected one color sequence, got %q", out)
	}
	if !strings.HasPrefix(out, seq+"ab ") || !strings.HasSuffix(out, "\x1b[0m") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStringWithoutColorHasNoEscapes(t *testing.T) {
	g := New(2, 2)
	g.SetFill(color.NRGBA{G: 255, A: 255})
	g.DrawText('a', 0, 8, 1)
	if out := g.String(ProfileNone); out != "a \n  " {
		t.Fatalf("unexpected plain output %q", out)
	}
}

func TestSequenceProfiles(t *testing.T) {
	tests := []struct {
		profile Profile
		rgb     uint32
		want    string
	}{
		{ProfileTrueColor, 0x03A062, "\x1b[38;2;3;160;98m"},
		{ProfileANSI256, 0x00FF00, "\x1b[38;5;46m"},
		{ProfileANSI256, 0x000000, "\x1b[38;5;16m"},
		{ProfileANSI16, 0x000000, "\x1b[30m"},
		{ProfileANSI16, 0xE5E5E5, "\x1b[37m"},
		{ProfileNone, 0xFFFFFF, ""},
	}
	for _, tc := range tests {
		if got := sequence(tc.profile, tc.rgb); got != tc.want {
			t.Fatalf("sequence(%v, %06x) = %q, want %q", tc.profile, tc.rgb, got, tc.want)
		}
	}
}

func TestProfileFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Profile
	}{
		{"no color wins", map[string]string{"NO_COLOR": "", "COLORTERM": "truecolor"}, ProfileNone},
		{"truecolor", map[string]string{"COLORTERM": "truecolor", "TERM": "xterm"}, ProfileTrueColor},
		{"24bit", map[string]string{"COLORTERM": "24bit"}, ProfileTrueColor},
		{"256", map[string]string{"TERM": "xterm-256color"}, ProfileANSI256},
		{"dumb", map[string]string{"TERM": "dumb"}, ProfileNone},
		{"unset", map[string]string{}, ProfileNone},
		{"basic", map[string]string{"TERM": "xterm"}, ProfileANSI16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				v, ok := tc.env[k]
				return v, ok
			}
			if got := profileFromEnv(lookup); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
