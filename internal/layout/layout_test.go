package layout

import (
	"errors"
	"math"
	"testing"
)

func TestComputeDesktopViewport(t *testing.T) {
	f := Compute(800, 600, DefaultParams())

	if f.LetterSize != 15 {
		t.Fatalf("expected letter size 15, got %v", f.LetterSize)
	}
	if math.Abs(f.LetterSpacing-19.5) > 1e-9 {
		t.Fatalf("expected letter spacing 19.5, got %v", f.LetterSpacing)
	}
	if f.TotalStreams != 40 {
		t.Fatalf("expected 40 streams, got %d", f.TotalStreams)
	}
	if f.StreamLengthMax != 23 {
		t.Fatalf("expected max stream length 23, got %d", f.StreamLengthMax)
	}
	if f.SlotWidth != 20 || f.SlotOffset != 2.5 {
		t.Fatalf("expected slot 20 offset 2.5, got %v offset %v", f.SlotWidth, f.SlotOffset)
	}
	if got := f.SlotX(3); got != 62.5 {
		t.Fatalf("expected slot 3 at x=62.5, got %v", got)
	}
	if f.WrapY() != 615 {
		t.Fatalf("expected wrap threshold 615, got %v", f.WrapY())
	}
}

func TestComputeLetterSizeTiers(t *testing.T) {
	tests := []struct {
		width float64
		want  float64
	}{
		{width: 320, want: 13},
		{width: 599, want: 13},
		{width: 600, want: 15},
		{width: 1920, want: 15},
	}
	for _, tt := range tests {
		if got := Compute(tt.width, 400, DefaultParams()).LetterSize; got != tt.want {
			t.Fatalf("width %v: expected letter size %v, got %v", tt.width, tt.want, got)
		}
	}
}

func TestComputeSmallViewportsStayValid(t *testing.T) {
	p := DefaultParams()
	for w := 0.0; w <= 400; w += 25 {
		for h := 0.0; h <= 400; h += 25 {
			f := Compute(w, h, p)
			if f.TotalStreams < 0 {
				t.Fatalf("%vx%v: negative stream count %d", w, h, f.TotalStreams)
			}
			if f.StreamLengthMax < f.StreamLengthMin {
				t.Fatalf("%vx%v: max length %d below min %d", w, h, f.StreamLengthMax, f.StreamLengthMin)
			}
		}
	}
}

func TestComputeZeroStreamsHasNoSlots(t *testing.T) {
	f := Compute(-50, -50, DefaultParams())
	if f.TotalStreams != 0 || f.SlotWidth != 0 {
		t.Fatalf("expected empty field, got %+v", f)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"zero letter", func(p *Params) { p.SmallLetterSize = 0 }, ErrLetterSize},
		{"tight spacing", func(p *Params) { p.SpacingFactor = 0.9 }, ErrSpacingFactor},
		{"zero density", func(p *Params) { p.Density = 0 }, ErrDensity},
		{"over density", func(p *Params) { p.Density = 1.5 }, ErrDensity},
		{"short streams", func(p *Params) { p.StreamLengthMin = 1 }, ErrLengthMin},
		{"flat speed", func(p *Params) { p.SpeedMax = p.SpeedMin }, ErrSpeedRange},
	}
	for _, tt := range tests {
		p := DefaultParams()
		tt.mutate(&p)
		if err := p.Validate(); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}
