package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/intensity"
	"github.com/olivier-w/coderain/internal/layout"
	"github.com/olivier-w/coderain/internal/rain"
)

var (
	ErrFPS       = errors.New("frame rate must be between 1 and 120")
	ErrDepthFade = errors.New("depth alpha offset ratio must be in (0, 1]")
	ErrPresets   = errors.New("at least one intensity preset is required")
)

// Options configure a Loop. Zero durations fall back to the defaults.
type Options struct {
	FPS int

	Layout   layout.Params
	Palette  rain.Palette
	Mutation rain.Mutation
	Alphabet []rune

	Presets []intensity.Preset
	Ease    bool // spring-ease speed changes between presets

	Glow       bool    // allow press-and-hold glow
	GlowRadius float64 // 0 uses the letter size

	Debug bool // start with the FPS readout on
	Seed  int64

	ResizeDebounce time.Duration
	ReadoutEvery   time.Duration
	PromptFor      time.Duration

	ShakeThreshold float64 // pointer acceleration change, 0 disables shake
	ShakeHits      int
	ShakeWindow    time.Duration
}

// DefaultOptions returns the stock look at 60 fps.
func DefaultOptions() Options {
	return Options{
		FPS:            60,
		Layout:         layout.DefaultParams(),
		Palette:        rain.DefaultPalette(),
		Mutation:       rain.MutateClassic,
		Alphabet:       []rune(glyph.Classic),
		Presets:        intensity.Presets(),
		Glow:           true,
		Seed:           time.Now().UnixNano(),
		ResizeDebounce: 500 * time.Millisecond,
		ReadoutEvery:   500 * time.Millisecond,
		PromptFor:      2 * time.Second,
		ShakeThreshold: 30,
		ShakeHits:      3,
		ShakeWindow:    600 * time.Millisecond,
	}
}

// Validate checks the options once, before the loop starts.
func (o Options) Validate() error {
	if o.FPS < 1 || o.FPS > 120 {
		return fmt.Errorf("%w (got %d)", ErrFPS, o.FPS)
	}
	if err := o.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if r := o.Palette.DepthAlphaOffsetRatio; r <= 0 || r > 1 {
		return fmt.Errorf("%w (got %.2f)", ErrDepthFade, r)
	}
	if len(o.Presets) == 0 {
		return ErrPresets
	}
	if _, err := glyph.New(o.Alphabet, nil); err != nil {
		return fmt.Errorf("alphabet: %w", err)
	}
	return nil
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = def.ResizeDebounce
	}
	if o.ReadoutEvery <= 0 {
		o.ReadoutEvery = def.ReadoutEvery
	}
	if o.PromptFor <= 0 {
		o.PromptFor = def.PromptFor
	}
	if o.ShakeHits <= 0 {
		o.ShakeHits = def.ShakeHits
	}
	if o.ShakeWindow <= 0 {
		o.ShakeWindow = def.ShakeWindow
	}
	return o
}
