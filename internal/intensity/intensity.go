// Package intensity holds the named speed presets a click cycles through.
package intensity

// Preset is a named speed multiplier.
type Preset struct {
	Prompt string
	Speed  float64
}

// Presets returns the stock presets, slowest first. Index 0 is the default.
func Presets() []Preset {
	return []Preset{
		{Prompt: "default", Speed: 1},
		{Prompt: "warming up", Speed: 1.6},
		{Prompt: "let it rain", Speed: 3},
		{Prompt: "john wick", Speed: 6},
		{Prompt: "warp", Speed: 12},
	}
}

// Setting tracks the selected preset. With easing enabled the multiplier
// follows the preset speed through a spring instead of jumping.
// It is only mutated from the render loop.
type Setting struct {
	presets []Preset
	index   int

	eased  bool
	spring spring
}

// NewSetting starts at the default preset. fps is the tick rate Multiplier
// is called at.
func NewSetting(presets []Preset, fps int, eased bool) *Setting {
	if len(presets) == 0 {
		presets = Presets()
	}
	s := &Setting{
		presets: presets,
		eased:   eased,
		spring:  newSpring(fps, 4.0, 1.0),
	}
	s.spring.pos = presets[0].Speed
	return s
}

// Index returns the selected preset index.
func (s *Setting) Index() int { return s.index }

// Current returns the selected preset.
func (s *Setting) Current() Preset { return s.presets[s.index] }

// Next selects the following preset, wrapping to the first.
func (s *Setting) Next() Preset {
	s.index = (s.index + 1) % len(s.presets)
	return s.Current()
}

// Prev selects the previous preset, wrapping to the last.
func (s *Setting) Prev() Preset {
	s.index = (s.index - 1 + len(s.presets)) % len(s.presets)
	return s.Current()
}

// Reset returns to the default preset immediately, without easing.
func (s *Setting) Reset() {
	s.index = 0
	s.spring.settle(s.presets[0].Speed)
}

// Multiplier returns the speed multiplier for this frame.
func (s *Setting) Multiplier() float64 {
	target := s.Current().Speed
	if !s.eased {
		return target
	}
	return s.spring.step(target)
}
