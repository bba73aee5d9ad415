// Package engine drives the rain: it owns the field, the intensity setting,
// the overlay and the timers, and is stepped by a frontend once per frame.
package engine

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/intensity"
	"github.com/olivier-w/coderain/internal/layout"
	"github.com/olivier-w/coderain/internal/overlay"
	"github.com/olivier-w/coderain/internal/rain"
	"github.com/olivier-w/coderain/internal/timing"
)

const fpsWindow = 60

// Loop is the render loop state. It is not safe for concurrent use; the
// frontend calls it from a single goroutine.
type Loop struct {
	opts Options

	rng     *rand.Rand
	glyphs  *glyph.Source
	setting *intensity.Setting
	field   *rain.Field
	epochs  int

	width, height    float64
	targetW, targetH float64
	resize           *timing.Debouncer
	paused           bool

	glowing bool
	speed   float64

	debug   bool
	readout string
	refresh *timing.Throttle
	fps     *FPSMeter

	message *overlay.Message
	prompt  *overlay.Prompt
	shake   *ShakeDetector
}

// New validates opts and builds a Loop. msg may be nil, which disables the
// overlay message.
func New(opts Options, msg *overlay.Message) (*Loop, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	rng := rand.New(rand.NewSource(opts.Seed))
	glyphs, err := glyph.New(opts.Alphabet, rng)
	if err != nil {
		return nil, fmt.Errorf("alphabet: %w", err)
	}
	return &Loop{
		opts:    opts,
		rng:     rng,
		glyphs:  glyphs,
		setting: intensity.NewSetting(opts.Presets, opts.FPS, opts.Ease),
		resize:  timing.NewDebouncer(opts.ResizeDebounce),
		debug:   opts.Debug,
		refresh: timing.NewThrottle(opts.ReadoutEvery),
		fps:     NewFPSMeter(fpsWindow),
		message: msg,
		prompt:  overlay.NewPrompt(opts.PromptFor),
		shake:   NewShakeDetector(opts.ShakeThreshold, opts.ShakeHits, opts.ShakeWindow),
	}, nil
}

// Init lays the field out immediately for a w x h viewport.
func (l *Loop) Init(w, h float64) {
	l.resize.Cancel()
	l.relayout(w, h)
	l.paused = false
}

// Ready reports whether a layout exists.
func (l *Loop) Ready() bool { return l.field != nil }

// Tick draws one frame on s. It returns false when nothing was drawn because
// the loop is paused for a resize or has no layout yet.
func (l *Loop) Tick(s rain.Surface, now time.Time) bool {
	if l.paused || l.field == nil {
		return false
	}
	s.Clear()
	if g, ok := s.(rain.Glower); ok {
		radius := l.opts.GlowRadius
		if radius <= 0 {
			radius = l.field.Layout.LetterSize
		}
		g.SetGlow(l.glowing, l.opts.Palette.Glow, radius)
	}
	l.speed = l.setting.Multiplier()
	l.field.Frame(s, l.opts.Palette, l.speed)

	l.fps.Tick(now)
	if l.debug && l.refresh.Allow(now) {
		l.readout = strconv.Itoa(int(l.fps.Rate() + 0.5))
	}
	l.prompt.Text(now)
	return true
}

// Resize records a new viewport size and pauses drawing until the size has
// been stable for the debounce wait. The returned generation identifies this
// request for SettleGen; 0 means nothing was scheduled.
func (l *Loop) Resize(w, h float64, now time.Time) uint64 {
	if l.field == nil {
		l.Init(w, h)
		return 0
	}
	if !l.resize.Pending() && w == l.width && h == l.height {
		return 0
	}
	l.targetW, l.targetH = w, h
	l.paused = true
	return l.resize.Trigger(now)
}

// ResizeWait is the debounce delay applied after the last Resize.
func (l *Loop) ResizeWait() time.Duration { return l.resize.Wait }

// Settle performs the pending relayout once its deadline has passed.
func (l *Loop) Settle(now time.Time) bool {
	if !l.resize.Due(now) {
		return false
	}
	l.applyResize()
	return true
}

// SettleGen performs the pending relayout if gen is still the latest resize.
func (l *Loop) SettleGen(gen uint64) bool {
	if !l.resize.Claim(gen) {
		return false
	}
	l.applyResize()
	return true
}

func (l *Loop) applyResize() {
	l.relayout(l.targetW, l.targetH)
	l.paused = false
}

func (l *Loop) relayout(w, h float64) {
	l.width, l.height = w, h
	f := layout.Compute(w, h, l.opts.Layout)
	l.field = rain.NewField(f, l.glyphs, l.rng, l.opts.Mutation)
	l.epochs++
	log.Printf("engine: layout %.0fx%.0f letter=%.0f streams=%d length=%d..%d",
		f.Width, f.Height, f.LetterSize, f.TotalStreams, f.StreamLengthMin, f.StreamLengthMax)
}

// Click advances to the next intensity preset and prompts its name.
func (l *Loop) Click(now time.Time) intensity.Preset {
	p := l.setting.Next()
	l.prompt.Show(p.Prompt, now)
	return p
}

// Prev steps back one intensity preset.
func (l *Loop) Prev(now time.Time) intensity.Preset {
	p := l.setting.Prev()
	l.prompt.Show(p.Prompt, now)
	return p
}

// Press turns the glow on while the pointer is held, if glow is enabled.
func (l *Loop) Press() {
	if l.opts.Glow {
		l.glowing = true
	}
}

// Release turns the glow off.
func (l *Loop) Release() { l.glowing = false }

// Shake restores the default intensity, clears the message and starts a
// new layout epoch.
func (l *Loop) Shake() {
	l.setting.Reset()
	l.message.Clear()
	l.prompt.Clear()
	l.shake.Reset()
	if l.field != nil && !l.paused {
		l.relayout(l.width, l.height)
	}
	log.Printf("engine: reset")
}

// Reset is Shake triggered from the keyboard.
func (l *Loop) Reset() { l.Shake() }

// Pointer feeds a pointer position to the shake detector and reports
// whether it triggered a reset.
func (l *Loop) Pointer(x, y float64, now time.Time) bool {
	if !l.shake.Sample(x, y, now) {
		return false
	}
	l.Shake()
	return true
}

// SetPointerStep tells the shake detector that pointer positions move in
// steps of px pixels.
func (l *Loop) SetPointerStep(px float64) { l.shake.Step = px }

// ToggleDebug flips the FPS readout.
func (l *Loop) ToggleDebug() {
	l.debug = !l.debug
	l.refresh.Reset()
	l.fps.Clear()
	l.readout = ""
}

// Debug reports whether the FPS readout is on.
func (l *Loop) Debug() bool { return l.debug }

// Readout is the last refreshed frame rate, empty when debug is off.
func (l *Loop) Readout() string {
	if !l.debug {
		return ""
	}
	return l.readout
}

// Key forwards a key press to the overlay message.
func (l *Loop) Key(k overlay.Key, r rune) bool {
	return l.message.HandleKey(k, r)
}

// ReloadMessage picks up a message persisted by another process.
func (l *Loop) ReloadMessage() { l.message.Reload() }

// Overlay returns the text to draw over the rain: the prompt while it is
// visible, otherwise the message.
func (l *Loop) Overlay(now time.Time) string {
	if p := l.prompt.Text(now); p != "" {
		return p
	}
	return l.message.Text()
}

// Multiplier is the speed multiplier used for the last frame.
func (l *Loop) Multiplier() float64 {
	if l.speed == 0 {
		return l.setting.Current().Speed
	}
	return l.speed
}

// Message returns the overlay message.
func (l *Loop) Message() string { return l.message.Text() }

// Paused reports whether a resize is waiting to settle.
func (l *Loop) Paused() bool { return l.paused }

// Glowing reports whether the glow is on.
func (l *Loop) Glowing() bool { return l.glowing }

// Field returns the streams of the current epoch, nil before Init.
func (l *Loop) Field() *rain.Field { return l.field }

// Preset returns the active intensity preset.
func (l *Loop) Preset() intensity.Preset { return l.setting.Current() }

// Epoch counts layouts made so far.
func (l *Loop) Epoch() int { return l.epochs }

// Size returns the viewport of the current layout.
func (l *Loop) Size() (w, h float64) { return l.width, l.height }

// Palette returns the configured colors.
func (l *Loop) Palette() rain.Palette { return l.opts.Palette }

// FPS returns the target frame rate.
func (l *Loop) FPS() int { return l.opts.FPS }

// Prompt returns the transient prompt, empty once it has expired.
func (l *Loop) Prompt(now time.Time) string { return l.prompt.Text(now) }
