// Package config turns command-line flags and the environment into the
// settings for a run.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/olivier-w/coderain/internal/engine"
	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/rain"
)

// Frontends a run can be drawn on.
const (
	FrontendTUI    = "tui"
	FrontendTCell  = "tcell"
	FrontendWindow = "window"
)

var (
	ErrFrontend   = errors.New("unknown frontend")
	ErrFPS        = errors.New("fps must be between 1 and 120")
	ErrDensity    = errors.New("density must be in (0, 1]")
	ErrSpacing    = errors.New("spacing must be between 1 and 3")
	ErrWindowSize = errors.New("window size must be positive")
)

// Config is the parsed command line.
type Config struct {
	Frontend string
	FPS      int
	Chars    string
	Density  float64
	Spacing  float64
	Mutation string
	Ease     bool
	Glow     bool

	Message   string // falls back to the saved message when empty
	StorePath string
	NoStore   bool

	Seed   int64
	Font   string
	Width  int
	Height int

	Debug   bool
	LogPath string
	List    bool
}

// Default returns the settings used when no flags are given.
func Default() Config {
	return Config{
		Frontend: FrontendTUI,
		FPS:      60,
		Chars:    "classic",
		Density:  0.75,
		Spacing:  1.3,
		Mutation: rain.MutateClassic.String(),
		Glow:     true,
		Width:    1024,
		Height:   768,
		LogPath:  "coderain.log",
	}
}

// Parse reads args (without the program name). getenv supplies DEBUG;
// usage and flag errors are written to out. A request for help returns
// flag.ErrHelp.
func Parse(args []string, getenv func(string) string, out io.Writer) (Config, error) {
	c := Default()
	if getenv != nil {
		switch getenv("DEBUG") {
		case "", "0", "false":
		default:
			c.Debug = true
		}
	}

	fs := flag.NewFlagSet("coderain", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&c.Frontend, "frontend", c.Frontend, "where to draw: tui, tcell or window")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second (1-120)")
	fs.StringVar(&c.Chars, "chars", c.Chars, "named character set (see -list) or literal glyphs")
	fs.Float64Var(&c.Density, "density", c.Density, "share of columns carrying a stream (0-1]")
	fs.Float64Var(&c.Spacing, "spacing", c.Spacing, "letter spacing as a multiple of letter size (1-3)")
	fs.StringVar(&c.Mutation, "mutation", c.Mutation, "glyph flicker: classic or steady")
	fs.BoolVar(&c.Ease, "ease", c.Ease, "ease speed changes between intensity presets")
	fs.BoolVar(&c.Glow, "glow", c.Glow, "glow while the mouse button is held")
	fs.StringVar(&c.Message, "msg", c.Message, "overlay message (overrides the saved one)")
	fs.StringVar(&c.StorePath, "store", c.StorePath, "file the overlay message is saved in")
	fs.BoolVar(&c.NoStore, "nostore", c.NoStore, "keep the overlay message in memory only")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 picks one from the clock")
	fs.StringVar(&c.Font, "font", c.Font, "TTF/OTF font for the window frontend")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "log to -log and start with the FPS readout")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "debug log file")
	fs.BoolVar(&c.List, "list", c.List, "list the named character sets and exit")

	if err := fs.Parse(args); err != nil {
		return c, err
	}
	if fs.NArg() > 0 {
		return c, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if c.List {
		return c, nil
	}
	return c, c.Validate()
}

// Validate checks ranges that flag parsing cannot.
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendTUI, FrontendTCell, FrontendWindow:
	default:
		return fmt.Errorf("%w %q (want tui, tcell or window)", ErrFrontend, c.Frontend)
	}
	if c.FPS < 1 || c.FPS > 120 {
		return fmt.Errorf("%w (got %d)", ErrFPS, c.FPS)
	}
	if c.Density <= 0 || c.Density > 1 {
		return fmt.Errorf("%w (got %g)", ErrDensity, c.Density)
	}
	if c.Spacing < 1 || c.Spacing > 3 {
		return fmt.Errorf("%w (got %g)", ErrSpacing, c.Spacing)
	}
	if _, err := rain.ParseMutation(c.Mutation); err != nil {
		return err
	}
	alphabet, err := glyph.Resolve(c.Chars)
	if err != nil {
		return err
	}
	if _, err := glyph.New(alphabet, nil); err != nil {
		return fmt.Errorf("character set %q: %w", c.Chars, err)
	}
	if c.Frontend == FrontendWindow && (c.Width <= 0 || c.Height <= 0) {
		return fmt.Errorf("%w (got %dx%d)", ErrWindowSize, c.Width, c.Height)
	}
	return nil
}

// EngineOptions builds the render loop options for c.
func (c Config) EngineOptions() (engine.Options, error) {
	opts := engine.DefaultOptions()

	alphabet, err := glyph.Resolve(c.Chars)
	if err != nil {
		return opts, err
	}
	mutation, err := rain.ParseMutation(c.Mutation)
	if err != nil {
		return opts, err
	}

	opts.FPS = c.FPS
	opts.Alphabet = alphabet
	opts.Mutation = mutation
	opts.Layout.Density = c.Density
	opts.Layout.SpacingFactor = c.Spacing
	opts.Ease = c.Ease
	opts.Glow = c.Glow
	opts.Debug = c.Debug
	opts.Seed = c.Seed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return opts, opts.Validate()
}
