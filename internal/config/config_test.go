package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/olivier-w/coderain/internal/glyph"
	"github.com/olivier-w/coderain/internal/rain"
)

func noEnv(string) string { return "" }

func TestDefaultsValidate(t *testing.T) {
	c, err := Parse(nil, noEnv, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Frontend != FrontendTUI || c.FPS != 60 || c.Density != 0.75 || c.Spacing != 1.3 {
		t.Fatalf("unexpected defaults %+v", c)
	}
	opts, err := c.EngineOptions()
	if err != nil {
		t.Fatalf("EngineOptions() error = %v", err)
	}
	if string(opts.Alphabet) != glyph.Classic {
		t.Fatalf("expected classic alphabet, got %q", string(opts.Alphabet))
	}
	if opts.Seed == 0 {
		t.Fatal("expected a clock seed when -seed is 0")
	}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	args := []string{
		"-frontend", "tcell", "-fps", "30", "-chars", "binary", "-density", "0.5",
		"-spacing", "2", "-mutation", "steady", "-ease", "-glow=false", "-seed", "7",
		"-msg", "wake up",
	}
	c, err := Parse(args, noEnv, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Message != "wake up" {
		t.Fatalf("expected message flag, got %q", c.Message)
	}
	opts, err := c.EngineOptions()
	if err != nil {
		t.Fatalf("EngineOptions() error = %v", err)
	}
	if opts.FPS != 30 || opts.Seed != 7 || !opts.Ease || opts.Glow {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.Layout.Density != 0.5 || opts.Layout.SpacingFactor != 2 {
		t.Fatalf("unexpected layout params %+v", opts.Layout)
	}
	if opts.Mutation != rain.MutateSteady {
		t.Fatalf("expected steady mutation, got %v", opts.Mutation)
	}
	if string(opts.Alphabet) != "01" {
		t.Fatalf("expected binary alphabet, got %q", string(opts.Alphabet))
	}
}

func TestOutOfRangeFlagsAreRejected(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"-frontend", "gpu"}, ErrFrontend},
		{[]string{"-fps", "0"}, ErrFPS},
		{[]string{"-fps", "121"}, ErrFPS},
		{[]string{"-density", "0"}, ErrDensity},
		{[]string{"-density", "1.01"}, ErrDensity},
		{[]string{"-spacing", "0.9"}, ErrSpacing},
		{[]string{"-spacing", "3.5"}, ErrSpacing},
		{[]string{"-chars", "zz"}, glyph.ErrAlphabetTooSmall},
		{[]string{"-frontend", "window", "-width", "0"}, ErrWindowSize},
	}
	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			if _, err := Parse(tc.args, noEnv, io.Discard); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUnknownMutationIsRejected(t *testing.T) {
	if _, err := Parse([]string{"-mutation", "chaos"}, noEnv, io.Discard); err == nil {
		t.Fatal("expected error for unknown mutation policy")
	}
}

func TestHelpAndStrayArguments(t *testing.T) {
	var out strings.Builder
	if _, err := Parse([]string{"-h"}, noEnv, &out); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "-frontend") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
	if _, err := Parse([]string{"extra"}, noEnv, io.Discard); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestDebugFromEnvironment(t *testing.T) {
	env := func(k string) string {
		if k == "DEBUG" {
			return "1"
		}
		return ""
	}
	c, err := Parse(nil, env, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !c.Debug {
		t.Fatal("expected DEBUG=1 to enable debug")
	}

	c, err = Parse([]string{"-debug=false"}, env, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Debug {
		t.Fatal("expected -debug=false to win over DEBUG")
	}
}

func TestListSkipsValidation(t *testing.T) {
	c, err := Parse([]string{"-list", "-fps", "0"}, noEnv, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !c.List {
		t.Fatal("expected List set")
	}
}
