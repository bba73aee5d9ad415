package raster

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Profile is the color depth of the output terminal.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileANSI16
	ProfileANSI256
	ProfileTrueColor
)

func (p Profile) String() string {
	switch p {
	case ProfileANSI16:
		return "ansi16"
	case ProfileANSI256:
		return "ansi256"
	case ProfileTrueColor:
		return "truecolor"
	default:
		return "none"
	}
}

var (
	profileOnce sync.Once
	detected    Profile
	seqCache    sync.Map
)

// DetectProfile inspects NO_COLOR, COLORTERM and TERM once per process.
func DetectProfile() Profile {
	profileOnce.Do(func() {
		detected = profileFromEnv(os.LookupEnv)
	})
	return detected
}

func profileFromEnv(lookup func(string) (string, bool)) Profile {
	if _, off := lookup("NO_COLOR"); off {
		return ProfileNone
	}
	term, _ := lookup("TERM")
	colorTerm, _ := lookup("COLORTERM")
	term = strings.ToLower(term)
	colorTerm = strings.ToLower(colorTerm)
	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		return ProfileTrueColor
	case strings.Contains(term, "256color"):
		return ProfileANSI256
	case term == "", term == "dumb":
		return ProfileNone
	default:
		return ProfileANSI16
	}
}

var ansi16 = []colorful.Color{
	{R: 0, G: 0, B: 0},
	{R: 205.0 / 255, G: 49.0 / 255, B: 49.0 / 255},
	{R: 13.0 / 255, G: 188.0 / 255, B: 121.0 / 255},
	{R: 229.0 / 255, G: 229.0 / 255, B: 16.0 / 255},
	{R: 36.0 / 255, G: 114.0 / 255, B: 200.0 / 255},
	{R: 188.0 / 255, G: 63.0 / 255, B: 188.0 / 255},
	{R: 17.0 / 255, G: 168.0 / 255, B: 205.0 / 255},
	{R: 229.0 / 255, G: 229.0 / 255, B: 229.0 / 255},
}

// sequence returns the SGR foreground sequence for rgb under p.
func sequence(p Profile, rgb uint32) string {
	key := uint64(p)<<32 | uint64(rgb)
	if seq, ok := seqCache.Load(key); ok {
		return seq.(string)
	}
	r, g, b := uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)

	var seq string
	switch p {
	case ProfileTrueColor:
		seq = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	case ProfileANSI256:
		q := func(v uint8) int { return int(math.Round(float64(v) * 5 / 255)) }
		seq = fmt.Sprintf("\x1b[38;5;%dm", 16+36*q(r)+6*q(g)+q(b))
	case ProfileANSI16:
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		best, bestDist := 0, math.MaxFloat64
		for i, pc := range ansi16 {
			if d := c.DistanceLab(pc); d < bestDist {
				best, bestDist = i, d
			}
		}
		seq = fmt.Sprintf("\x1b[%dm", 30+best)
	}

	seqCache.Store(key, seq)
	return seq
}

// sgrState elides repeated escape sequences while a frame is written.
type sgrState struct {
	profile Profile
	color   uint32
	bold    bool
	dirty   bool
}

const noColor = ^uint32(0)

func newSGRState(p Profile) sgrState {
	return sgrState{profile: p, color: noColor}
}

func (s *sgrState) set(sb *strings.Builder, rgb uint32, bold bool) {
	if s.profile == ProfileNone {
		return
	}
	if bold != s.bold {
		if bold {
			sb.WriteString("\x1b[1m")
		} else {
			sb.WriteString("\x1b[22m")
		}
		s.bold = bold
		s.dirty = true
	}
	if rgb == s.color {
		return
	}
	sb.WriteString(sequence(s.profile, rgb))
	s.color = rgb
	s.dirty = true
}

func (s *sgrState) reset(sb *strings.Builder) {
	if !s.dirty {
		return
	}
	sb.WriteString("\x1b[0m")
	s.color = noColor
	s.bold = false
	s.dirty = false
}
