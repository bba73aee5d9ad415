package intensity

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settleEpsilon snaps the spring onto its target once it is this close.
const settleEpsilon = 1e-3

type spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newSpring(fps int, frequency, damping float64) spring {
	if fps < 1 {
		fps = 60
	}
	return spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *spring) step(target float64) float64 {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	if math.Abs(s.pos-target) < settleEpsilon && math.Abs(s.vel) < settleEpsilon {
		s.settle(target)
	}
	// A stream never moves backwards, even if the spring overshoots below zero.
	return math.Max(s.pos, 0)
}

func (s *spring) settle(v float64) {
	s.pos = v
	s.vel = 0
}
