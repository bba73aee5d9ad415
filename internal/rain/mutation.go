package rain

import (
	"fmt"
	"math/rand"
	"strings"
)

// Mutation selects how glyphs flicker after each advance.
type Mutation int

const (
	// MutateClassic swaps the head with p=0.1, otherwise one body letter
	// with cumulative p=0.5.
	MutateClassic Mutation = iota
	// MutateSteady swaps one body letter every frame and the head with an
	// independent p=0.2.
	MutateSteady
)

const (
	classicHeadChance = 0.1
	classicBodyChance = 0.5
	steadyHeadChance  = 0.2
)

func (m Mutation) apply(s *Stream, rng *rand.Rand) {
	switch m {
	case MutateSteady:
		s.mutateBody(rng)
		if rng.Float64() < steadyHeadChance {
			s.Head().Mutate(s.glyphs)
		}
	default:
		switch roll := rng.Float64(); {
		case roll < classicHeadChance:
			s.Head().Mutate(s.glyphs)
		case roll < classicBodyChance:
			s.mutateBody(rng)
		}
	}
}

// String returns the flag name of the policy.
func (m Mutation) String() string {
	switch m {
	case MutateSteady:
		return "steady"
	default:
		return "classic"
	}
}

// ParseMutation maps a flag value to a policy.
func ParseMutation(name string) (Mutation, error) {
	switch strings.ToLower(name) {
	case "", "classic":
		return MutateClassic, nil
	case "steady":
		return MutateSteady, nil
	}
	return MutateClassic, fmt.Errorf("unknown mutation policy %q (want classic or steady)", name)
}
