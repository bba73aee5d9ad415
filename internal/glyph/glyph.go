package glyph

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Classic is the default rain alphabet.
const Classic = `qwertyuiopasdfghjklzxcvbnm.:"*<>|123457890-_=+QWERTYUIOP `

// maxRetries bounds PickDistinctFrom before it falls back to a deterministic pick.
const maxRetries = 16

// ErrAlphabetTooSmall is returned when an alphabet cannot produce two different glyphs.
var ErrAlphabetTooSmall = errors.New("alphabet needs at least two distinct characters")

var namedSets = map[string]string{
	"classic":  Classic,
	"katakana": "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789",
	"binary":   "01",
	"digits":   "0123456789",
	"greek":    "αβγδεζηθικλμνξοπρστυφχψω",
	"symbols":  `!@#$%^&*()_+-=[]{}|;':",./<>?`,
}

// Source samples glyphs uniformly from a fixed alphabet.
type Source struct {
	alphabet []rune
	rng      *rand.Rand
}

// New creates a Source. Duplicate runes are dropped so sampling stays uniform
// over distinct glyphs.
func New(alphabet []rune, rng *rand.Rand) (*Source, error) {
	seen := make(map[rune]bool, len(alphabet))
	distinct := make([]rune, 0, len(alphabet))
	for _, r := range alphabet {
		if seen[r] {
			continue
		}
		seen[r] = true
		distinct = append(distinct, r)
	}
	if len(distinct) < 2 {
		return nil, ErrAlphabetTooSmall
	}
	return &Source{alphabet: distinct, rng: rng}, nil
}

// Len returns the number of distinct glyphs.
func (s *Source) Len() int { return len(s.alphabet) }

// Contains reports whether r belongs to the alphabet.
func (s *Source) Contains(r rune) bool {
	for _, a := range s.alphabet {
		if a == r {
			return true
		}
	}
	return false
}

// Pick returns a uniformly sampled glyph.
func (s *Source) Pick() rune {
	return s.alphabet[s.rng.Intn(len(s.alphabet))]
}

// PickDistinctFrom returns a glyph different from prev.
func (s *Source) PickDistinctFrom(prev rune) rune {
	for range maxRetries {
		if r := s.Pick(); r != prev {
			return r
		}
	}
	for i, r := range s.alphabet {
		if r == prev {
			return s.alphabet[(i+1)%len(s.alphabet)]
		}
	}
	return s.alphabet[0]
}

// Range returns every code point in [lo, hi].
func Range(lo, hi rune) []rune {
	if hi < lo {
		return nil
	}
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// Resolve maps a named set to its alphabet. Any other non-empty value is used
// verbatim as a custom alphabet.
func Resolve(name string) ([]rune, error) {
	if set, ok := namedSets[strings.ToLower(name)]; ok {
		return []rune(set), nil
	}
	if name == "" {
		return nil, fmt.Errorf("character set: %w", ErrAlphabetTooSmall)
	}
	return []rune(name), nil
}

// Names lists the named sets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(namedSets))
	for n := range namedSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
