// Package layout derives the rain field geometry from the viewport size.
package layout

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrLetterSize    = errors.New("letter size must be positive")
	ErrSpacingFactor = errors.New("spacing factor must be at least 1")
	ErrDensity       = errors.New("density must be in (0, 1]")
	ErrLengthMin     = errors.New("minimum stream length must be at least 2")
	ErrSpeedRange    = errors.New("maximum speed must be greater than minimum speed")
)

// Params are the viewport-independent inputs of Compute.
type Params struct {
	SmallLetterSize float64 // letter size below WideThreshold
	LargeLetterSize float64 // letter size at or above WideThreshold
	WideThreshold   float64 // viewport width switching to LargeLetterSize

	SpacingFactor float64 // letter spacing = letter size * SpacingFactor, >= 1
	Density       float64 // horizontal and vertical fill ratio, (0, 1]

	StreamLengthMin int // >= 2 so a stream always has a head and a body

	SpeedMin float64 // pixels per frame
	SpeedMax float64 // > SpeedMin
}

// DefaultParams returns the stock geometry.
func DefaultParams() Params {
	return Params{
		SmallLetterSize: 13,
		LargeLetterSize: 15,
		WideThreshold:   600,
		SpacingFactor:   1.3,
		Density:         0.75,
		StreamLengthMin: 8,
		SpeedMin:        1,
		SpeedMax:        6,
	}
}

// Validate checks every field once so Compute never divides by zero.
func (p Params) Validate() error {
	switch {
	case p.SmallLetterSize <= 0 || p.LargeLetterSize <= 0:
		return ErrLetterSize
	case p.SpacingFactor < 1:
		return fmt.Errorf("%w (got %.2f)", ErrSpacingFactor, p.SpacingFactor)
	case p.Density <= 0 || p.Density > 1:
		return fmt.Errorf("%w (got %.2f)", ErrDensity, p.Density)
	case p.StreamLengthMin < 2:
		return fmt.Errorf("%w (got %d)", ErrLengthMin, p.StreamLengthMin)
	case p.SpeedMax <= p.SpeedMin:
		return fmt.Errorf("%w (got %.2f..%.2f)", ErrSpeedRange, p.SpeedMin, p.SpeedMax)
	}
	return nil
}

// Field is the geometry of one layout epoch. It is a value: a resize
// produces a new Field rather than mutating the old one.
type Field struct {
	Width  float64
	Height float64

	LetterSize    float64
	LetterSpacing float64

	TotalStreams    int
	StreamLengthMin int
	StreamLengthMax int

	SpeedMin float64
	SpeedMax float64

	SlotWidth  float64
	SlotOffset float64
}

// Compute lays out a width x height viewport. p must have passed Validate.
func Compute(width, height float64, p Params) Field {
	width = math.Max(width, 0)
	height = math.Max(height, 0)

	letterSize := p.SmallLetterSize
	if width >= p.WideThreshold {
		letterSize = p.LargeLetterSize
	}
	spacing := letterSize * p.SpacingFactor

	f := Field{
		Width:           width,
		Height:          height,
		LetterSize:      letterSize,
		LetterSpacing:   spacing,
		TotalStreams:    int(math.Floor(width * p.Density / letterSize)),
		StreamLengthMin: p.StreamLengthMin,
		StreamLengthMax: int(math.Floor(height * p.Density / spacing)),
		SpeedMin:        p.SpeedMin,
		SpeedMax:        p.SpeedMax,
	}
	if f.StreamLengthMax < f.StreamLengthMin {
		f.StreamLengthMax = f.StreamLengthMin
	}
	if f.TotalStreams > 0 {
		f.SlotWidth = math.Floor(width / float64(f.TotalStreams))
		f.SlotOffset = (f.SlotWidth - letterSize) / 2
	}
	return f
}

// SlotX returns the horizontal position of stream i.
func (f Field) SlotX(i int) float64 {
	return float64(i)*f.SlotWidth + f.SlotOffset
}

// WrapY is the tail position past which a stream restarts from the top.
func (f Field) WrapY() float64 {
	return f.Height + f.LetterSize
}
