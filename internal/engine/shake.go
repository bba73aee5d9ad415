package engine

import (
	"math"
	"time"
)

const stepsPerHit = 3

// ShakeDetector recognises a shake from a stream of pointer positions.
// A hit is a change in velocity (|dvx| + |dvy|) above Threshold between two
// consecutive samples; Hits hits within Window make a shake.
//
// Step is the pointer resolution in pixels. Positions snapped to a grid
// (terminal cells) only count changes larger than stepsPerHit grid steps.
type ShakeDetector struct {
	Threshold float64
	Hits      int
	Window    time.Duration
	Step      float64

	samples int
	px, py  float64
	vx, vy  float64
	hits    []time.Time
}

func NewShakeDetector(threshold float64, hits int, window time.Duration) *ShakeDetector {
	return &ShakeDetector{Threshold: threshold, Hits: hits, Window: window}
}

// Sample feeds one pointer position and reports whether it completed a shake.
func (d *ShakeDetector) Sample(x, y float64, now time.Time) bool {
	if d.Threshold <= 0 {
		return false
	}
	defer func() { d.px, d.py = x, y }()

	d.samples++
	if d.samples == 1 {
		return false
	}
	vx, vy := x-d.px, y-d.py
	defer func() { d.vx, d.vy = vx, vy }()
	if d.samples == 2 {
		return false
	}

	if math.Abs(vx-d.vx)+math.Abs(vy-d.vy) <= d.threshold() {
		return false
	}

	cutoff := now.Add(-d.Window)
	kept := d.hits[:0]
	for _, h := range d.hits {
		if h.After(cutoff) {
			kept = append(kept, h)
		}
	}
	d.hits = append(kept, now)
	if len(d.hits) < d.Hits {
		return false
	}
	d.Reset()
	return true
}

func (d *ShakeDetector) threshold() float64 {
	return math.Max(d.Threshold, stepsPerHit*d.Step)
}

// Reset forgets the motion history.
func (d *ShakeDetector) Reset() {
	d.samples = 0
	d.vx, d.vy = 0, 0
	d.hits = d.hits[:0]
}
