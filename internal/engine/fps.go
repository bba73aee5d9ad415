package engine

import "time"

// FPSMeter measures the frame rate over the most recent frames.
type FPSMeter struct {
	stamps []time.Time
	size   int
	w      int // write position
	len    int // current fill level
}

// NewFPSMeter keeps the last size frame timestamps.
func NewFPSMeter(size int) *FPSMeter {
	if size < 2 {
		size = 2
	}
	return &FPSMeter{
		stamps: make([]time.Time, size),
		size:   size,
	}
}

// Tick records a frame drawn at now.
func (m *FPSMeter) Tick(now time.Time) {
	m.stamps[m.w] = now
	m.w = (m.w + 1) % m.size
	if m.len < m.size {
		m.len++
	}
}

// Rate returns frames per second across the recorded window.
func (m *FPSMeter) Rate() float64 {
	if m.len < 2 {
		return 0
	}
	newest := m.stamps[(m.w-1+m.size)%m.size]
	oldest := m.stamps[(m.w-m.len+m.size)%m.size]
	span := newest.Sub(oldest).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(m.len-1) / span
}

// Clear forgets all recorded frames.
func (m *FPSMeter) Clear() {
	m.w = 0
	m.len = 0
}
