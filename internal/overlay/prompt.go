package overlay

import (
	"time"

	"github.com/olivier-w/coderain/internal/timing"
)

// Prompt is a transient notice that clears itself after a fixed duration.
// Showing a new prompt replaces the current one and restarts its timer.
type Prompt struct {
	text     string
	duration time.Duration
	expiry   timing.Slot
}

// NewPrompt returns a Prompt that stays up for d.
func NewPrompt(d time.Duration) *Prompt {
	return &Prompt{duration: d}
}

// Show displays text until now+duration.
func (p *Prompt) Show(text string, now time.Time) {
	p.text = text
	p.expiry.Arm(now.Add(p.duration))
}

// Text returns the visible prompt, clearing it once expired.
func (p *Prompt) Text(now time.Time) string {
	if p.expiry.Due(now) {
		p.text = ""
	}
	return p.text
}

// Clear hides the prompt and cancels its timer.
func (p *Prompt) Clear() {
	p.text = ""
	p.expiry.Cancel()
}
