package pacer

import (
	"runtime"
	"time"
)

// Pacer throttles the reclaim loop so it stays under a target CPU
// percentage. The engine calls Pause between catalog entries.
type Pacer struct {
	maxPercent float64
	lastSleep  time.Time
}

// New creates a pacer for the given CPU budget. A budget of 0 (or
// anything >= 100) disables pacing.
func New(maxPercent float64) *Pacer {
	return &Pacer{
		maxPercent: maxPercent,
		lastSleep:  time.Now(),
	}
}

// Pause sleeps long enough to keep the duty cycle near maxPercent.
// Sizing work slices at 10ms keeps individual sleeps short, so the run
// stays responsive to signals. For stricter control use cgroups or
// systemd limits instead.
func (p *Pacer) Pause() {
	if p.maxPercent <= 0 || p.maxPercent >= 100 {
		return // No limit
	}

	// To use maxPercent of the CPU, sleep the complementary share of
	// each work slice.
	sleepPercent := 100.0 - p.maxPercent

	workTime := 10 * time.Millisecond
	sleepTime := time.Duration(float64(workTime) * (sleepPercent / p.maxPercent))

	if time.Since(p.lastSleep) > workTime {
		time.Sleep(sleepTime)
		p.lastSleep = time.Now()
	}

	runtime.Gosched()
}

// SetMaxPercent updates the CPU budget.
func (p *Pacer) SetMaxPercent(maxPercent float64) {
	p.maxPercent = maxPercent
}
