package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Explicit timer types replacing effect-cleanup patterns: every trigger
// invalidates the previous timer through a generation counter, and the
// single cancellation path is bumping that counter.

type debounceMsg struct {
	gen   int
	value string
}

// debouncer delays committing a value until input has been quiet for
// the configured delay.
type debouncer struct {
	delay time.Duration
	gen   int
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

// Trigger schedules value to fire after the delay, superseding any
// pending trigger.
func (d *debouncer) Trigger(value string) tea.Cmd {
	d.gen++
	gen := d.gen
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen, value: value}
	})
}

// Cancel invalidates whatever is pending.
func (d *debouncer) Cancel() {
	d.gen++
}

// Matches reports whether msg is the latest trigger.
func (d *debouncer) Matches(msg debounceMsg) bool {
	return msg.gen == d.gen
}

type minVisibleMsg struct {
	gen int
}

// minVisible keeps an indicator shown for at least a minimum duration
// so fast responses don't flash it.
type minVisible struct {
	min     time.Duration
	visible bool
	since   time.Time
	gen     int
}

func newMinVisible(min time.Duration) *minVisible {
	return &minVisible{min: min}
}

func (v *minVisible) Visible() bool {
	return v.visible
}

// Set transitions the underlying activity flag. Deactivation before the
// minimum has elapsed schedules a deferred hide; any transition cancels
// a pending one.
func (v *minVisible) Set(active bool) tea.Cmd {
	v.gen++
	if active {
		if !v.visible {
			v.visible = true
			v.since = time.Now()
		}
		return nil
	}
	if !v.visible {
		return nil
	}
	remaining := v.min - time.Since(v.since)
	if remaining <= 0 {
		v.visible = false
		return nil
	}
	gen := v.gen
	return tea.Tick(remaining, func(time.Time) tea.Msg {
		return minVisibleMsg{gen: gen}
	})
}

func (v *minVisible) Apply(msg minVisibleMsg) {
	if msg.gen != v.gen {
		return
	}
	v.visible = false
}
