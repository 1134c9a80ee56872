// Package source provides ready-made telemetry sources: frame rate, CPU
// load, Go heap usage and a plain function adapter.
package source

import (
	"time"

	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
)

// Meta carries the display properties every source reports.
type Meta struct {
	Name  string
	Color render.Color
	Scale telemetry.ScaleMode
}

func (m Meta) withDefaults(name string) Meta {
	if m.Name == "" {
		m.Name = name
	}
	if m.Color == (render.Color{}) {
		m.Color = render.White
	}
	return m
}

type funcSource struct {
	meta Meta
	fn   func() float64
}

// Func adapts fn into a Source.
func Func(meta Meta, fn func() float64) telemetry.Source {
	return &funcSource{meta: meta.withDefaults("func"), fn: fn}
}

func (f *funcSource) Sample() float64                { return f.fn() }
func (f *funcSource) ScaleMode() telemetry.ScaleMode { return f.meta.Scale }
func (f *funcSource) Color() render.Color            { return f.meta.Color }
func (f *funcSource) DisplayName() string            { return f.meta.Name }

// throttle reports true at most once per interval. The first call always
// fires.
type throttle struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

func newThrottle(interval time.Duration, now func() time.Time) throttle {
	if now == nil {
		now = time.Now
	}
	return throttle{interval: interval, now: now}
}

func (t *throttle) due() bool {
	n := t.now()
	if !t.last.IsZero() && n.Sub(t.last) < t.interval {
		return false
	}
	t.last = n
	return true
}
