package source

import (
	"time"

	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
)

// FrameRate counts how often it is sampled. The board samples once per
// tick, so the reading is ticks per second, recomputed once a second.
type FrameRate struct {
	meta   Meta
	now    func() time.Time
	start  time.Time
	frames int
	fps    float64
}

func NewFrameRate(now func() time.Time) *FrameRate {
	if now == nil {
		now = time.Now
	}
	return &FrameRate{
		meta: Meta{Name: "FPS", Color: render.Red, Scale: telemetry.AutoScale()},
		now:  now,
	}
}

func (f *FrameRate) Sample() float64 {
	t := f.now()
	if f.start.IsZero() {
		f.start = t
	}
	f.frames++

	if elapsed := t.Sub(f.start); elapsed >= time.Second {
		f.fps = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.start = t
	}
	return f.fps
}

func (f *FrameRate) ScaleMode() telemetry.ScaleMode { return f.meta.Scale }
func (f *FrameRate) Color() render.Color            { return f.meta.Color }
func (f *FrameRate) DisplayName() string            { return f.meta.Name }
