package source

import (
	"runtime"
	"time"

	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
)

const bytesPerMiB = 1 << 20

// Heap reports the Go heap in use, in MiB. ReadMemStats stops the world, so
// it runs at most once a second.
type Heap struct {
	meta     Meta
	throttle throttle
	mib      float64
}

func NewHeap(now func() time.Time) *Heap {
	return &Heap{
		meta:     Meta{Name: "Heap MiB", Color: render.Blue, Scale: telemetry.AutoScale()},
		throttle: newThrottle(time.Second, now),
	}
}

func (h *Heap) Sample() float64 {
	if h.throttle.due() {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		h.mib = float64(ms.HeapAlloc) / bytesPerMiB
	}
	return h.mib
}

func (h *Heap) ScaleMode() telemetry.ScaleMode { return h.meta.Scale }
func (h *Heap) Color() render.Color            { return h.meta.Color }
func (h *Heap) DisplayName() string            { return h.meta.Name }
