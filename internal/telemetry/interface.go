package telemetry

import (
	"fmt"

	"codeberg.org/mutker/devconsole/internal/render"
)

// Source is an external metric sampled once per board tick.
type Source interface {
	// Sample returns the current reading. It is called from the host's
	// update call and must not block.
	Sample() float64
	ScaleMode() ScaleMode
	Color() render.Color
	DisplayName() string
}

// ScaleMode is either Auto, using the range of the retained points, or a
// fixed Min..Max range.
type ScaleMode struct {
	Auto     bool
	Min, Max float64
}

func AutoScale() ScaleMode {
	return ScaleMode{Auto: true}
}

func FixedScale(minValue, maxValue float64) ScaleMode {
	return ScaleMode{Min: minValue, Max: maxValue}
}

func (m ScaleMode) String() string {
	if m.Auto {
		return "auto"
	}
	return fmt.Sprintf("fixed(%g,%g)", m.Min, m.Max)
}

// Point is one retained sample. Offset is how far the point has scrolled
// left of the graph's right edge; it is 0 when sampled and only decreases.
type Point struct {
	Value  float64
	Offset float64
}

// Stats summarises the retained points of a series.
type Stats struct {
	Last float64
	Avg  float64
	Min  float64
	Max  float64
}

// Scale maps a value to a vertical draw position: bottom - (Slope*v + Intercept).
type Scale struct {
	Slope     float64
	Intercept float64
}

func (s Scale) Y(v, bottom float64) float64 {
	return bottom - (s.Slope*v + s.Intercept)
}

// Sample is one series reading taken during a board tick.
type Sample struct {
	Series string
	Value  float64
}
