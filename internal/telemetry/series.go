package telemetry

import (
	"fmt"
	"math"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/render"
)

// Series is one metric's rolling buffer. Points are kept oldest first; a
// point is evicted once it has scrolled further left than the window width.
type Series struct {
	source     Source
	points     []Point
	window     float64
	scrollRate float64
	flat       bool
}

func NewSeries(src Source, scrollRate float64) (*Series, error) {
	errFactory := errors.New()

	if src == nil {
		return nil, errFactory.New(ErrNilSource)
	}
	mode := src.ScaleMode()
	if !mode.Auto && mode.Max < mode.Min {
		return nil, errFactory.WithData(ErrInvalidScale, struct {
			Series string
			Mode   string
		}{src.DisplayName(), mode.String()})
	}

	return &Series{
		source:     src,
		scrollRate: scrollRate,
	}, nil
}

// SetWindow sets the visible width; points further left are evicted on the
// next Tick.
func (s *Series) SetWindow(width float64) {
	s.window = width
}

// Tick scrolls every retained point left by dt*scrollRate, appends sample
// at offset 0 and evicts every point that left the window. After Tick all
// retained points satisfy -window <= Offset <= 0 and the new sample is
// always retained.
func (s *Series) Tick(dt, sample float64) {
	shift := dt * s.scrollRate
	for i := range s.points {
		s.points[i].Offset -= shift
	}
	s.points = append(s.points, Point{Value: sample})

	kept := s.points[:0]
	for _, p := range s.points {
		if p.Offset >= -s.window {
			kept = append(kept, p)
		}
	}
	clear(s.points[len(kept):])
	s.points = kept
}

// Points returns a copy of the retained points, oldest first.
func (s *Series) Points() []Point {
	return append([]Point(nil), s.points...)
}

func (s *Series) Len() int {
	return len(s.points)
}

func (s *Series) Name() string {
	return s.source.DisplayName()
}

func (s *Series) Source() Source {
	return s.source
}

// Stats reports last, average, min and max of the retained points. ok is
// false before the first Tick.
func (s *Series) Stats() (Stats, bool) {
	if len(s.points) == 0 {
		return Stats{}, false
	}

	st := Stats{
		Last: s.points[len(s.points)-1].Value,
		Min:  s.points[0].Value,
		Max:  s.points[0].Value,
	}
	sum := 0.0
	for _, p := range s.points {
		sum += p.Value
		st.Min = min(st.Min, p.Value)
		st.Max = max(st.Max, p.Value)
	}
	st.Avg = sum / float64(len(s.points))

	return st, true
}

// Label is the summary line drawn under the graph.
func (s *Series) Label() string {
	st, _ := s.Stats()
	return fmt.Sprintf("%s: %.4f avg: %.4f min: %.4f max: %.4f",
		s.source.DisplayName(), st.Last, st.Avg, st.Min, st.Max)
}

// ComputeScale fits mode onto the vertical span top..bottom. Auto mode uses
// only the finite values among the given points. When the value range is
// empty or not finite it returns a flat scale through the middle of the
// span together with ErrDegenerateScale.
func ComputeScale(mode ScaleMode, points []Point, top, bottom float64) (Scale, error) {
	errFactory := errors.New()

	lo, hi := mode.Min, mode.Max
	if mode.Auto {
		found := false
		for _, p := range points {
			if !finite(p.Value) {
				continue
			}
			if !found {
				lo, hi, found = p.Value, p.Value, true
				continue
			}
			lo = min(lo, p.Value)
			hi = max(hi, p.Value)
		}
		if !found {
			return flatScale(top, bottom), errFactory.New(ErrDegenerateScale)
		}
	}

	slope := (bottom - top) / (hi - lo)
	if hi == lo || !finite(hi-lo) || !finite(slope) || !finite(lo*slope) {
		return flatScale(top, bottom), errFactory.WithData(ErrDegenerateScale, struct {
			Min, Max float64
		}{lo, hi})
	}

	return Scale{Slope: slope, Intercept: -lo * slope}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func flatScale(top, bottom float64) Scale {
	return Scale{Intercept: (bottom - top) / 2}
}

// draw renders the polyline inside area and the label on row order below it.
func (s *Series) draw(c render.Canvas, area render.Rect, labelWidth, fontHeight float64, order int) {
	col := s.source.Color()

	scale, err := ComputeScale(s.source.ScaleMode(), s.points, area.Top, area.Bottom())
	if err != nil {
		if !s.flat {
			logger.Debug().
				Str("series", s.Name()).
				Err(err).
				Msg("Degenerate scale, drawing flat line")
		}
		s.flat = true
	} else {
		s.flat = false
	}

	right, bottom := area.Right(), area.Bottom()
	for i := 0; i+1 < len(s.points); i++ {
		p1, p2 := s.points[i], s.points[i+1]
		if !finite(p1.Value) || !finite(p2.Value) {
			continue
		}
		c.Line(
			render.Point{X: right + p1.Offset, Y: scale.Y(p1.Value, bottom)},
			render.Point{X: right + p2.Offset, Y: scale.Y(p2.Value, bottom)},
			col,
		)
	}

	c.Text(s.Label(), render.Rect{
		Left:   area.Left,
		Top:    bottom + float64(order)*fontHeight,
		Width:  labelWidth,
		Height: fontHeight,
	}, col)
}
