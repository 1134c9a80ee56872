// Package telemetry implements the scrolling multi-series graph: per-metric
// rolling sample buffers with eviction, auto or fixed vertical scaling,
// summary statistics and a shared draw pass.
package telemetry

import (
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/render"
)

// Board owns the series in registration order and the graph geometry they
// share. Within a Tick every series is sampled first, then the geometry is
// recomputed if needed; Draw always follows.
type Board struct {
	cfg      Config
	series   []*Series
	samples  []Sample
	viewport render.Rect
	area     render.Rect
	dirty    bool
}

func NewBoard(cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Board{cfg: cfg, dirty: true}, nil
}

// Add registers a series for src. Series are drawn and labelled in the
// order they are added.
func (b *Board) Add(src Source) (*Series, error) {
	s, err := NewSeries(src, b.cfg.ScrollRate)
	if err != nil {
		return nil, err
	}

	b.series = append(b.series, s)
	b.dirty = true

	logger.Debug().
		Str("series", s.Name()).
		Str("scale", src.ScaleMode().String()).
		Msg("Series registered")

	return s, nil
}

// MustAdd is Add for setup code.
func (b *Board) MustAdd(src Source) *Series {
	s, err := b.Add(src)
	if err != nil {
		panic(err)
	}
	return s
}

// Resize sets the host viewport and recomputes the geometry.
func (b *Board) Resize(viewport render.Rect) {
	if viewport == b.viewport && !b.dirty {
		return
	}
	b.viewport = viewport
	b.relayout()
}

// Tick samples every source once, in registration order, and advances its
// series by dt seconds.
func (b *Board) Tick(dt float64) {
	b.samples = b.samples[:0]
	for _, s := range b.series {
		v := s.source.Sample()
		s.Tick(dt, v)
		b.samples = append(b.samples, Sample{Series: s.Name(), Value: v})
	}

	if b.dirty {
		b.relayout()
	}
}

// Draw renders the grid, then each series' polyline and label.
func (b *Board) Draw(c render.Canvas) {
	if b.dirty {
		b.relayout()
	}

	b.drawGrid(c)
	for i, s := range b.series {
		s.draw(c, b.area, b.viewport.Width, b.cfg.FontHeight, i)
	}
}

func (b *Board) drawGrid(c render.Canvas) {
	c.StrokeRect(b.area, b.cfg.GridColor)
	for y := b.area.Top; y < b.area.Bottom(); y += b.cfg.GridStep {
		c.Line(
			render.Point{X: b.area.Left, Y: y},
			render.Point{X: b.area.Right(), Y: y},
			b.cfg.GridColor,
		)
	}
}

func (b *Board) relayout() {
	b.area = Layout(b.viewport, b.cfg, len(b.series))
	for _, s := range b.series {
		s.SetWindow(b.area.Width)
	}
	b.dirty = false
}

// Layout places the graph at the bottom left of viewport, leaving one
// label row per series plus one spare row below it.
func Layout(viewport render.Rect, cfg Config, series int) render.Rect {
	bottom := viewport.Bottom() - float64(series+1)*cfg.FontHeight
	return render.Rect{
		Left:   viewport.Left + cfg.Margin,
		Top:    bottom - cfg.GraphHeight,
		Width:  viewport.Width * cfg.WidthRatio,
		Height: cfg.GraphHeight,
	}
}

// Series returns the registered series in order.
func (b *Board) Series() []*Series {
	return append([]*Series(nil), b.series...)
}

// Samples returns the readings taken by the last Tick.
func (b *Board) Samples() []Sample {
	return append([]Sample(nil), b.samples...)
}

func (b *Board) Area() render.Rect {
	return b.area
}

// Find returns the series with the given display name.
func (b *Board) Find(name string) (*Series, error) {
	for _, s := range b.series {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, errors.New().WithData(errors.ErrInvalidArgument, name)
}
