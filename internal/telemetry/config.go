package telemetry

import (
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/render"
)

const (
	defaultScrollRate  = 4
	defaultMargin      = 1
	defaultFontHeight  = 1
	defaultGraphHeight = 10
	defaultWidthRatio  = 0.25
	defaultGridStep    = 2
)

var defaultGridColor = render.Color{R: 0, G: 128, B: 64, A: 255}

type Config struct {
	// ScrollRate is how far points move left per second, in host units.
	ScrollRate  float64
	Margin      float64
	FontHeight  float64
	GraphHeight float64
	// WidthRatio is the graph width as a fraction of the viewport width.
	WidthRatio float64
	GridStep   float64
	GridColor  render.Color
}

func DefaultConfig() Config {
	return Config{
		ScrollRate:  defaultScrollRate,
		Margin:      defaultMargin,
		FontHeight:  defaultFontHeight,
		GraphHeight: defaultGraphHeight,
		WidthRatio:  defaultWidthRatio,
		GridStep:    defaultGridStep,
		GridColor:   defaultGridColor,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	invalid := func(field string, value float64) error {
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value float64
		}{field, value})
	}

	switch {
	case c.ScrollRate <= 0:
		return invalid("scroll_rate", c.ScrollRate)
	case c.FontHeight <= 0:
		return invalid("font_height", c.FontHeight)
	case c.GraphHeight <= 0:
		return invalid("graph_height", c.GraphHeight)
	case c.WidthRatio <= 0 || c.WidthRatio > 1:
		return invalid("graph_width_ratio", c.WidthRatio)
	case c.GridStep <= 0:
		return invalid("grid_step", c.GridStep)
	case c.Margin < 0:
		return invalid("margin", c.Margin)
	}
	return nil
}
