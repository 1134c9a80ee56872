package console

import (
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/render"
)

const (
	defaultMargin     = 1
	defaultFontHeight = 1
	defaultMaxLines   = 20
)

var (
	defaultBackground = render.Color{R: 0, G: 167, B: 255, A: 128}
	defaultFontColor  = render.Color{R: 200, G: 220, B: 255, A: 255}
)

type Config struct {
	// Margin insets the console from the viewport edges.
	Margin     float64
	FontHeight float64
	Background render.Color
	FontColor  render.Color
	// MaxLines bounds the scrollback.
	MaxLines int
	// HistoryLimit bounds submitted-line history; 0 keeps everything.
	HistoryLimit int
}

func DefaultConfig() Config {
	return Config{
		Margin:     defaultMargin,
		FontHeight: defaultFontHeight,
		Background: defaultBackground,
		FontColor:  defaultFontColor,
		MaxLines:   defaultMaxLines,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	switch {
	case c.MaxLines < 1:
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value int
		}{"max_lines", c.MaxLines})
	case c.FontHeight <= 0:
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value float64
		}{"font_height", c.FontHeight})
	case c.Margin < 0:
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value float64
		}{"margin", c.Margin})
	case c.HistoryLimit < 0:
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value int
		}{"history_limit", c.HistoryLimit})
	}
	return nil
}
