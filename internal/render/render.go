// Package render defines the draw-instruction boundary between the console
// and telemetry engines and whatever backend the host uses to put pixels or
// cells on screen. Coordinates are host units; Y grows downwards.
package render

import "fmt"

type Color struct {
	R, G, B, A uint8
}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

type Point struct {
	X, Y float64
}

type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Row returns the rectangle of text line n (0-based) inside r, inset by
// indent on the left.
func (r Rect) Row(n int, indent, lineHeight float64) Rect {
	return Rect{
		Left:   r.Left + indent,
		Top:    r.Top + lineHeight*float64(n),
		Width:  r.Width,
		Height: lineHeight,
	}
}

// Canvas receives draw instructions. Implementations must not retain the
// strings or rectangles beyond the call.
type Canvas interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color)
	Line(from, to Point, c Color)
	Text(s string, at Rect, c Color)
}

// Common colors
var (
	Red   = Color{R: 255, A: 255}
	Green = Color{G: 255, A: 255}
	Blue  = Color{B: 255, A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
)
