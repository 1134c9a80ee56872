package main

import (
	"fmt"
	"math"
	"strings"

	"codeberg.org/mutker/devconsole/internal/render"
	"github.com/charmbracelet/lipgloss"
)

// screenBackground is what translucent fills blend against.
var screenBackground = render.Color{A: 255}

type cell struct {
	ch rune
	fg render.Color
	bg render.Color
}

// cellCanvas rasterizes draw instructions onto a terminal grid where one
// host unit is one cell.
type cellCanvas struct {
	width, height int
	cells         []cell
}

func newCellCanvas(width, height int) *cellCanvas {
	c := &cellCanvas{}
	c.Reset(width, height)
	return c
}

func (c *cellCanvas) Reset(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	n := c.width * c.height
	if cap(c.cells) < n {
		c.cells = make([]cell, n)
	}
	c.cells = c.cells[:n]
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', bg: screenBackground}
	}
}

func (c *cellCanvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

func (c *cellCanvas) FillRect(r render.Rect, col render.Color) {
	x0, y0, x1, y1 := span(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p := c.at(x, y); p != nil {
				p.bg = blend(p.bg, col)
			}
		}
	}
}

func (c *cellCanvas) StrokeRect(r render.Rect, col render.Color) {
	x0, y0, x1, y1 := span(r)
	if x1-x0 < 1 || y1-y0 < 1 {
		return
	}
	x1, y1 = x1-1, y1-1

	for x := x0 + 1; x < x1; x++ {
		c.plot(x, y0, '─', col)
		c.plot(x, y1, '─', col)
	}
	for y := y0 + 1; y < y1; y++ {
		c.plot(x0, y, '│', col)
		c.plot(x1, y, '│', col)
	}
	c.plot(x0, y0, '┌', col)
	c.plot(x1, y0, '┐', col)
	c.plot(x0, y1, '└', col)
	c.plot(x1, y1, '┘', col)
}

// Line draws a Bresenham line. The glyph follows the overall direction.
// Segments with a non-finite end are skipped; the rest are clipped to the
// grid before rasterizing.
func (c *cellCanvas) Line(from, to render.Point, col render.Color) {
	for _, v := range []float64{from.X, from.Y, to.X, to.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}

	ch := glyph(to.X-from.X, to.Y-from.Y)

	ax, ay, bx, by, ok := c.clip(from.X, from.Y, to.X, to.Y)
	if !ok {
		return
	}
	x0, y0 := round(ax), round(ay)
	x1, y1 := round(bx), round(by)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)

	e := dx + dy
	for {
		c.plot(x0, y0, ch, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func glyph(dx, dy float64) rune {
	dx, dy = math.Round(dx), math.Round(dy)
	switch {
	case dx == 0 && dy == 0:
		return '•'
	case dx == 0:
		return '│'
	case dy == 0:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╲'
	}
	return '╱'
}

const (
	outLeft = 1 << iota
	outRight
	outTop
	outBottom
)

// clip is Cohen-Sutherland against the cells' rounding bounds, so clipped
// ends always round to a cell inside the grid.
func (c *cellCanvas) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	if c.width == 0 || c.height == 0 {
		return 0, 0, 0, 0, false
	}
	const eps = 1e-9
	minX, minY := -0.5, -0.5
	maxX, maxY := float64(c.width)-0.5-eps, float64(c.height)-0.5-eps

	code := func(x, y float64) int {
		k := 0
		switch {
		case x < minX:
			k |= outLeft
		case x > maxX:
			k |= outRight
		}
		switch {
		case y < minY:
			k |= outTop
		case y > maxY:
			k |= outBottom
		}
		return k
	}

	k0, k1 := code(x0, y0), code(x1, y1)
	// each pass settles one edge; four suffice unless rounding drifts
	for pass := 0; pass < 8; pass++ {
		switch {
		case k0|k1 == 0:
			return x0, y0, x1, y1, true
		case k0&k1 != 0:
			return 0, 0, 0, 0, false
		}

		k := max(k0, k1)
		var x, y float64
		switch {
		case k&outBottom != 0:
			x, y = x0+(x1-x0)*(maxY-y0)/(y1-y0), maxY
		case k&outTop != 0:
			x, y = x0+(x1-x0)*(minY-y0)/(y1-y0), minY
		case k&outRight != 0:
			x, y = maxX, y0+(y1-y0)*(maxX-x0)/(x1-x0)
		default:
			x, y = minX, y0+(y1-y0)*(minX-x0)/(x1-x0)
		}

		if k == k0 {
			x0, y0, k0 = x, y, code(x, y)
		} else {
			x1, y1, k1 = x, y, code(x, y)
		}
	}
	return 0, 0, 0, 0, false
}

// Text writes s on the first row of at, one rune per cell, clipped to the
// rectangle's width.
func (c *cellCanvas) Text(s string, at render.Rect, col render.Color) {
	x0, y, x1, _ := span(at)
	x := x0
	for _, r := range s {
		if x >= x1 {
			return
		}
		c.plot(x, y, r, col)
		x++
	}
}

func (c *cellCanvas) plot(x, y int, ch rune, col render.Color) {
	if p := c.at(x, y); p != nil {
		p.ch = ch
		p.fg = col
	}
}

// Render returns the grid as styled lines, one lipgloss style per run of
// cells sharing colors.
func (c *cellCanvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].fg == row[start].fg && row[end].bg == row[start].bg {
				end++
			}

			var run strings.Builder
			for _, p := range row[start:end] {
				run.WriteRune(p.ch)
			}
			b.WriteString(style(row[start]).Render(run.String()))
			start = end
		}
	}
	return b.String()
}

// Row returns the plain text of row y, for tests and logs.
func (c *cellCanvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, p := range c.cells[y*c.width : (y+1)*c.width] {
		b.WriteRune(p.ch)
	}
	return b.String()
}

func style(p cell) lipgloss.Style {
	s := lipgloss.NewStyle().Background(hex(p.bg))
	if p.fg.A > 0 {
		s = s.Foreground(hex(p.fg))
	}
	return s
}

func hex(c render.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// blend composites src over an opaque dst.
func blend(dst, src render.Color) render.Color {
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return render.Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

func span(r render.Rect) (x0, y0, x1, y1 int) {
	return round(r.Left), round(r.Top), round(r.Right()), round(r.Bottom())
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
