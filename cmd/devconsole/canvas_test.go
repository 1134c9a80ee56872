package main

import (
	"math"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/devconsole/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasText(t *testing.T) {
	c := newCellCanvas(10, 2)

	c.Text("hello world", render.Rect{Left: 2, Top: 1, Width: 5, Height: 1}, render.White)
	assert.Equal(t, "          ", c.Row(0))
	assert.Equal(t, "  hello   ", c.Row(1))

	// clipped at the grid edge
	c.Text("abcdef", render.Rect{Left: 7, Top: 0, Width: 10, Height: 1}, render.White)
	assert.Equal(t, "       abc", c.Row(0))
}

func TestCanvasFillBlends(t *testing.T) {
	c := newCellCanvas(4, 4)

	c.FillRect(render.Rect{Left: 1, Top: 1, Width: 2, Height: 2}, render.Color{R: 200, G: 100, B: 0, A: 128})

	assert.Equal(t, screenBackground, c.at(0, 0).bg)
	assert.Equal(t, render.Color{R: 100, G: 50, B: 0, A: 255}, c.at(1, 1).bg)
	assert.Equal(t, render.Color{R: 100, G: 50, B: 0, A: 255}, c.at(2, 2).bg)
	assert.Equal(t, screenBackground, c.at(3, 3).bg)
}

func TestCanvasStrokeRect(t *testing.T) {
	c := newCellCanvas(5, 3)

	c.StrokeRect(render.Rect{Width: 5, Height: 3}, render.Green)
	assert.Equal(t, "┌───┐", c.Row(0))
	assert.Equal(t, "│   │", c.Row(1))
	assert.Equal(t, "└───┘", c.Row(2))
}

func TestCanvasLine(t *testing.T) {
	c := newCellCanvas(5, 5)

	c.Line(render.Point{X: 0, Y: 2}, render.Point{X: 4, Y: 2}, render.Red)
	assert.Equal(t, "─────", c.Row(2))

	c.Reset(5, 5)
	c.Line(render.Point{X: 0, Y: 4}, render.Point{X: 4, Y: 0}, render.Red)
	assert.Equal(t, "    ╱", c.Row(0))
	assert.Equal(t, "╱    ", c.Row(4))

	c.Reset(5, 5)
	c.Line(render.Point{X: 0, Y: 0}, render.Point{X: 4, Y: 4}, render.Red)
	assert.Equal(t, "  ╲  ", c.Row(2))

	// off-grid parts are dropped
	c.Reset(5, 5)
	c.Line(render.Point{X: -3, Y: 1}, render.Point{X: 2, Y: 1}, render.Red)
	assert.Equal(t, "───  ", c.Row(1))
}

func TestCanvasLineRejectsNonFiniteAndFarPoints(t *testing.T) {
	c := newCellCanvas(20, 10)

	draw := func(from, to render.Point) {
		t.Helper()
		done := make(chan struct{})
		go func() {
			defer close(done)
			c.Line(from, to, render.Red)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("line from %v to %v did not finish", from, to)
		}
	}

	draw(render.Point{X: 10, Y: 5}, render.Point{X: 11, Y: math.NaN()})
	draw(render.Point{X: math.Inf(-1), Y: 5}, render.Point{X: 11, Y: 5})
	for y := 0; y < 10; y++ {
		assert.Equal(t, strings.Repeat(" ", 20), c.Row(y))
	}

	draw(render.Point{X: 10, Y: 5}, render.Point{X: 10, Y: -1e12})
	for y := 0; y <= 5; y++ {
		assert.Equal(t, "│", string([]rune(c.Row(y))[10]), "row %d", y)
	}
	assert.Equal(t, " ", string([]rune(c.Row(6))[10]))

	c.Reset(20, 10)
	draw(render.Point{X: -1e12, Y: 2}, render.Point{X: 1e12, Y: 2})
	assert.Equal(t, strings.Repeat("─", 20), c.Row(2))

	c.Reset(20, 10)
	draw(render.Point{X: 30, Y: 1e12}, render.Point{X: 40, Y: -1e12})
	for y := 0; y < 10; y++ {
		assert.Equal(t, strings.Repeat(" ", 20), c.Row(y))
	}
}

func TestCanvasClipKeepsEndsInsideGrid(t *testing.T) {
	c := newCellCanvas(5, 5)

	x0, y0, x1, y1, ok := c.clip(-10, 2, 10, 2)
	require.True(t, ok)
	assert.Equal(t, 0, round(x0))
	assert.Equal(t, 2, round(y0))
	assert.Equal(t, 4, round(x1))
	assert.Equal(t, 2, round(y1))

	_, _, _, _, ok = c.clip(-10, -10, -1, -1)
	assert.False(t, ok)

	_, _, _, _, ok = newCellCanvas(0, 0).clip(0, 0, 1, 1)
	assert.False(t, ok)
}

func TestCanvasRender(t *testing.T) {
	c := newCellCanvas(6, 2)
	c.Text("ab", render.Rect{Width: 6, Height: 1}, render.White)

	out := c.Render()
	assert.Len(t, strings.Split(out, "\n"), 2)
	assert.Contains(t, out, "ab")
}
