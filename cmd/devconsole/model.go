package main

import (
	"context"
	"time"

	"codeberg.org/mutker/devconsole/internal/overlay"
	"codeberg.org/mutker/devconsole/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

var hintColor = render.Color{R: 128, G: 128, B: 128, A: 255}

type model struct {
	ctx      context.Context
	overlay  *overlay.Overlay
	keys     keyMap
	interval time.Duration
	canvas   *cellCanvas
	last     time.Time
	quitting bool
}

func newModel(ctx context.Context, ov *overlay.Overlay, keys keyMap, interval time.Duration) *model {
	return &model{
		ctx:      ctx,
		overlay:  ov,
		keys:     keys,
		interval: interval,
		canvas:   newCellCanvas(0, 0),
	}
}

func tickEvery(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tickEvery(m.interval)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Reset(msg.Width, msg.Height)
		m.overlay.Resize(render.Rect{Width: float64(msg.Width), Height: float64(msg.Height)})

	case tea.KeyMsg:
		if handleKey(m.keys, m.overlay.Session(), msg) {
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		now := time.Time(msg)
		dt := m.interval.Seconds()
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now

		// Failures are logged by the overlay; the host keeps running.
		_ = m.overlay.Tick(m.ctx, dt)

		if m.quitting {
			return m, tea.Quit
		}
		return m, tickEvery(m.interval)
	}

	return m, nil
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	m.canvas.Reset(m.canvas.width, m.canvas.height)
	if !m.overlay.Session().Visible() {
		hint := m.keys.Toggle.Help().Key + " console  " + m.keys.QuitHidden.Help().Key + " quit"
		m.canvas.Text(hint, render.Rect{
			Left:  float64(m.canvas.width - lipgloss.Width(hint) - 1),
			Top:   float64(m.canvas.height - 1),
			Width: float64(lipgloss.Width(hint)),
		}, hintColor)
	}
	m.overlay.Draw(m.canvas)

	return m.canvas.Render()
}

// quit ends the program from a console command.
func (m *model) quit() {
	m.quitting = true
}
