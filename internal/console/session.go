// Package console implements the text console session: the input line, the
// bounded scrollback, history navigation and autocompletion, and the draw
// pass that lays all of it out over the host viewport.
package console

import (
	"strings"

	"codeberg.org/mutker/devconsole/internal/command"
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/history"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/render"
)

// Direction selects history navigation.
type Direction int

const (
	Older Direction = iota
	Newer
)

// Session is driven by the host: it forwards typed text and the four
// console events, then calls Draw once per tick. It is not safe for
// concurrent use.
type Session struct {
	cfg         Config
	dispatcher  *command.Dispatcher
	history     *history.History
	scrollback  *Scrollback
	suggestions suggestionCache
	input       string
	visible     bool
}

func NewSession(cfg Config, registry *command.Registry) (*Session, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, errFactory.New(ErrNilRegistry)
	}

	return &Session{
		cfg:         cfg,
		dispatcher:  command.NewDispatcher(registry),
		history:     history.New(cfg.HistoryLimit),
		scrollback:  NewScrollback(cfg.MaxLines),
		suggestions: suggestionCache{completer: command.NewCompleter(registry)},
	}, nil
}

// ToggleVisibility shows or hides the console and throws away whatever was
// being typed.
func (s *Session) ToggleVisibility() {
	s.visible = !s.visible
	s.input = ""

	logger.Debug().Bool("visible", s.visible).Msg("Console toggled")
}

// Submit records the input in history, echoes it to the scrollback and,
// unless blank, dispatches it and appends the result.
func (s *Session) Submit() {
	if !s.visible {
		return
	}

	line := s.input
	s.history.Push(line)

	if strings.TrimSpace(line) == "" {
		s.scrollback.Append(">")
	} else {
		s.scrollback.Append("> " + line)
		s.scrollback.Append(s.dispatcher.Dispatch(line))
	}

	s.input = ""
}

// RequestAutoComplete replaces non-blank input with its best completion.
func (s *Session) RequestAutoComplete() {
	if !s.visible || strings.TrimSpace(s.input) == "" {
		return
	}
	s.input = s.suggestions.completer.BestMatch(s.input)
}

// NavigateHistory loads an older or newer submitted line into the input.
func (s *Session) NavigateHistory(dir Direction) {
	if !s.visible {
		return
	}

	var (
		line string
		ok   bool
	)
	switch dir {
	case Older:
		line, ok = s.history.Up()
	case Newer:
		line, ok = s.history.Down()
	}
	if ok {
		s.input = line
	}
}

// TypeText appends text to the input. Line breaks are dropped; submission
// only happens through Submit.
func (s *Session) TypeText(text string) {
	if !s.visible {
		return
	}
	s.input += strings.NewReplacer("\n", "", "\r", "").Replace(text)
}

// Backspace removes the last rune of the input.
func (s *Session) Backspace() {
	if !s.visible || s.input == "" {
		return
	}
	r := []rune(s.input)
	s.input = string(r[:len(r)-1])
}

// Print appends a line to the scrollback outside of a submission.
func (s *Session) Print(line string) {
	s.scrollback.Append(line)
}

// ClearScrollback empties the display log.
func (s *Session) ClearScrollback() {
	s.scrollback.Clear()
}

// Update refreshes the suggestion list if the input changed since the
// previous call.
func (s *Session) Update() {
	s.suggestions.refresh(s.input)
}

// Draw emits the console for the current tick. Nothing is drawn while the
// console is hidden.
func (s *Session) Draw(c render.Canvas, viewport render.Rect) {
	if !s.visible {
		return
	}
	s.Update()

	lines := s.scrollback.lines
	suggestions := s.suggestions.items
	fh := s.cfg.FontHeight

	area := Layout(viewport, s.cfg.Margin, fh, len(lines), len(suggestions))
	c.FillRect(area, s.cfg.Background)

	for i, line := range lines {
		c.Text(line, area.Row(i+1, fh, fh), s.cfg.FontColor)
	}
	c.Text("> "+s.input+"_", area.Row(len(lines)+1, fh, fh), s.cfg.FontColor)
	for i, sug := range suggestions {
		c.Text(sug, area.Row(len(lines)+i+2, fh, fh), s.cfg.FontColor)
	}
}

// Layout returns the console rectangle: inset by margin on the left, top
// and right, and tall enough for the scrollback, the prompt, the
// suggestions and one blank row above and below.
func Layout(viewport render.Rect, margin, fontHeight float64, lines, suggestions int) render.Rect {
	return render.Rect{
		Left:   viewport.Left + margin,
		Top:    viewport.Top + margin,
		Width:  max(viewport.Width-2*margin, 0),
		Height: fontHeight * float64(lines+suggestions+3),
	}
}

func (s *Session) Visible() bool {
	return s.visible
}

func (s *Session) Input() string {
	return s.input
}

// Suggestions returns the cached completions as of the last Update.
func (s *Session) Suggestions() []string {
	return append([]string(nil), s.suggestions.items...)
}

func (s *Session) Scrollback() []string {
	return s.scrollback.Lines()
}

// HistoryLen returns the number of submitted lines, blank ones included.
func (s *Session) HistoryLen() int {
	return s.history.Len()
}
