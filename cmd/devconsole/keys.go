package main

import (
	"codeberg.org/mutker/devconsole/internal/console"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Toggle    key.Binding
	Submit    key.Binding
	Complete  key.Binding
	Older     key.Binding
	Newer     key.Binding
	Backspace key.Binding
	Quit      key.Binding
	// QuitHidden only applies while the console is closed, so the keys
	// stay typeable inside it.
	QuitHidden key.Binding
}

func newKeyMap(toggle string) keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(toggle), key.WithHelp(toggle, "toggle console")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Complete:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Older:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older")),
		Newer:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer")),
		Backspace:  key.NewBinding(key.WithKeys("backspace")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		QuitHidden: key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// handleKey forwards one key press to the console session. It reports
// whether the program should exit.
func handleKey(keys keyMap, s *console.Session, msg tea.KeyMsg) (quit bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return true
	case key.Matches(msg, keys.Toggle):
		s.ToggleVisibility()
		return false
	case !s.Visible():
		return key.Matches(msg, keys.QuitHidden)
	case key.Matches(msg, keys.Submit):
		s.Submit()
	case key.Matches(msg, keys.Complete):
		s.RequestAutoComplete()
	case key.Matches(msg, keys.Older):
		s.NavigateHistory(console.Older)
	case key.Matches(msg, keys.Newer):
		s.NavigateHistory(console.Newer)
	case key.Matches(msg, keys.Backspace):
		s.Backspace()
	case msg.Type == tea.KeySpace:
		s.TypeText(" ")
	case msg.Type == tea.KeyRunes:
		s.TypeText(string(msg.Runes))
	}
	return false
}
