package console

import "codeberg.org/mutker/devconsole/internal/command"

// suggestionCache holds completer output for the last input it saw and is
// recomputed only when the input changes.
type suggestionCache struct {
	completer *command.Completer
	lastInput string
	items     []string
}

func (c *suggestionCache) refresh(input string) {
	if input == c.lastInput {
		return
	}

	if input == "" {
		c.items = c.items[:0]
	} else {
		c.items = c.completer.Suggestions(input)
	}
	c.lastInput = input
}
