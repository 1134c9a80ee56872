// Package history keeps the lines submitted to the console and a cursor for
// stepping through them with up/down navigation.
package history

// History stores lines most-recent-first. The cursor is 0 when not
// navigating, otherwise the 1-based position of the selected line counted
// from the most recent one.
type History struct {
	lines  []string
	cursor int
	limit  int
}

// New returns an empty history. A limit of 0 keeps every line; a positive
// limit drops the oldest line once exceeded.
func New(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Push records line as the most recent entry and stops navigation.
func (h *History) Push(line string) {
	h.lines = append(h.lines, "")
	copy(h.lines[1:], h.lines)
	h.lines[0] = line

	if h.limit > 0 && len(h.lines) > h.limit {
		h.lines = h.lines[:h.limit]
	}
	h.cursor = 0
}

// Up selects the next older line. It reports false, leaving the cursor
// where it is, once the oldest line is selected.
func (h *History) Up() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	return h.lines[h.cursor-1], true
}

// Down selects the next newer line. The cursor never goes back to 0 this
// way: with the newest line selected Down is a no-op and the selection
// stays, so navigation cannot return to an empty prompt. Only Push resets.
func (h *History) Down() (string, bool) {
	if h.cursor <= 1 {
		return "", false
	}
	h.cursor--
	return h.lines[h.cursor-1], true
}

// Cursor returns the navigation position, 0 when not navigating.
func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) Len() int {
	return len(h.lines)
}

// Lines returns a copy of the stored lines, most recent first.
func (h *History) Lines() []string {
	return append([]string(nil), h.lines...)
}
