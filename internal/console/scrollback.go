package console

// Scrollback is the bounded display log. Appending to a full log drops the
// oldest line.
type Scrollback struct {
	lines []string
	max   int
}

func NewScrollback(maxLines int) *Scrollback {
	if maxLines < 1 {
		maxLines = 1
	}
	return &Scrollback{
		lines: make([]string, 0, maxLines),
		max:   maxLines,
	}
}

func (s *Scrollback) Append(line string) {
	if len(s.lines) >= s.max {
		copy(s.lines, s.lines[1:])
		s.lines = s.lines[:len(s.lines)-1]
	}
	s.lines = append(s.lines, line)
}

// Lines returns a copy, oldest first.
func (s *Scrollback) Lines() []string {
	return append([]string(nil), s.lines...)
}

func (s *Scrollback) Len() int {
	return len(s.lines)
}

func (s *Scrollback) Max() int {
	return s.max
}

func (s *Scrollback) Clear() {
	s.lines = s.lines[:0]
}
