package render

type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpLine
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill"
	case OpStrokeRect:
		return "stroke"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded draw instruction.
type Op struct {
	Kind  OpKind
	Rect  Rect
	From  Point
	To    Point
	Text  string
	Color Color
}

// OpList is a Canvas that records instructions in call order. Hosts that
// render on another goroutine or batch per frame replay it with Replay.
type OpList struct {
	Ops []Op
}

func (l *OpList) FillRect(r Rect, c Color) {
	l.Ops = append(l.Ops, Op{Kind: OpFillRect, Rect: r, Color: c})
}

func (l *OpList) StrokeRect(r Rect, c Color) {
	l.Ops = append(l.Ops, Op{Kind: OpStrokeRect, Rect: r, Color: c})
}

func (l *OpList) Line(from, to Point, c Color) {
	l.Ops = append(l.Ops, Op{Kind: OpLine, From: from, To: to, Color: c})
}

func (l *OpList) Text(s string, at Rect, c Color) {
	l.Ops = append(l.Ops, Op{Kind: OpText, Rect: at, Text: s, Color: c})
}

func (l *OpList) Reset() {
	l.Ops = l.Ops[:0]
}

// Texts returns the text of every OpText instruction in order.
func (l *OpList) Texts() []string {
	var out []string
	for _, op := range l.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Count returns how many instructions of kind were recorded.
func (l *OpList) Count(kind OpKind) int {
	n := 0
	for _, op := range l.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Replay sends every recorded instruction to c.
func (l *OpList) Replay(c Canvas) {
	for _, op := range l.Ops {
		switch op.Kind {
		case OpFillRect:
			c.FillRect(op.Rect, op.Color)
		case OpStrokeRect:
			c.StrokeRect(op.Rect, op.Color)
		case OpLine:
			c.Line(op.From, op.To, op.Color)
		case OpText:
			c.Text(op.Text, op.Rect, op.Color)
		}
	}
}
