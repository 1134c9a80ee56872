package logger

import "codeberg.org/mutker/devconsole/internal/errors"

// Logger is what the recorder and GPU reader log through. With tags every
// event with a "component" field; nested components are joined by dots.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	ErrorWithCode(err errors.Error) *LogEvent
	With(component string) Logger
}
