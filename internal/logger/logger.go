package logger

import (
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"codeberg.org/mutker/devconsole/internal/errors"
	"github.com/rs/zerolog"
)

// Until Init is called nothing is written.
var log = zerolog.Nop()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// ParseLevel converts a configured level name into a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return InfoLevel, errors.New().WithData(errors.ErrInvalidLogLevel, level)
}

// Init initializes the logger to write to out at the given level.
func Init(level LogLevel, out io.Writer, isService bool) {
	if out == nil {
		out = os.Stdout
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    out != os.Stdout,
	}

	if isService {
		output.TimeFormat = ""
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()
	SetLogLevel(level)
}

// InitJSON initializes a plain JSON logger, used where the output is parsed.
func InitJSON(level LogLevel, out io.Writer) {
	log = zerolog.New(out).With().Timestamp().Logger()
	SetLogLevel(level)
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return syscall.Getpgrp() == syscall.Getpid()
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{coded(log.Error(), err)}
}

func coded(e *zerolog.Event, err errors.Error) *zerolog.Event {
	return e.
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())
}

// scoped reads the package-level logger on every call, so loggers handed out
// before Init write once Init has run.
type scoped struct {
	component string
}

// New returns a Logger backed by the package-level logger.
func New() Logger {
	return scoped{}
}

func (l scoped) With(component string) Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return scoped{component: component}
}

func (l scoped) event(e *zerolog.Event) *LogEvent {
	if l.component != "" {
		e = e.Str("component", l.component)
	}
	return &LogEvent{e}
}

func (l scoped) Debug() *LogEvent { return l.event(log.Debug()) }
func (l scoped) Info() *LogEvent  { return l.event(log.Info()) }
func (l scoped) Warn() *LogEvent  { return l.event(log.Warn()) }
func (l scoped) Error() *LogEvent { return l.event(log.Error()) }

func (l scoped) ErrorWithCode(err errors.Error) *LogEvent {
	return l.event(coded(log.Error(), err))
}
