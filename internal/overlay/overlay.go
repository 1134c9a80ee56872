// Package overlay assembles the console session and the telemetry board
// into the single object a host drives once per tick.
package overlay

import (
	"context"
	"strings"

	"codeberg.org/mutker/devconsole/internal/command"
	"codeberg.org/mutker/devconsole/internal/console"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/recorder"
	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
)

const (
	CmdList        = "list"
	CmdGraphEnable = "Render.GraphOverlayEnable"
	CmdClear       = "clear"
	CmdHistory     = "history"
	CmdRecorderRun = "recorder.run"
)

type Option func(*Overlay)

// WithRecorder stores every tick's samples through rec. The overlay owns
// rec and closes it in Close.
func WithRecorder(rec recorder.Recorder) Option {
	return func(o *Overlay) {
		o.recorder = rec
	}
}

// Overlay is not safe for concurrent use; the host calls everything from
// its update loop.
type Overlay struct {
	registry     *command.Registry
	session      *console.Session
	board        *telemetry.Board
	recorder     recorder.Recorder
	graphEnabled bool
	viewport     render.Rect
	recordFailed bool
}

func New(cfg Config, opts ...Option) (*Overlay, error) {
	registry := command.NewRegistry()

	session, err := console.NewSession(cfg.Console, registry)
	if err != nil {
		return nil, err
	}

	board, err := telemetry.NewBoard(cfg.Board)
	if err != nil {
		return nil, err
	}

	o := &Overlay{
		registry:     registry,
		session:      session,
		board:        board,
		graphEnabled: cfg.GraphEnabled,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.registerBuiltins(); err != nil {
		return nil, err
	}

	return o, nil
}

type builtin struct {
	name   string
	params []command.ParamType
	invoke command.Invoker
}

func (o *Overlay) registerBuiltins() error {
	builtins := []builtin{
		{CmdList, nil, func([]any) (any, error) {
			return strings.Join(command.NewCompleter(o.registry).Suggestions(""), ", "), nil
		}},
		{CmdGraphEnable, []command.ParamType{command.Bool}, func(args []any) (any, error) {
			o.SetGraphEnabled(args[0].(bool))
			return o.graphEnabled, nil
		}},
		{CmdClear, nil, func([]any) (any, error) {
			o.session.ClearScrollback()
			return nil, nil
		}},
		{CmdHistory, nil, func([]any) (any, error) {
			return o.session.HistoryLen(), nil
		}},
	}

	if o.recorder != nil && o.recorder.RunID() != "" {
		builtins = append(builtins, builtin{CmdRecorderRun, nil, func([]any) (any, error) {
			if err := o.recorder.Flush(); err != nil {
				return nil, err
			}
			return o.recorder.RunID(), nil
		}})
	}

	for _, b := range builtins {
		if err := o.registry.Register(b.name, b.params, b.invoke); err != nil {
			return err
		}
	}

	return nil
}

// RegisterCommand adds an application command to the console.
func (o *Overlay) RegisterCommand(name string, params []command.ParamType, invoke command.Invoker) error {
	return o.registry.Register(name, params, invoke)
}

// AddSeries graphs src from the next tick on.
func (o *Overlay) AddSeries(src telemetry.Source) error {
	_, err := o.board.Add(src)
	return err
}

func (o *Overlay) Registry() *command.Registry {
	return o.registry
}

func (o *Overlay) Session() *console.Session {
	return o.session
}

func (o *Overlay) Board() *telemetry.Board {
	return o.board
}

func (o *Overlay) GraphEnabled() bool {
	return o.graphEnabled
}

// SetGraphEnabled shows or hides the graph. A hidden graph is not ticked,
// so it resumes where it stopped.
func (o *Overlay) SetGraphEnabled(enabled bool) {
	if enabled != o.graphEnabled {
		logger.Debug().Bool("enabled", enabled).Msg("Graph overlay toggled")
	}
	o.graphEnabled = enabled
}

// Resize sets the host viewport used by the next Tick and Draw.
func (o *Overlay) Resize(viewport render.Rect) {
	o.viewport = viewport
	o.board.Resize(viewport)
}

// Tick advances the overlay by dt seconds. The board samples its sources
// only while the graph is enabled; those samples are then recorded.
func (o *Overlay) Tick(ctx context.Context, dt float64) error {
	o.session.Update()

	if !o.graphEnabled {
		return nil
	}

	o.board.Tick(dt)

	if o.recorder == nil {
		return nil
	}
	if err := o.recorder.Record(ctx, o.board.Samples()); err != nil {
		if !o.recordFailed {
			logger.Error().Err(err).Msg("Failed to record telemetry samples")
		}
		o.recordFailed = true
		return err
	}
	o.recordFailed = false

	return nil
}

// Draw emits the graph, when enabled, and then the console on top of it.
func (o *Overlay) Draw(c render.Canvas) {
	if o.graphEnabled && len(o.board.Series()) > 0 {
		o.board.Draw(c)
	}
	o.session.Draw(c, o.viewport)
}

// Close flushes and closes the recorder, if any.
func (o *Overlay) Close() error {
	if o.recorder == nil {
		return nil
	}
	return o.recorder.Close()
}
