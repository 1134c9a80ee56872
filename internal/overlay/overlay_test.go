package overlay_test

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/mutker/devconsole/internal/command"
	"codeberg.org/mutker/devconsole/internal/overlay"
	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/source"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	ticks   [][]telemetry.Sample
	err     error
	flushed int
	closed  bool
}

func (r *fakeRecorder) Record(_ context.Context, samples []telemetry.Sample) error {
	if r.err != nil {
		return r.err
	}
	r.ticks = append(r.ticks, samples)
	return nil
}

func (r *fakeRecorder) Flush() error  { r.flushed++; return nil }
func (r *fakeRecorder) Close() error  { r.closed = true; return nil }
func (r *fakeRecorder) RunID() string { return "run-1" }

var viewport = render.Rect{Width: 80, Height: 40}

func newOverlay(t *testing.T, opts ...overlay.Option) *overlay.Overlay {
	t.Helper()

	o, err := overlay.New(overlay.DefaultConfig(), opts...)
	require.NoError(t, err)
	o.Resize(viewport)
	o.Session().ToggleVisibility()
	return o
}

func submit(o *overlay.Overlay, line string) string {
	s := o.Session()
	s.TypeText(line)
	s.Submit()
	lines := s.Scrollback()
	return lines[len(lines)-1]
}

func counter() func() float64 {
	n := 0.0
	return func() float64 {
		n++
		return n
	}
}

func TestListBuiltin(t *testing.T) {
	o := newOverlay(t)
	require.NoError(t, o.RegisterCommand("add", []command.ParamType{command.Int32, command.Int32},
		func(args []any) (any, error) { return args[0].(int32) + args[1].(int32), nil }))

	assert.Equal(t,
		"=> Result: Render.GraphOverlayEnable bool, add int32 int32, clear, history, list",
		submit(o, "list"))
}

func TestGraphOverlayEnable(t *testing.T) {
	o := newOverlay(t)
	src := counter()
	require.NoError(t, o.AddSeries(source.Func(source.Meta{Name: "n"}, src)))

	require.NoError(t, o.Tick(context.Background(), 0.1))
	s, err := o.Board().Find("n")
	require.NoError(t, err)
	assert.Zero(t, s.Len(), "disabled graph is not ticked")

	assert.Equal(t, "=> Result: true", submit(o, "render.graphoverlayenable true"))
	assert.True(t, o.GraphEnabled())

	require.NoError(t, o.Tick(context.Background(), 0.1))
	require.NoError(t, o.Tick(context.Background(), 0.1))
	assert.Equal(t, 2, s.Len())

	assert.Equal(t, "=> Result: false", submit(o, "Render.GraphOverlayEnable false"))
	require.NoError(t, o.Tick(context.Background(), 0.1))
	assert.Equal(t, 2, s.Len())

	assert.Equal(t,
		"=> Error: Can't process parameter no. 1: \"maybe\" is not a valid bool (invalid syntax)",
		submit(o, "Render.GraphOverlayEnable maybe"))
}

func TestClearAndHistoryBuiltins(t *testing.T) {
	o := newOverlay(t)

	submit(o, "list")
	submit(o, "")
	assert.Equal(t, "=> Result: 3", submit(o, "history"))

	assert.Equal(t, "=> Command executed", submit(o, "clear"))
	assert.Equal(t, []string{"=> Command executed"}, o.Session().Scrollback())
}

func TestTickRecordsSamples(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := overlay.DefaultConfig()
	cfg.GraphEnabled = true

	o, err := overlay.New(cfg, overlay.WithRecorder(rec))
	require.NoError(t, err)
	o.Resize(viewport)

	require.NoError(t, o.AddSeries(source.Func(source.Meta{Name: "a"}, counter())))
	require.NoError(t, o.AddSeries(source.Func(source.Meta{Name: "b"}, func() float64 { return 7 })))

	require.NoError(t, o.Tick(context.Background(), 0.05))
	require.NoError(t, o.Tick(context.Background(), 0.05))

	require.Len(t, rec.ticks, 2)
	assert.Equal(t, []telemetry.Sample{{Series: "a", Value: 2}, {Series: "b", Value: 7}}, rec.ticks[1])

	rec.err = errors.New("disk full")
	assert.Error(t, o.Tick(context.Background(), 0.05))

	o.Session().ToggleVisibility()
	assert.Equal(t, "=> Result: run-1", submit(o, "recorder.run"))
	assert.Equal(t, 1, rec.flushed)

	require.NoError(t, o.Close())
	assert.True(t, rec.closed)
}

func TestDrawOrder(t *testing.T) {
	cfg := overlay.DefaultConfig()
	cfg.GraphEnabled = true
	o, err := overlay.New(cfg)
	require.NoError(t, err)
	o.Resize(viewport)
	require.NoError(t, o.AddSeries(source.Func(source.Meta{Name: "a"}, counter())))
	require.NoError(t, o.Tick(context.Background(), 0.05))

	var ops render.OpList

	// hidden console: graph only
	o.Draw(&ops)
	assert.Equal(t, 0, ops.Count(render.OpFillRect))
	assert.Equal(t, 1, ops.Count(render.OpStrokeRect))

	ops.Reset()
	o.Session().ToggleVisibility()
	o.Draw(&ops)
	require.NotEmpty(t, ops.Ops)
	assert.Equal(t, render.OpStrokeRect, ops.Ops[0].Kind, "graph first")
	texts := ops.Texts()
	assert.Equal(t, "> _", texts[len(texts)-1], "console prompt last")
}

func TestDuplicateCommandFails(t *testing.T) {
	o := newOverlay(t)
	err := o.RegisterCommand("LIST", nil, func([]any) (any, error) { return nil, nil })
	assert.Error(t, err)
}
