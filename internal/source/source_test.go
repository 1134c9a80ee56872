package source

import (
	"testing"
	"time"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestFrameRate(t *testing.T) {
	clock := newClock()
	fps := NewFrameRate(clock.now)

	assert.Equal(t, "FPS", fps.DisplayName())
	assert.True(t, fps.ScaleMode().Auto)

	for i := 0; i < 30; i++ {
		assert.Zero(t, fps.Sample(), "no reading before a full second")
		clock.advance(time.Second / 30)
	}
	// 31 frames over 31/30 s
	clock.advance(time.Second / 30)
	assert.InDelta(t, 30.0, fps.Sample(), 0.01)
}

func TestThrottle(t *testing.T) {
	clock := newClock()
	th := newThrottle(time.Second, clock.now)

	assert.True(t, th.due())
	clock.advance(500 * time.Millisecond)
	assert.False(t, th.due())
	clock.advance(500 * time.Millisecond)
	assert.True(t, th.due())
}

func timesSeq(stats ...cpu.TimesStat) func() (cpu.TimesStat, error) {
	i := 0
	return func() (cpu.TimesStat, error) {
		ts := stats[min(i, len(stats)-1)]
		i++
		return ts, nil
	}
}

func TestCPULoad(t *testing.T) {
	clock := newClock()
	c := newCPU(timesSeq(
		cpu.TimesStat{User: 100, System: 100, Idle: 700, Iowait: 100},
		cpu.TimesStat{User: 150, System: 150, Idle: 750, Iowait: 150},
	), clock.now)

	assert.Zero(t, c.Sample(), "first reading has no delta")

	clock.advance(200 * time.Millisecond)
	assert.Zero(t, c.Sample(), "throttled")

	clock.advance(time.Second)
	// busy +100 of total +200
	assert.InDelta(t, 50.0, c.Sample(), 1e-9)
	assert.Equal(t, telemetry.FixedScale(0, 100), c.ScaleMode())
	assert.Equal(t, render.Green, c.Color())
}

func TestCPULoadWithIowaitGoingBackwards(t *testing.T) {
	clock := newClock()
	c := newCPU(timesSeq(
		cpu.TimesStat{User: 100, System: 100, Idle: 700, Iowait: 100},
		cpu.TimesStat{User: 200, System: 200, Idle: 700, Iowait: 50},
	), clock.now)

	c.Sample()
	clock.advance(time.Second)

	load := c.Sample()
	assert.GreaterOrEqual(t, load, 0.0)
	assert.LessOrEqual(t, load, 100.0)
	assert.InDelta(t, 100.0, load, 1e-9)
}

func TestCPUCountersGoingBackwardsKeepLastValue(t *testing.T) {
	clock := newClock()
	c := newCPU(timesSeq(
		cpu.TimesStat{User: 100, Idle: 100},
		cpu.TimesStat{User: 150, Idle: 150},
		cpu.TimesStat{User: 10, Idle: 10},
	), clock.now)

	c.Sample()
	clock.advance(time.Second)
	require.InDelta(t, 50.0, c.Sample(), 1e-9)

	clock.advance(time.Second)
	assert.InDelta(t, 50.0, c.Sample(), 1e-9)
}

func TestLoadPercentClamps(t *testing.T) {
	tests := []struct {
		name          string
		dIdle, dTotal float64
		want          float64
	}{
		{"idle", 100, 100, 0},
		{"busy", 0, 100, 100},
		{"negative idle", -50, 100, 100},
		{"idle above total", 150, 100, 0},
		{"no elapsed time", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, loadPercent(tt.dIdle, tt.dTotal), 1e-9)
		})
	}
}

func TestCPUReadFailureKeepsLastValue(t *testing.T) {
	clock := newClock()
	calls := 0
	c := newCPU(func() (cpu.TimesStat, error) {
		calls++
		if calls == 2 {
			return cpu.TimesStat{}, errors.New().New(ErrReadCPUTimes)
		}
		return cpu.TimesStat{User: float64(calls) * 100, Idle: float64(calls) * 100}, nil
	}, clock.now)

	c.Sample()
	clock.advance(time.Second)
	assert.Zero(t, c.Sample())
	assert.True(t, c.failed)

	clock.advance(time.Second)
	assert.InDelta(t, 50.0, c.Sample(), 1e-9)
	assert.False(t, c.failed)
}

func TestFunc(t *testing.T) {
	n := 0.0
	src := Func(Meta{Scale: telemetry.FixedScale(0, 10)}, func() float64 {
		n++
		return n
	})

	assert.Equal(t, "func", src.DisplayName())
	assert.Equal(t, render.White, src.Color())
	assert.Equal(t, 1.0, src.Sample())
	assert.Equal(t, 2.0, src.Sample())
}

func TestHeap(t *testing.T) {
	h := NewHeap(newClock().now)
	assert.Greater(t, h.Sample(), 0.0)
	assert.Equal(t, "Heap MiB", h.DisplayName())
}
