package source

import (
	"time"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	"github.com/shirou/gopsutil/v4/cpu"
)

const (
	ErrReadCPUTimes = errors.ErrorCode("source_read_cpu_times_failed")
)

// CPU reports total CPU load in percent from the aggregate CPU times. The
// value is refreshed at most once a second; in between the cached reading
// is returned.
type CPU struct {
	meta     Meta
	times    func() (cpu.TimesStat, error)
	throttle throttle
	idle     float64
	total    float64
	load     float64
	failed   bool
}

func NewCPU(now func() time.Time) *CPU {
	return newCPU(systemTimes, now)
}

func newCPU(times func() (cpu.TimesStat, error), now func() time.Time) *CPU {
	return &CPU{
		meta:     Meta{Name: "CPU", Color: render.Green, Scale: telemetry.FixedScale(0, 100)},
		times:    times,
		throttle: newThrottle(time.Second, now),
	}
}

func systemTimes() (cpu.TimesStat, error) {
	errFactory := errors.New()

	stats, err := cpu.Times(false)
	if err != nil {
		return cpu.TimesStat{}, errFactory.Wrap(ErrReadCPUTimes, err)
	}
	if len(stats) == 0 {
		return cpu.TimesStat{}, errFactory.New(ErrReadCPUTimes)
	}
	return stats[0], nil
}

func (c *CPU) Sample() float64 {
	if !c.throttle.due() {
		return c.load
	}

	ts, err := c.times()
	if err != nil {
		if !c.failed {
			logger.Warn().Err(err).Msg("CPU load unavailable")
			c.failed = true
		}
		return c.load
	}
	c.failed = false

	idle, total := idleTime(ts), totalTime(ts)
	if c.total != 0 && total > c.total {
		c.load = loadPercent(idle-c.idle, total-c.total)
	}
	c.idle, c.total = idle, total

	return c.load
}

// idleTime counts iowait as idle. The kernel may report iowait going
// backwards, so deltas of it are clamped in loadPercent.
func idleTime(ts cpu.TimesStat) float64 {
	return ts.Idle + ts.Iowait
}

// totalTime excludes guest time, which the kernel already folds into user
// and nice.
func totalTime(ts cpu.TimesStat) float64 {
	return ts.User + ts.Nice + ts.System + ts.Idle + ts.Iowait + ts.Irq + ts.Softirq + ts.Steal
}

func loadPercent(dIdle, dTotal float64) float64 {
	if dTotal <= 0 {
		return 0
	}
	dIdle = min(max(dIdle, 0), dTotal)
	return 100 * (1 - dIdle/dTotal)
}

func (c *CPU) ScaleMode() telemetry.ScaleMode { return c.meta.Scale }
func (c *CPU) Color() render.Color            { return c.meta.Color }
func (c *CPU) DisplayName() string            { return c.meta.Name }
