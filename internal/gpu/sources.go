package gpu

import (
	"time"

	"codeberg.org/mutker/devconsole/internal/render"
	"codeberg.org/mutker/devconsole/internal/telemetry"
)

// DefaultPollInterval bounds how often a sensor source queries NVML.
const DefaultPollInterval = 250 * time.Millisecond

type sensor struct {
	name     string
	color    render.Color
	scale    telemetry.ScaleMode
	read     func() (float64, error)
	reader   *Reader
	interval time.Duration
	now      func() time.Time
	polled   time.Time
	value    float64
	failing  bool
}

func (s *sensor) Sample() float64 {
	n := s.now()
	if !s.polled.IsZero() && n.Sub(s.polled) < s.interval {
		return s.value
	}
	s.polled = n

	v, err := s.read()
	if err != nil {
		if !s.failing {
			s.reader.logger.Warn().Err(err).Str("series", s.name).Msg("GPU sensor read failed")
		}
		s.failing = true
		return s.value
	}
	if s.failing {
		s.reader.logger.Info().Str("series", s.name).Msg("GPU sensor recovered")
	}
	s.failing = false
	s.value = v

	return v
}

func (s *sensor) ScaleMode() telemetry.ScaleMode { return s.scale }
func (s *sensor) Color() render.Color            { return s.color }
func (s *sensor) DisplayName() string            { return s.name }

// Sources returns the temperature, power, utilization and (when the board
// has fans) average fan speed sources for r. A failed read keeps the
// previous value.
func (r *Reader) Sources(interval time.Duration) []telemetry.Source {
	return r.sources(interval, time.Now)
}

func (r *Reader) sources(interval time.Duration, now func() time.Time) []telemetry.Source {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	newSensor := func(name string, color render.Color, scale telemetry.ScaleMode, read func() (float64, error)) telemetry.Source {
		return &sensor{
			name:     name,
			color:    color,
			scale:    scale,
			read:     read,
			reader:   r,
			interval: interval,
			now:      now,
		}
	}

	powerScale := telemetry.AutoScale()
	if limit, err := r.PowerLimit(); err == nil && limit > 0 {
		powerScale = telemetry.FixedScale(0, float64(limit))
	}

	sources := []telemetry.Source{
		newSensor("gpu temp", TemperatureColor, telemetry.FixedScale(0, 100), func() (float64, error) {
			t, err := r.Temperature()
			return float64(t), err
		}),
		newSensor("gpu power", PowerColor, powerScale, func() (float64, error) {
			p, err := r.PowerUsage()
			return float64(p), err
		}),
		newSensor("gpu util", UtilizationColor, telemetry.FixedScale(0, 100), func() (float64, error) {
			u, err := r.Utilization()
			return float64(u), err
		}),
	}

	if r.fans > 0 {
		sources = append(sources, newSensor("gpu fan", FanColor, telemetry.FixedScale(0, 100), func() (float64, error) {
			speeds, err := r.FanSpeeds()
			if err != nil {
				return 0, err
			}
			sum := 0
			for _, s := range speeds {
				sum += int(s)
			}
			return float64(sum) / float64(len(speeds)), nil
		}))
	}

	return sources
}
