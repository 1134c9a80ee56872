package overlay

import (
	"codeberg.org/mutker/devconsole/internal/console"
	"codeberg.org/mutker/devconsole/internal/telemetry"
)

type Config struct {
	Console console.Config
	Board   telemetry.Config
	// GraphEnabled is the initial state of Render.GraphOverlayEnable.
	GraphEnabled bool
}

func DefaultConfig() Config {
	return Config{
		Console: console.DefaultConfig(),
		Board:   telemetry.DefaultConfig(),
	}
}
