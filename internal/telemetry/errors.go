package telemetry

import "codeberg.org/mutker/devconsole/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrNilSource     = errors.ErrorCode("telemetry_nil_source")
	ErrInvalidScale  = errors.ErrorCode("telemetry_invalid_scale")

	// Handled inside the draw pass by drawing a flat line.
	ErrDegenerateScale = errors.ErrorCode("telemetry_degenerate_scale")
)
