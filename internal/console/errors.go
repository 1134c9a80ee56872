package console

import "codeberg.org/mutker/devconsole/internal/errors"

const (
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrNilRegistry   = errors.ErrorCode("console_nil_registry")
)
