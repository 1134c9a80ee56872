package command

import "codeberg.org/mutker/devconsole/internal/errors"

const (
	// Registration errors, fatal at startup
	ErrDuplicateCommand = errors.ErrorCode("command_duplicate")
	ErrInvalidName      = errors.ErrorCode("command_invalid_name")
	ErrUnknownParamType = errors.ErrorCode("command_unknown_param_type")
	ErrNilInvoker       = errors.ErrorCode("command_nil_invoker")

	// Dispatch errors, recovered and rendered as text
	ErrUnknownCommand = errors.ErrorCode("command_unknown")
	ErrArityMismatch  = errors.ErrorCode("command_arity_mismatch")
	ErrConversion     = errors.ErrorCode("command_conversion_failed")
	ErrInvocation     = errors.ErrorCode("command_invocation_failed")
)

// Unknown is the data of an ErrUnknownCommand error.
type Unknown struct {
	Name string
}

// Arity is the data of an ErrArityMismatch error.
type Arity struct {
	Expected int
	Actual   int
}

// Conversion is the data of an ErrConversion error. Index is 1-based.
type Conversion struct {
	Index int
	Type  ParamType
	Token string
}
