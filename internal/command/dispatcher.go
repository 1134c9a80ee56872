package command

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
)

// Dispatcher executes console input lines against a Registry.
//
// Lines are split on runs of whitespace. There is no quoting or escaping,
// so an argument can never contain a space.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch executes line and returns the text shown in the scrollback.
// It never returns an error and never panics on a faulting command.
func (d *Dispatcher) Dispatch(line string) string {
	value, err := d.Execute(line)
	if err != nil {
		return FormatError(err)
	}
	return FormatResult(value)
}

// Execute resolves, converts and invokes line. The returned string is the
// textual form of the command's result, empty when there is none.
// Errors carry one of ErrUnknownCommand, ErrArityMismatch, ErrConversion or
// ErrInvocation.
func (d *Dispatcher) Execute(line string) (string, error) {
	errFactory := errors.New()

	tokens := strings.Fields(line)
	name := ""
	if len(tokens) > 0 {
		name = tokens[0]
	}

	entry, ok := d.registry.Resolve(name)
	if !ok {
		return "", errFactory.WithData(ErrUnknownCommand, Unknown{Name: name})
	}

	args := tokens[1:]
	if len(args) != len(entry.Params) {
		return "", errFactory.WithData(ErrArityMismatch, Arity{
			Expected: len(entry.Params),
			Actual:   len(args),
		})
	}

	values := make([]any, len(args))
	for i, token := range args {
		parse, ok := d.registry.parser(entry.Params[i])
		if !ok {
			// Register rejects unknown types, so only a DefineType race gets here.
			return "", errFactory.WithData(ErrUnknownParamType, entry.Params[i])
		}

		v, err := parse(token)
		if err != nil {
			return "", errFactory.Wrap(ErrConversion, err).WithData(Conversion{
				Index: i + 1,
				Type:  entry.Params[i],
				Token: token,
			})
		}
		values[i] = v
	}

	result, err := invoke(entry, values)
	if err != nil {
		logger.Warn().
			Str("command", entry.Name).
			Err(err).
			Msg("Command invocation failed")
		return "", errFactory.Wrap(ErrInvocation, err)
	}

	logger.Debug().
		Str("command", entry.Name).
		Int("args", len(values)).
		Msg("Command executed")

	return valueText(result), nil
}

func invoke(entry *Entry, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = rErr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	return entry.Invoke(args)
}

func valueText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// FormatResult renders a successful outcome.
func FormatResult(value string) string {
	if strings.TrimSpace(value) == "" {
		return "=> Command executed"
	}
	return "=> Result: " + value
}

// FormatError renders a dispatch error.
func FormatError(err error) string {
	var coded errors.Error
	if !errors.As(err, &coded) {
		return "=> Error: " + err.Error()
	}

	switch coded.Code() {
	case ErrUnknownCommand:
		d, _ := coded.GetData().(Unknown)
		return fmt.Sprintf("=> Error: Unknow console command \"%s\"! (use \"list\" command to view available commands)", d.Name)
	case ErrArityMismatch:
		d, _ := coded.GetData().(Arity)
		return fmt.Sprintf("=> Error: The command has %d parameters, but you entered %d", d.Expected, d.Actual)
	case ErrConversion:
		d, _ := coded.GetData().(Conversion)
		return fmt.Sprintf("=> Error: Can't process parameter no. %d: %s", d.Index, reason(coded))
	case ErrInvocation:
		return "=> Error: Exception while invoking the command: " + reason(coded)
	}

	return "=> Error: " + coded.Error()
}

func reason(err errors.Error) string {
	if cause := err.Unwrap(); cause != nil {
		return cause.Error()
	}
	return err.Error()
}
