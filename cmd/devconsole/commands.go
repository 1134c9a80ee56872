package main

import (
	"fmt"
	"runtime"
	"strings"

	"codeberg.org/mutker/devconsole/internal/command"
	"codeberg.org/mutker/devconsole/internal/overlay"
)

// registerHostCommands adds the commands that only make sense in the
// terminal host.
func registerHostCommands(ov *overlay.Overlay, m *model) error {
	cmds := []struct {
		name   string
		params []command.ParamType
		invoke command.Invoker
	}{
		{"quit", nil, func([]any) (any, error) {
			m.quit()
			return nil, nil
		}},
		{"echo", []command.ParamType{command.String}, func(args []any) (any, error) {
			return args[0], nil
		}},
		{"sum", []command.ParamType{command.Float64, command.Float64}, func(args []any) (any, error) {
			return args[0].(float64) + args[1].(float64), nil
		}},
		{"runtime.gc", nil, func([]any) (any, error) {
			runtime.GC()
			return nil, nil
		}},
		{"runtime.goroutines", nil, func([]any) (any, error) {
			return runtime.NumGoroutine(), nil
		}},
		{"series", nil, func([]any) (any, error) {
			series := ov.Board().Series()
			names := make([]string, len(series))
			for i, s := range series {
				names[i] = s.Name()
			}
			return strings.Join(names, ", "), nil
		}},
		{"series.stats", []command.ParamType{command.Int32}, func(args []any) (any, error) {
			series := ov.Board().Series()
			i := int(args[0].(int32))
			if i < 0 || i >= len(series) {
				return nil, fmt.Errorf("series index %d out of range [0, %d)", i, len(series))
			}
			return series[i].Label(), nil
		}},
	}

	for _, c := range cmds {
		if err := ov.RegisterCommand(c.name, c.params, c.invoke); err != nil {
			return err
		}
	}
	return nil
}
