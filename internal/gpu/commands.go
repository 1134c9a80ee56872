package gpu

import (
	"fmt"
	"strings"

	"codeberg.org/mutker/devconsole/internal/command"
)

// RegisterCommands adds the read-only gpu.* console commands for r.
func (r *Reader) RegisterCommands(registry *command.Registry) error {
	cmds := []struct {
		name   string
		params []command.ParamType
		invoke command.Invoker
	}{
		{"gpu.name", nil, func([]any) (any, error) {
			return r.Name(), nil
		}},
		{"gpu.temperature", nil, func([]any) (any, error) {
			t, err := r.Temperature()
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("%dC", t), nil
		}},
		{"gpu.power", nil, func([]any) (any, error) {
			usage, err := r.PowerUsage()
			if err != nil {
				return nil, err
			}
			limit, err := r.PowerLimit()
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("%.1fW / %.0fW", usage, limit), nil
		}},
		{"gpu.utilization", nil, func([]any) (any, error) {
			u, err := r.Utilization()
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("%d%%", u), nil
		}},
		{"gpu.fans", nil, func([]any) (any, error) {
			speeds, err := r.FanSpeeds()
			if err != nil {
				return nil, err
			}
			if len(speeds) == 0 {
				return "no fans", nil
			}
			parts := make([]string, len(speeds))
			for i, s := range speeds {
				parts[i] = fmt.Sprintf("%d%%", s)
			}
			return strings.Join(parts, ", "), nil
		}},
		{"gpu.fan", []command.ParamType{command.Int32}, func(args []any) (any, error) {
			speed, err := r.FanSpeed(int(args[0].(int32)))
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("%d%%", speed), nil
		}},
	}

	for _, c := range cmds {
		if err := registry.Register(c.name, c.params, c.invoke); err != nil {
			return err
		}
	}

	return nil
}
