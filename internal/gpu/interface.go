package gpu

import (
	"codeberg.org/mutker/devconsole/internal/render"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Device is the read-only subset of nvml.Device the sensors use. Every
// nvml.Device satisfies it.
type Device interface {
	GetName() (string, nvml.Return)
	GetTemperature(nvml.TemperatureSensors) (uint32, nvml.Return)
	GetNumFans() (int, nvml.Return)
	GetFanSpeed_v2(int) (uint32, nvml.Return)
	GetPowerUsage() (uint32, nvml.Return)
	GetPowerManagementLimit() (uint32, nvml.Return)
	GetUtilizationRates() (nvml.Utilization, nvml.Return)
}

// Domain types for type safety
type (
	Temperature int
	FanSpeed    int
	PowerUsage  float64
	Utilization int
)

// Series colors used when registering the GPU sources on a board.
var (
	TemperatureColor = render.Color{R: 255, G: 96, B: 0, A: 255}
	PowerColor       = render.Color{R: 255, G: 220, B: 0, A: 255}
	FanColor         = render.Color{R: 0, G: 200, B: 255, A: 255}
	UtilizationColor = render.Color{R: 118, G: 185, B: 0, A: 255}
)
