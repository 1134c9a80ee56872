// Package gpu reads NVIDIA GPU sensors through NVML and exposes them as
// telemetry sources and console commands.
package gpu

import (
	"sync"

	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/logger"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const milliWattsToWatts = 1000

// Reader is a read-only view of one GPU. Methods are safe for concurrent use.
type Reader struct {
	lib    library
	device Device
	name   string
	fans   int
	mu     sync.Mutex
	logger logger.Logger
}

// Open loads NVML and returns a Reader for the device at index. Close
// unloads NVML.
func Open(index int, log logger.Logger) (*Reader, error) {
	return open(&nvmlLibrary{}, index, log)
}

func open(lib library, index int, log logger.Logger) (*Reader, error) {
	device, err := lib.Acquire(index)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(device, log)
	if err != nil {
		_ = lib.Release()
		return nil, err
	}
	r.lib = lib

	return r, nil
}

// NewReader wraps an already acquired device. The caller owns the NVML
// lifetime.
func NewReader(device Device, log logger.Logger) (*Reader, error) {
	errFactory := errors.New()

	if log == nil {
		log = logger.New()
	}

	name, ret := device.GetName()
	if !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrDeviceInfoFailed, newNVMLError(ret))
	}

	fans, ret := device.GetNumFans()
	if !IsNVMLSuccess(ret) {
		// Passively cooled boards report NOT_SUPPORTED.
		if ret != nvml.ERROR_NOT_SUPPORTED {
			return nil, errFactory.Wrap(ErrFanCountFailed, newNVMLError(ret))
		}
		fans = 0
	}

	log.Info().Str("name", name).Int("fans", fans).Msg("Detected GPU")

	return &Reader{device: device, name: name, fans: fans, logger: log}, nil
}

// Close releases NVML when the Reader came from Open. Closing twice is a
// no-op.
func (r *Reader) Close() error {
	r.mu.Lock()
	lib := r.lib
	r.lib = nil
	r.mu.Unlock()

	if lib == nil {
		return nil
	}
	return lib.Release()
}

func (r *Reader) Name() string {
	return r.name
}

func (r *Reader) FanCount() int {
	return r.fans
}

// Temperature returns the core temperature in degrees Celsius.
func (r *Reader) Temperature() (Temperature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	temp, ret := r.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if !IsNVMLSuccess(ret) {
		return 0, errors.New().Wrap(ErrTemperatureReadFailed, newNVMLError(ret))
	}

	return Temperature(temp), nil
}

// FanSpeed returns the speed of one fan as a percentage.
func (r *Reader) FanSpeed(index int) (FanSpeed, error) {
	errFactory := errors.New()
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= r.fans {
		return 0, errFactory.WithData(errors.ErrInvalidArgument, "fan index out of range")
	}

	speed, ret := r.device.GetFanSpeed_v2(index)
	if !IsNVMLSuccess(ret) {
		return 0, errFactory.Wrap(ErrGetFanSpeedFailed, newNVMLError(ret))
	}

	return FanSpeed(speed), nil
}

// FanSpeeds returns every fan's speed in device order.
func (r *Reader) FanSpeeds() ([]FanSpeed, error) {
	speeds := make([]FanSpeed, 0, r.fans)
	for i := 0; i < r.fans; i++ {
		speed, err := r.FanSpeed(i)
		if err != nil {
			return nil, err
		}
		speeds = append(speeds, speed)
	}

	return speeds, nil
}

// PowerUsage returns the current board draw in watts.
func (r *Reader) PowerUsage() (PowerUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	usage, ret := r.device.GetPowerUsage()
	if !IsNVMLSuccess(ret) {
		return 0, errors.New().Wrap(ErrPowerUsageFailed, newNVMLError(ret))
	}

	return PowerUsage(float64(usage) / milliWattsToWatts), nil
}

// PowerLimit returns the enforced power limit in watts.
func (r *Reader) PowerLimit() (PowerUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit, ret := r.device.GetPowerManagementLimit()
	if !IsNVMLSuccess(ret) {
		return 0, errors.New().Wrap(ErrPowerLimitFailed, newNVMLError(ret))
	}

	return PowerUsage(float64(limit) / milliWattsToWatts), nil
}

// Utilization returns the GPU busy percentage over the last sample period.
func (r *Reader) Utilization() (Utilization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rates, ret := r.device.GetUtilizationRates()
	if !IsNVMLSuccess(ret) {
		return 0, errors.New().Wrap(ErrUtilizationFailed, newNVMLError(ret))
	}

	return Utilization(rates.Gpu), nil
}
