package gpu

import (
	"codeberg.org/mutker/devconsole/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	// Library and device lookup
	ErrInitFailed        = errors.ErrorCode("gpu_init_failed")
	ErrDeviceNotFound    = errors.ErrorCode("gpu_device_not_found")
	ErrShutdownFailed    = errors.ErrorCode("gpu_shutdown_failed")
	ErrDeviceInfoFailed  = errors.ErrorCode("gpu_device_info_failed")
	ErrDeviceCountFailed = errors.ErrorCode("gpu_device_count_failed")

	// Sensor reads
	ErrTemperatureReadFailed = errors.ErrorCode("gpu_temperature_read_failed")
	ErrFanCountFailed        = errors.ErrorCode("gpu_fan_count_failed")
	ErrGetFanSpeedFailed     = errors.ErrorCode("gpu_fan_speed_failed")
	ErrPowerUsageFailed      = errors.ErrorCode("gpu_power_usage_failed")
	ErrPowerLimitFailed      = errors.ErrorCode("gpu_power_limit_failed")
	ErrUtilizationFailed     = errors.ErrorCode("gpu_utilization_failed")
)

// nvmlError carries the NVML return code of a failed query.
type nvmlError struct {
	ret nvml.Return
}

func (e nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

// newNVMLError returns nil for SUCCESS.
func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &nvmlError{ret: ret}
}

func IsNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}
