package gpu

import (
	"codeberg.org/mutker/devconsole/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// library hands out one device for reading and holds NVML open until
// Release. Tests substitute a fake.
type library interface {
	Acquire(index int) (Device, error)
	Release() error
}

// nvmlLibrary only queries devices; nothing here changes clocks, fans or
// power limits.
type nvmlLibrary struct {
	loaded bool
}

// Acquire loads NVML and returns the handle at index. NVML is unloaded
// again when any step fails.
func (l *nvmlLibrary) Acquire(index int) (Device, error) {
	errFactory := errors.New()

	if !l.loaded {
		if ret := nvml.Init(); !IsNVMLSuccess(ret) {
			return nil, errFactory.Wrap(ErrInitFailed, newNVMLError(ret))
		}
		l.loaded = true
	}

	device, err := l.device(index)
	if err != nil {
		_ = l.Release()
		return nil, err
	}
	return device, nil
}

func (l *nvmlLibrary) device(index int) (Device, error) {
	errFactory := errors.New()

	count, ret := nvml.DeviceGetCount()
	if !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrDeviceCountFailed, newNVMLError(ret))
	}
	if err := checkIndex(index, count); err != nil {
		return nil, err
	}

	handle, ret := nvml.DeviceGetHandleByIndex(index)
	if !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}
	return handle, nil
}

// Release unloads NVML. Releasing twice is a no-op.
func (l *nvmlLibrary) Release() error {
	if !l.loaded {
		return nil
	}
	l.loaded = false

	if ret := nvml.Shutdown(); !IsNVMLSuccess(ret) {
		return errors.New().Wrap(ErrShutdownFailed, newNVMLError(ret))
	}
	return nil
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return errors.New().WithData(ErrDeviceNotFound, struct {
			Index, Count int
		}{index, count})
	}
	return nil
}
