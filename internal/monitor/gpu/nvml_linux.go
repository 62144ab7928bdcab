//go:build linux

package gpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/monitor"
)

// nvmlError adapts an NVML return code to the error interface.
type nvmlError nvml.Return

func (e nvmlError) Error() string {
	return nvml.ErrorString(nvml.Return(e))
}

func check(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return nvmlError(ret)
}

// Init loads NVML, opens the device and reads its identity. The library
// stays loaded until the returned device is closed.
func (d *NVMLDriver) Init() (monitor.GPUDevice, monitor.GPUIdentity, error) {
	if err := check(nvml.Init()); err != nil {
		return nil, monitor.GPUIdentity{}, errors.WrapWithCode(err, errors.ErrGPU,
			"Couldn't initialize NVML",
			"Install the NVIDIA driver, or set gpu.backend: nvidia-smi")
	}

	dev, ret := nvml.DeviceGetHandleByIndex(d.Index)
	if err := check(ret); err != nil {
		nvml.Shutdown()
		return nil, monitor.GPUIdentity{}, errors.WrapWithCode(err, errors.ErrGPU,
			fmt.Sprintf("No NVIDIA GPU at index %d", d.Index),
			"Run nvidia-smi -L to list devices and set gpu.index")
	}

	identity, err := nvmlIdentity(dev)
	if err != nil {
		nvml.Shutdown()
		return nil, monitor.GPUIdentity{}, err
	}

	return &nvmlDevice{dev: dev}, identity, nil
}

func nvmlIdentity(dev nvml.Device) (monitor.GPUIdentity, error) {
	name, ret := dev.GetName()
	if err := check(ret); err != nil {
		return monitor.GPUIdentity{}, errors.WrapWithCode(err, errors.ErrGPU, "Couldn't read GPU name", "")
	}

	arch, ret := dev.GetArchitecture()
	if err := check(ret); err != nil {
		return monitor.GPUIdentity{}, errors.WrapWithCode(err, errors.ErrGPU, "Couldn't read GPU architecture", "")
	}

	cuda, ret := nvml.SystemGetCudaDriverVersion()
	if err := check(ret); err != nil {
		return monitor.GPUIdentity{}, errors.WrapWithCode(err, errors.ErrGPU,
			"Couldn't read CUDA driver version",
			"Update the NVIDIA driver")
	}

	return monitor.GPUIdentity{
		Name:          name,
		Architecture:  architectureName(arch),
		DriverVersion: FormatCudaVersion(cuda),
	}, nil
}

func architectureName(a nvml.DeviceArchitecture) string {
	switch a {
	case nvml.DEVICE_ARCH_KEPLER:
		return ArchKepler
	case nvml.DEVICE_ARCH_MAXWELL:
		return ArchMaxwell
	case nvml.DEVICE_ARCH_PASCAL:
		return ArchPascal
	case nvml.DEVICE_ARCH_VOLTA:
		return ArchVolta
	case nvml.DEVICE_ARCH_TURING:
		return ArchTuring
	case nvml.DEVICE_ARCH_AMPERE:
		return ArchAmpere
	case nvml.DEVICE_ARCH_ADA:
		return ArchAda
	case nvml.DEVICE_ARCH_HOPPER:
		return ArchHopper
	default:
		return ArchUnknown
	}
}

type nvmlDevice struct {
	dev nvml.Device
}

func (d *nvmlDevice) UtilizationRates() (monitor.GPUUtilization, error) {
	u, ret := d.dev.GetUtilizationRates()
	if err := check(ret); err != nil {
		return monitor.GPUUtilization{}, err
	}
	return monitor.GPUUtilization{GPU: u.Gpu, Memory: u.Memory}, nil
}

func (d *nvmlDevice) Temperature(monitor.TemperatureSensor) (uint32, error) {
	t, ret := d.dev.GetTemperature(nvml.TEMPERATURE_GPU)
	return t, check(ret)
}

func (d *nvmlDevice) ClockInfo(clock monitor.ClockKind) (uint32, error) {
	kind := nvml.CLOCK_GRAPHICS
	if clock == monitor.ClockMemory {
		kind = nvml.CLOCK_MEM
	}
	c, ret := d.dev.GetClockInfo(kind)
	return c, check(ret)
}

func (d *nvmlDevice) MemoryInfo() (monitor.GPUMemory, error) {
	m, ret := d.dev.GetMemoryInfo()
	if err := check(ret); err != nil {
		return monitor.GPUMemory{}, err
	}
	return monitor.GPUMemory{Used: m.Used, Total: m.Total}, nil
}

func (d *nvmlDevice) Close() error {
	return check(nvml.Shutdown())
}
