//go:build !linux

package gpu

import (
	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/monitor"
)

// Init always fails: NVML is loaded with dlopen, which is Linux only here.
func (d *NVMLDriver) Init() (monitor.GPUDevice, monitor.GPUIdentity, error) {
	return nil, monitor.GPUIdentity{}, errors.New(errors.ErrGPU,
		"The NVML backend isn't available on this platform",
		"Set gpu.backend: nvidia-smi in your config, or pass --gpu-backend nvidia-smi")
}
