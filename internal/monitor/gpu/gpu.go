// Package gpu opens the NVIDIA device shown on the dashboard.
//
// Two backends are available. NVML talks to the driver library directly and
// is the default on Linux. The nvidia-smi backend shells out once per cycle
// and works wherever the driver's command line tool is installed.
package gpu

import (
	"fmt"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/monitor"
)

// Backend names accepted by New.
const (
	BackendNVML = "nvml"
	BackendSMI  = "nvidia-smi"
)

// New returns the driver for the named backend, bound to the device at index.
func New(backend string, index int) (monitor.GPUDriver, error) {
	if index < 0 {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid gpu.index %d", index),
			"Device indexes start at 0")
	}

	switch backend {
	case "", BackendNVML:
		return &NVMLDriver{Index: index}, nil
	case BackendSMI:
		return NewSMIDriver(index), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown gpu.backend '%s'", backend),
			fmt.Sprintf("Use '%s' or '%s'", BackendNVML, BackendSMI))
	}
}

// FormatCudaVersion renders the driver's packed CUDA version (1000*major +
// 10*minor) as "major.minor".
func FormatCudaVersion(v int) string {
	if v <= 0 {
		return ""
	}
	return fmt.Sprintf("%d.%d", v/1000, (v%1000)/10)
}
