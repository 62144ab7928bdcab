package doctor

import (
	"fmt"
	"os/exec"

	"github.com/rileyhilliard/rhino/internal/monitor"
	"github.com/rileyhilliard/rhino/internal/monitor/gpu"
)

// GPUOpener creates a driver for a backend, e.g. gpu.New.
type GPUOpener func(backend string, index int) (monitor.GPUDriver, error)

// GPUBackendCheck opens the configured GPU once, the same way the dashboard
// does at startup, and reads every per-cycle field.
type GPUBackendCheck struct {
	Backend string
	Index   int
	Open    GPUOpener
}

func (c *GPUBackendCheck) Name() string     { return "gpu_backend" }
func (c *GPUBackendCheck) Category() string { return CategoryGPU }

func (c *GPUBackendCheck) Run() CheckResult {
	open := c.Open
	if open == nil {
		open = gpu.New
	}

	driver, err := open(c.Backend, c.Index)
	if err != nil {
		return c.fail(err)
	}
	device, identity, err := driver.Init()
	if err != nil {
		return c.fail(err)
	}
	defer device.Close()

	msg := fmt.Sprintf("%s (%s) via %s", identity.Name, identity.Architecture, c.backend())
	if identity.DriverVersion != "" {
		msg += ", CUDA " + identity.DriverVersion
	}

	if missing := unreadableFields(device); len(missing) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s; unreadable: %v", msg, missing),
			Suggestion: "These fields will show N/A. Keep gpu.on_error: degrade so the dashboard keeps running",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: msg,
	}
}

func (c *GPUBackendCheck) backend() string {
	if c.Backend == "" {
		return gpu.BackendNVML
	}
	return c.Backend
}

func (c *GPUBackendCheck) fail(err error) CheckResult {
	suggestion := "Install the NVIDIA driver, or pick the other backend with --gpu-backend"
	if c.backend() == gpu.BackendNVML {
		suggestion = "Install the NVIDIA driver, or try --gpu-backend nvidia-smi"
	}
	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("GPU %d unavailable via %s: %v", c.Index, c.backend(), err),
		Suggestion: suggestion,
	}
}

// unreadableFields reads each per-cycle field once and names the ones that
// fail.
func unreadableFields(device monitor.GPUDevice) []string {
	if r, ok := device.(monitor.Refresher); ok {
		if err := r.Refresh(); err != nil {
			return []string{"all fields"}
		}
	}

	var missing []string
	if _, err := device.UtilizationRates(); err != nil {
		missing = append(missing, "utilization")
	}
	if _, err := device.Temperature(monitor.SensorGPU); err != nil {
		missing = append(missing, "temperature")
	}
	for _, clock := range []monitor.ClockKind{monitor.ClockGraphics, monitor.ClockMemory} {
		if _, err := device.ClockInfo(clock); err != nil {
			missing = append(missing, clock.String()+" clock")
		}
	}
	if _, err := device.MemoryInfo(); err != nil {
		missing = append(missing, "memory")
	}
	return missing
}

// SMIBinaryCheck looks for nvidia-smi on PATH. It only fails when the
// nvidia-smi backend is selected.
type SMIBinaryCheck struct {
	Backend  string
	LookPath func(file string) (string, error)
}

func (c *SMIBinaryCheck) Name() string     { return "nvidia_smi" }
func (c *SMIBinaryCheck) Category() string { return CategoryGPU }

func (c *SMIBinaryCheck) Run() CheckResult {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath("nvidia-smi")
	if err == nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("nvidia-smi found at %s", path),
		}
	}

	status := StatusWarn
	if c.Backend == gpu.BackendSMI {
		status = StatusFail
	}
	return CheckResult{
		Name:       c.Name(),
		Status:     status,
		Message:    "nvidia-smi not found on PATH",
		Suggestion: "It ships with the NVIDIA driver; add its directory to PATH to use --gpu-backend nvidia-smi",
	}
}

// NewGPUChecks creates the GPU checks for the configured backend.
func NewGPUChecks(backend string, index int, open GPUOpener) []Check {
	return []Check{
		&GPUBackendCheck{Backend: backend, Index: index, Open: open},
		&SMIBinaryCheck{Backend: backend},
	}
}
