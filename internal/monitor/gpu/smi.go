package gpu

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/exec"
	"github.com/rileyhilliard/rhino/internal/monitor"
	"github.com/rileyhilliard/rhino/internal/monitor/parsers"
)

const smiCommand = "nvidia-smi"

// DefaultSMITimeout bounds a single nvidia-smi run.
const DefaultSMITimeout = 5 * time.Second

var errNoReading = stderrors.New("nvidia-smi returned no reading for the device")

// SMIDriver opens a device through the nvidia-smi command line tool.
type SMIDriver struct {
	Index   int
	Timeout time.Duration

	run exec.Runner
}

// NewSMIDriver creates a driver that runs the real nvidia-smi.
func NewSMIDriver(index int) *SMIDriver {
	return &SMIDriver{Index: index, Timeout: DefaultSMITimeout, run: exec.Capture}
}

// Init reads the device identity and takes a first reading to prove the
// device answers.
func (d *SMIDriver) Init() (monitor.GPUDevice, monitor.GPUIdentity, error) {
	out, err := d.query("--query-gpu="+parsers.SMIIdentityFields, "--format=csv,noheader", "-i", d.index())
	if err != nil {
		return nil, monitor.GPUIdentity{}, initError(err)
	}
	id, err := parsers.ParseSMIIdentity(out)
	if err != nil {
		return nil, monitor.GPUIdentity{}, errors.WrapWithCode(err, errors.ErrGPU,
			"Couldn't parse nvidia-smi output", "")
	}
	if id == nil {
		return nil, monitor.GPUIdentity{}, errors.New(errors.ErrGPU,
			fmt.Sprintf("No NVIDIA GPU at index %d", d.Index),
			"Run nvidia-smi -L to list devices and set gpu.index")
	}

	banner, err := d.query()
	if err != nil {
		return nil, monitor.GPUIdentity{}, initError(err)
	}

	dev := &smiDevice{driver: d}
	if err := dev.Refresh(); err != nil {
		return nil, monitor.GPUIdentity{}, errors.WrapWithCode(rawCause(err), errors.ErrGPU,
			"Couldn't read GPU metrics", "")
	}

	return dev, monitor.GPUIdentity{
		Name:          id.Name,
		Architecture:  ArchitectureFromComputeCap(id.ComputeCap),
		DriverVersion: parsers.ParseCudaVersion(banner),
	}, nil
}

func (d *SMIDriver) index() string {
	return strconv.Itoa(d.Index)
}

func (d *SMIDriver) query(args ...string) (string, error) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultSMITimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, exitCode, err := d.run(ctx, smiCommand, args...)
	if err != nil {
		return "", err
	}
	if err := exec.HandleExecError(smiCommand, string(stdout), string(stderr), exitCode); err != nil {
		return "", err
	}
	return string(stdout), nil
}

func initError(err error) error {
	suggestion := "Check that the NVIDIA driver is loaded"
	if exec.IsNotFound(err) {
		suggestion = "Install the NVIDIA driver so nvidia-smi is on your PATH"
	}
	return errors.WrapWithCode(rawCause(err), errors.ErrGPU, "Couldn't query the GPU with nvidia-smi", suggestion)
}

// rawCause strips the structured wrapper from an exec failure so the GPU
// error that replaces it prints a single headline and suggestion.
func rawCause(err error) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	if e.Cause != nil {
		return e.Cause
	}
	if e.Suggestion != "" {
		return fmt.Errorf("%s: %s", e.Message, e.Suggestion)
	}
	return stderrors.New(e.Message)
}

// smiDevice serves every field from the batch read by the last Refresh.
type smiDevice struct {
	driver *SMIDriver
	last   *parsers.SMIReading
}

func (d *smiDevice) Refresh() error {
	d.last = nil
	out, err := d.driver.query(
		"--query-gpu="+parsers.SMIQueryFields,
		"--format=csv,noheader,nounits",
		"-i", d.driver.index())
	if err != nil {
		return err
	}
	r, err := parsers.ParseNvidiaSMI(out)
	if err != nil {
		return err
	}
	if r == nil {
		return errNoReading
	}
	d.last = r
	return nil
}

func (d *smiDevice) UtilizationRates() (monitor.GPUUtilization, error) {
	v, err := d.uint32Field(func(r *parsers.SMIReading) *uint32 { return r.Utilization }, "utilization")
	return monitor.GPUUtilization{GPU: v}, err
}

func (d *smiDevice) Temperature(monitor.TemperatureSensor) (uint32, error) {
	return d.uint32Field(func(r *parsers.SMIReading) *uint32 { return r.Temperature }, "temperature")
}

func (d *smiDevice) ClockInfo(clock monitor.ClockKind) (uint32, error) {
	if clock == monitor.ClockMemory {
		return d.uint32Field(func(r *parsers.SMIReading) *uint32 { return r.MemoryClock }, "memory clock")
	}
	return d.uint32Field(func(r *parsers.SMIReading) *uint32 { return r.GraphicsClock }, "graphics clock")
}

func (d *smiDevice) MemoryInfo() (monitor.GPUMemory, error) {
	if d.last == nil {
		return monitor.GPUMemory{}, errNoReading
	}
	if d.last.MemoryUsed == nil || d.last.MemoryTotal == nil {
		return monitor.GPUMemory{}, fmt.Errorf("nvidia-smi reported memory as N/A")
	}
	return monitor.GPUMemory{Used: *d.last.MemoryUsed, Total: *d.last.MemoryTotal}, nil
}

func (d *smiDevice) Close() error {
	return nil
}

func (d *smiDevice) uint32Field(get func(*parsers.SMIReading) *uint32, what string) (uint32, error) {
	if d.last == nil {
		return 0, errNoReading
	}
	v := get(d.last)
	if v == nil {
		return 0, fmt.Errorf("nvidia-smi reported %s as N/A", what)
	}
	return *v, nil
}
