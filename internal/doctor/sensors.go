package doctor

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/rhino/internal/monitor"
)

// CPUTemperatureCheck reports whether any CPU temperature sensor is
// readable. Most hosts hide them from unprivileged processes.
type CPUTemperatureCheck struct {
	Source monitor.SensorSource
}

func (c *CPUTemperatureCheck) Name() string     { return "cpu_temperature" }
func (c *CPUTemperatureCheck) Category() string { return CategorySensors }

func (c *CPUTemperatureCheck) Run() CheckResult {
	temps := c.Source.CPUSample().Temperatures
	if len(temps) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No CPU temperature sensors readable",
			Suggestion: "Run with elevated privileges, or load a hwmon driver such as coretemp or k10temp",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d CPU temperature sensor%s readable", len(temps), pluralize(len(temps))),
	}
}

// DiskCheck reports how many disks the dashboard will list.
type DiskCheck struct {
	Source monitor.SensorSource
}

func (c *DiskCheck) Name() string     { return "disks" }
func (c *DiskCheck) Category() string { return CategorySensors }

func (c *DiskCheck) Run() CheckResult {
	disks := c.Source.DiskSample()
	if len(disks) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No mounted disks found",
			Suggestion: "The Disk Info section will be empty",
		}
	}

	unknown := 0
	var total uint64
	for _, d := range disks {
		total += d.Total
		if d.Kind == "" || d.Kind == monitor.DiskUnknown {
			unknown++
		}
	}
	msg := fmt.Sprintf("%d disk%s found, %s total", len(disks), pluralize(len(disks)), humanize.Bytes(total))
	if unknown > 0 {
		msg += fmt.Sprintf(" (%d of unknown type)", unknown)
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: msg,
	}
}

// NewSensorChecks creates the host sensor checks.
func NewSensorChecks(source monitor.SensorSource) []Check {
	return []Check{
		&CPUTemperatureCheck{Source: source},
		&DiskCheck{Source: source},
	}
}
