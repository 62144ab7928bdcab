package monitor

// Fallback values shown when a sensor cannot provide a field.
const (
	DefaultHostname  = "Default_System_Name"
	DefaultOSName    = "Default_OS_Name"
	DefaultOSVersion = "XXXX"
	DefaultCPUModel  = "Default_CPU_Name"
	DefaultDiskName  = "N/A"
)

// Snapshot is one cycle's complete telemetry reading.
// It is built fresh every cycle and never mutated after construction.
type Snapshot struct {
	Host   HostInfo
	CPU    CPUMetrics
	GPU    GPUMetrics
	Memory MemoryMetrics
	Disks  []DiskMetrics
}

// HostInfo identifies the machine. Empty fields mean "not reported".
type HostInfo struct {
	Hostname  string
	OSName    string
	OSVersion string
	CPUModel  string
}

// CPUMetrics contains CPU usage information.
type CPUMetrics struct {
	Cores   int
	PerCore []float64

	// Temperatures is empty when no temperature-capable component is
	// exposed, which usually means the process lacks elevated privileges.
	Temperatures []float64
}

// Utilization returns the arithmetic mean of the per-core percentages.
// A CPU with no reported cores has 0% utilization.
func (c CPUMetrics) Utilization() float64 {
	if len(c.PerCore) == 0 {
		return 0
	}
	var sum float64
	for _, p := range c.PerCore {
		sum += p
	}
	return sum / float64(len(c.PerCore))
}

// TemperatureAvailable reports whether any CPU temperature was read.
func (c CPUMetrics) TemperatureAvailable() bool {
	return len(c.Temperatures) > 0
}

// GPUIdentity describes the device. It is captured once at startup.
type GPUIdentity struct {
	Name          string
	Architecture  string
	DriverVersion string
}

// GPUMetrics contains GPU usage information.
// A nil field was not available this cycle and renders as N/A.
type GPUMetrics struct {
	Identity      GPUIdentity
	Utilization   *uint32 // percent
	Temperature   *uint32 // °C
	GraphicsClock *uint32 // MHz
	MemoryClock   *uint32 // MHz
	Memory        *GPUMemory
}

// GPUMemory is VRAM usage in bytes.
type GPUMemory struct {
	Used  uint64
	Total uint64
}

// MemoryMetrics contains system memory usage in bytes.
type MemoryMetrics struct {
	Used  uint64
	Total uint64
}

// DiskKind is the storage medium of a disk.
type DiskKind string

const (
	DiskSSD     DiskKind = "SSD"
	DiskHDD     DiskKind = "HDD"
	DiskUnknown DiskKind = "Unknown"
)

// DiskMetrics contains usage for a single disk in bytes.
type DiskMetrics struct {
	Name  string
	Kind  DiskKind
	Used  uint64
	Total uint64
}

// Percent returns used/total*100, or 0 when total is 0.
func Percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
