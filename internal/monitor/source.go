package monitor

// SensorSource gives best-effort access to host sensors.
// Implementations never fail: unreadable values come back empty or zero and
// the Builder applies fallbacks.
type SensorSource interface {
	HostInfo() HostInfo
	CPUSample() CPUSample
	MemorySample() MemorySample
	DiskSample() []DiskSample
}

// CPUSample is one read of the CPU sensors.
type CPUSample struct {
	Cores        int
	PerCore      []float64
	Temperatures []float64
}

// MemorySample is one read of system memory in bytes.
type MemorySample struct {
	Total uint64
	Used  uint64
}

// DiskSample is one read of a disk in bytes.
type DiskSample struct {
	Name      string
	Kind      DiskKind
	Total     uint64
	Available uint64
}

// TemperatureSensor selects which GPU temperature to read.
type TemperatureSensor int

const (
	SensorGPU TemperatureSensor = iota
)

// ClockKind selects which GPU clock to read.
type ClockKind int

const (
	ClockGraphics ClockKind = iota
	ClockMemory
)

func (c ClockKind) String() string {
	switch c {
	case ClockGraphics:
		return "graphics"
	case ClockMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// GPUUtilization is the busy percentage of the GPU and its memory controller.
type GPUUtilization struct {
	GPU    uint32
	Memory uint32
}

// GPUDriver opens a GPU device. Init is called exactly once at startup and
// any error is fatal.
type GPUDriver interface {
	Init() (GPUDevice, GPUIdentity, error)
}

// GPUDevice is an initialized GPU handle queried every cycle.
type GPUDevice interface {
	UtilizationRates() (GPUUtilization, error)
	Temperature(sensor TemperatureSensor) (uint32, error)
	ClockInfo(clock ClockKind) (uint32, error)
	MemoryInfo() (GPUMemory, error)
	Close() error
}

// Refresher is implemented by devices that read all fields in one batch.
// The Builder calls Refresh once per cycle before querying fields.
type Refresher interface {
	Refresh() error
}
