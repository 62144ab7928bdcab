package monitor

import (
	"github.com/rileyhilliard/rhino/internal/logger"
)

// Builder assembles one Snapshot per cycle from the sensor source and the
// GPU device opened at startup.
type Builder struct {
	source   SensorSource
	device   GPUDevice
	identity GPUIdentity
	policy   GPUFailurePolicy
	log      logger.Logger
}

// NewBuilder creates a builder. The GPU identity is fixed for the lifetime
// of the builder.
func NewBuilder(source SensorSource, device GPUDevice, identity GPUIdentity) *Builder {
	return &Builder{
		source:   source,
		device:   device,
		identity: identity,
		policy:   GPUDegrade,
		log:      logger.Noop(),
	}
}

// SetPolicy sets how per-cycle GPU failures are handled.
func (b *Builder) SetPolicy(p GPUFailurePolicy) {
	b.policy = p
}

// SetLogger sets the logger used for degraded readings.
func (b *Builder) SetLogger(l logger.Logger) {
	b.log = l
}

// Build queries every source once and returns the cycle's Snapshot.
// The only error is a GPU failure escalated by the fatal policy.
func (b *Builder) Build() (Snapshot, error) {
	gpu, err := b.sampleGPU()
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Host:   b.sampleHost(),
		CPU:    b.sampleCPU(),
		GPU:    gpu,
		Memory: b.sampleMemory(),
		Disks:  b.sampleDisks(),
	}, nil
}

func (b *Builder) sampleHost() HostInfo {
	h := b.source.HostInfo()
	return HostInfo{
		Hostname:  orDefault(h.Hostname, DefaultHostname),
		OSName:    orDefault(h.OSName, DefaultOSName),
		OSVersion: orDefault(h.OSVersion, DefaultOSVersion),
		CPUModel:  orDefault(h.CPUModel, DefaultCPUModel),
	}
}

func (b *Builder) sampleCPU() CPUMetrics {
	s := b.source.CPUSample()
	cores := s.Cores
	if cores < 0 {
		cores = 0
	}
	return CPUMetrics{
		Cores:        cores,
		PerCore:      append([]float64(nil), s.PerCore...),
		Temperatures: append([]float64(nil), s.Temperatures...),
	}
}

func (b *Builder) sampleMemory() MemoryMetrics {
	s := b.source.MemorySample()
	return MemoryMetrics{Used: s.Used, Total: s.Total}
}

func (b *Builder) sampleDisks() []DiskMetrics {
	samples := b.source.DiskSample()
	disks := make([]DiskMetrics, 0, len(samples))
	for _, s := range samples {
		kind := s.Kind
		if kind == "" {
			kind = DiskUnknown
		}
		var used uint64
		if s.Available <= s.Total {
			used = s.Total - s.Available
		}
		disks = append(disks, DiskMetrics{
			Name:  orDefault(s.Name, DefaultDiskName),
			Kind:  kind,
			Used:  used,
			Total: s.Total,
		})
	}
	return disks
}

func (b *Builder) sampleGPU() (GPUMetrics, error) {
	m := GPUMetrics{Identity: b.identity}
	if b.device == nil {
		return m, nil
	}

	if r, ok := b.device.(Refresher); ok {
		if err := r.Refresh(); err != nil {
			// Nothing can be read without a fresh batch.
			return m, b.policy.apply("sample", err, b.log)
		}
	}

	if u, err := b.device.UtilizationRates(); err != nil {
		if err := b.policy.apply("utilization", err, b.log); err != nil {
			return m, err
		}
	} else {
		m.Utilization = &u.GPU
	}

	if t, err := b.device.Temperature(SensorGPU); err != nil {
		if err := b.policy.apply("temperature", err, b.log); err != nil {
			return m, err
		}
	} else {
		m.Temperature = &t
	}

	if c, err := b.device.ClockInfo(ClockGraphics); err != nil {
		if err := b.policy.apply("graphics clock", err, b.log); err != nil {
			return m, err
		}
	} else {
		m.GraphicsClock = &c
	}

	if mem, err := b.device.MemoryInfo(); err != nil {
		if err := b.policy.apply("memory", err, b.log); err != nil {
			return m, err
		}
	} else {
		m.Memory = &mem
	}

	if c, err := b.device.ClockInfo(ClockMemory); err != nil {
		if err := b.policy.apply("memory clock", err, b.log); err != nil {
			return m, err
		}
	} else {
		m.MemoryClock = &c
	}

	return m, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
