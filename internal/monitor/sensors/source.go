// Package sensors reads host telemetry through gopsutil.
package sensors

import (
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/rileyhilliard/rhino/internal/logger"
	"github.com/rileyhilliard/rhino/internal/monitor"
)

// readers are the gopsutil calls the Source makes. Tests replace them.
type readers struct {
	hostInfo     func() (*host.InfoStat, error)
	temperatures func() ([]host.TemperatureStat, error)
	cpuCounts    func(logical bool) (int, error)
	cpuPercent   func(interval time.Duration, perCPU bool) ([]float64, error)
	cpuInfo      func() ([]cpu.InfoStat, error)
	virtualMem   func() (*mem.VirtualMemoryStat, error)
	partitions   func(all bool) ([]disk.PartitionStat, error)
	usage        func(path string) (*disk.UsageStat, error)
	diskKind     func(device string) monitor.DiskKind
}

func systemReaders() readers {
	return readers{
		hostInfo:     host.Info,
		temperatures: host.SensorsTemperatures,
		cpuCounts:    cpu.Counts,
		cpuPercent:   cpu.Percent,
		cpuInfo:      cpu.Info,
		virtualMem:   mem.VirtualMemory,
		partitions:   disk.Partitions,
		usage:        disk.Usage,
		diskKind:     diskKind,
	}
}

// Source is the gopsutil-backed monitor.SensorSource.
// Every method is best effort: failures are logged at debug level and the
// affected value comes back empty.
type Source struct {
	p        readers
	log      logger.Logger
	cpuModel string
}

// NewSource creates a source reading the local machine.
func NewSource(log logger.Logger) *Source {
	return newSource(systemReaders(), log)
}

func newSource(p readers, log logger.Logger) *Source {
	if log == nil {
		log = logger.Noop()
	}
	s := &Source{p: p, log: log}

	// Utilization is a delta since the previous call, so take the baseline now.
	if _, err := p.cpuPercent(0, true); err != nil {
		log.Debug("cpu baseline: %v", err)
	}

	if infos, err := p.cpuInfo(); err != nil {
		log.Debug("cpu info: %v", err)
	} else if len(infos) > 0 {
		s.cpuModel = strings.TrimSpace(infos[0].ModelName)
	}

	return s
}

// HostInfo returns the hostname, OS and CPU model.
func (s *Source) HostInfo() monitor.HostInfo {
	h := monitor.HostInfo{CPUModel: s.cpuModel}
	info, err := s.p.hostInfo()
	if err != nil {
		s.log.Debug("host info: %v", err)
	}
	if info == nil {
		return h
	}
	h.Hostname = info.Hostname
	h.OSName = info.Platform
	h.OSVersion = info.PlatformVersion
	return h
}

// CPUSample returns per-core utilization since the previous call plus every
// temperature reading the OS exposes.
func (s *Source) CPUSample() monitor.CPUSample {
	perCore, err := s.p.cpuPercent(0, true)
	if err != nil {
		s.log.Debug("cpu percent: %v", err)
		perCore = nil
	}

	cores, err := s.p.cpuCounts(true)
	if err != nil {
		s.log.Debug("cpu counts: %v", err)
		cores = len(perCore)
	}

	return monitor.CPUSample{
		Cores:        cores,
		PerCore:      perCore,
		Temperatures: s.temperatures(),
	}
}

func (s *Source) temperatures() []float64 {
	// Partial results come back alongside a warnings error; keep them.
	stats, err := s.p.temperatures()
	if err != nil {
		s.log.Debug("temperatures: %v", err)
	}

	stats = append([]host.TemperatureStat(nil), stats...)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].SensorKey < stats[j].SensorKey
	})

	var temps []float64
	for _, t := range stats {
		// Unpopulated sensors report 0
		if t.Temperature <= 0 {
			continue
		}
		temps = append(temps, t.Temperature)
	}
	return temps
}

// MemorySample returns physical memory usage.
func (s *Source) MemorySample() monitor.MemorySample {
	vm, err := s.p.virtualMem()
	if err != nil || vm == nil {
		s.log.Debug("virtual memory: %v", err)
		return monitor.MemorySample{}
	}
	return monitor.MemorySample{Total: vm.Total, Used: vm.Used}
}

// DiskSample returns one entry per physical device, ordered by device name.
func (s *Source) DiskSample() []monitor.DiskSample {
	partitions, err := s.p.partitions(false)
	if err != nil {
		s.log.Debug("disk partitions: %v", err)
	}

	seen := make(map[string]bool, len(partitions))
	var disks []monitor.DiskSample
	for _, part := range partitions {
		if part.Device != "" && seen[part.Device] {
			continue
		}

		usage, err := s.p.usage(part.Mountpoint)
		if err != nil {
			s.log.Debug("disk usage for %s: %v", part.Mountpoint, err)
			continue
		}
		seen[part.Device] = true

		disks = append(disks, monitor.DiskSample{
			Name:      part.Device,
			Kind:      s.p.diskKind(part.Device),
			Total:     usage.Total,
			Available: usage.Free,
		})
	}

	sort.SliceStable(disks, func(i, j int) bool {
		return disks[i].Name < disks[j].Name
	})
	return disks
}
