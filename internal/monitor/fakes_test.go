package monitor

import (
	"context"
	"errors"
	"time"
)

type fakeSource struct {
	host   HostInfo
	cpu    []CPUSample
	memory []MemorySample
	disks  [][]DiskSample
	calls  int
}

func (f *fakeSource) HostInfo() HostInfo { return f.host }

func (f *fakeSource) CPUSample() CPUSample {
	s := f.cpu[f.calls%len(f.cpu)]
	return s
}

func (f *fakeSource) MemorySample() MemorySample {
	return f.memory[f.calls%len(f.memory)]
}

// DiskSample is called last by the Builder, so it advances the cycle.
func (f *fakeSource) DiskSample() []DiskSample {
	d := f.disks[f.calls%len(f.disks)]
	f.calls++
	return d
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		host: HostInfo{
			Hostname:  "workstation",
			OSName:    "ubuntu",
			OSVersion: "22.04",
			CPUModel:  "AMD Ryzen 7 5800X",
		},
		cpu:    []CPUSample{{Cores: 4, PerCore: []float64{10, 20, 30, 40}, Temperatures: []float64{48}}},
		memory: []MemorySample{{Total: 8e9, Used: 2e9}},
		disks:  [][]DiskSample{{{Name: "/dev/nvme0n1p2", Kind: DiskSSD, Total: 500e9, Available: 380e9}}},
	}
}

var errDriver = errors.New("driver hiccup")

type fakeDevice struct {
	util      GPUUtilization
	temp      uint32
	gfxClock  uint32
	memClock  uint32
	mem       GPUMemory
	failOn    map[string]bool
	refreshes int
	closed    bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		util:     GPUUtilization{GPU: 45, Memory: 12},
		temp:     65,
		gfxClock: 1800,
		memClock: 7000,
		mem:      GPUMemory{Used: 2e9, Total: 8e9},
		failOn:   map[string]bool{},
	}
}

func (d *fakeDevice) UtilizationRates() (GPUUtilization, error) {
	if d.failOn["utilization"] {
		return GPUUtilization{}, errDriver
	}
	return d.util, nil
}

func (d *fakeDevice) Temperature(TemperatureSensor) (uint32, error) {
	if d.failOn["temperature"] {
		return 0, errDriver
	}
	return d.temp, nil
}

func (d *fakeDevice) ClockInfo(c ClockKind) (uint32, error) {
	if d.failOn[c.String()+" clock"] {
		return 0, errDriver
	}
	if c == ClockMemory {
		return d.memClock, nil
	}
	return d.gfxClock, nil
}

func (d *fakeDevice) MemoryInfo() (GPUMemory, error) {
	if d.failOn["memory"] {
		return GPUMemory{}, errDriver
	}
	return d.mem, nil
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

type refreshingDevice struct {
	*fakeDevice
	err error
}

func (d *refreshingDevice) Refresh() error {
	d.refreshes++
	return d.err
}

type fakeScreen struct {
	clears int
	err    error
	// log records clears and writes in order.
	log *[]string
}

func (s *fakeScreen) Clear() error {
	s.clears++
	if s.log != nil {
		*s.log = append(*s.log, "clear")
	}
	return s.err
}

type recordingWriter struct {
	frames []string
	err    error
	log    *[]string
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.frames = append(w.frames, string(p))
	if w.log != nil {
		*w.log = append(*w.log, "write")
	}
	return len(p), nil
}

type fakeSleeper struct {
	calls []time.Duration
	// cancel, when set, is invoked after this many sleeps.
	cancelAfter int
	cancel      context.CancelFunc
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	if s.cancel != nil && len(s.calls) == s.cancelAfter {
		s.cancel()
	}
	return ctx.Err()
}
