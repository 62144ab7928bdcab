package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/rhino/internal/monitor"
)

type fakeSource struct {
	temps []float64
	disks []monitor.DiskSample
}

func (s fakeSource) HostInfo() monitor.HostInfo { return monitor.HostInfo{} }

func (s fakeSource) CPUSample() monitor.CPUSample {
	return monitor.CPUSample{Cores: 1, PerCore: []float64{1}, Temperatures: s.temps}
}

func (s fakeSource) MemorySample() monitor.MemorySample { return monitor.MemorySample{} }

func (s fakeSource) DiskSample() []monitor.DiskSample { return s.disks }

func TestCPUTemperatureCheck(t *testing.T) {
	result := (&CPUTemperatureCheck{Source: fakeSource{}}).Run()
	assert.Equal(t, StatusWarn, result.Status)
	assert.Contains(t, result.Suggestion, "elevated privileges")

	result = (&CPUTemperatureCheck{Source: fakeSource{temps: []float64{45, 47}}}).Run()
	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "2 CPU temperature sensors readable", result.Message)
}

func TestDiskCheck(t *testing.T) {
	tests := []struct {
		name    string
		disks   []monitor.DiskSample
		want    CheckStatus
		message string
	}{
		{name: "none", want: StatusWarn, message: "No mounted disks found"},
		{
			name:    "one ssd",
			disks:   []monitor.DiskSample{{Name: "nvme0n1", Kind: monitor.DiskSSD, Total: 500e9}},
			want:    StatusPass,
			message: "1 disk found, 500 GB total",
		},
		{
			name: "unknown kinds",
			disks: []monitor.DiskSample{
				{Name: "sda", Kind: monitor.DiskHDD, Total: 1e12},
				{Name: "loop0", Kind: monitor.DiskUnknown, Total: 500e9},
				{Name: "x"},
			},
			want:    StatusPass,
			message: "3 disks found, 1.5 TB total (2 of unknown type)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := (&DiskCheck{Source: fakeSource{disks: tt.disks}}).Run()
			assert.Equal(t, tt.want, result.Status)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}
