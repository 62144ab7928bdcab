package gpu

import (
	"testing"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default is nvml", func(t *testing.T) {
		d, err := New("", 0)
		require.NoError(t, err)
		assert.IsType(t, &NVMLDriver{}, d)
	})

	t.Run("nvidia-smi", func(t *testing.T) {
		d, err := New(BackendSMI, 1)
		require.NoError(t, err)
		require.IsType(t, &SMIDriver{}, d)
		assert.Equal(t, 1, d.(*SMIDriver).Index)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New("rocm", 0)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := New(BackendNVML, -1)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}

func TestFormatCudaVersion(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{12020, "12.2"},
		{11040, "11.4"},
		{12000, "12.0"},
		{10010, "10.1"},
		{0, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCudaVersion(tt.in))
		})
	}
}

func TestArchitectureFromComputeCap(t *testing.T) {
	tests := []struct {
		cc   string
		want string
	}{
		{"3.7", ArchKepler},
		{"5.2", ArchMaxwell},
		{"6.1", ArchPascal},
		{"7.0", ArchVolta},
		{"7.5", ArchTuring},
		{"8.0", ArchAmpere},
		{"8.6", ArchAmpere},
		{"8.9", ArchAda},
		{"9.0", ArchHopper},
		{"12.0", ArchBlackwell},
		{"2.1", ArchUnknown},
		{"garbage", ArchUnknown},
		{" 8.6 ", ArchAmpere},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.cc, func(t *testing.T) {
			assert.Equal(t, tt.want, ArchitectureFromComputeCap(tt.cc))
		})
	}
}
