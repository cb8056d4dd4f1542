package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSMI struct {
	devices string
	usage   string
	fail    bool
	calls   []string
}

func (f *fakeSMI) run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(args, " "))
	if f.fail {
		return nil, errors.New("driver not loaded")
	}
	if strings.Contains(args[0], "utilization.gpu") {
		return []byte(f.usage), nil
	}
	return []byte(f.devices), nil
}

func TestDetectParsesDevices(t *testing.T) {
	smi := &fakeSMI{devices: "NVIDIA GeForce RTX 3060, 12288, 535.54.03\nTesla T4, 15360, 535.54.03\n"}
	gpu := detectWith(context.Background(), "/usr/bin/nvidia-smi", smi.run)
	require.True(t, gpu.Available())

	devices := gpu.Devices(context.Background())
	require.Len(t, devices, 2)
	assert.Equal(t, GPUInfo{Name: "NVIDIA GeForce RTX 3060", MemoryTotal: 12288, Driver: "535.54.03"}, devices[0])
	assert.Equal(t, "Tesla T4", devices[1].Name)
	assert.Contains(t, smi.calls[0], "--format=csv,noheader,nounits")
}

func TestDetectFallsBackWhenQueryFails(t *testing.T) {
	smi := &fakeSMI{fail: true}
	gpu := detectWith(context.Background(), "nvidia-smi", smi.run)
	assert.False(t, gpu.Available())
	assert.IsType(t, Unavailable{}, gpu)
}

func TestDetectFallsBackWithoutDevices(t *testing.T) {
	smi := &fakeSMI{devices: ""}
	gpu := detectWith(context.Background(), "nvidia-smi", smi.run)
	assert.False(t, gpu.Available())
}

func TestUsage(t *testing.T) {
	smi := &fakeSMI{
		devices: "RTX, 8000, 1\n",
		usage:   "37, 2000, 8000\n",
	}
	gpu := detectWith(context.Background(), "nvidia-smi", smi.run)
	usage := gpu.Usage(context.Background())
	require.Len(t, usage, 1)
	assert.Equal(t, 37.0, usage[0].Load)
	assert.Equal(t, 25.0, usage[0].Memory)
}

func TestUsageSwallowsFailures(t *testing.T) {
	smi := &fakeSMI{devices: "RTX, 8000, 1\n", usage: "37, 2000, 8000\n"}
	gpu := detectWith(context.Background(), "nvidia-smi", smi.run)

	smi.fail = true
	assert.Empty(t, gpu.Usage(context.Background()))

	smi.fail = false
	smi.usage = "[N/A], 1, 2\n"
	assert.Empty(t, gpu.Usage(context.Background()))
}

func newFakeProbe(gpu GPUProvider) *Probe {
	return &Probe{
		gpu: gpu,
		cpuCounts: func(_ context.Context, logical bool) (int, error) {
			if logical {
				return 16, nil
			}
			return 8, nil
		},
		cpuInfo: func(context.Context) ([]cpu.InfoStat, error) {
			return []cpu.InfoStat{{Mhz: 3400}, {Mhz: 4800}}, nil
		},
		cpuPercent: func(context.Context) ([]float64, error) {
			return []float64{12.5}, nil
		},
		virtualMem: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 16 << 30, Available: 4 << 30, UsedPercent: 75}, nil
		},
	}
}

func TestHost(t *testing.T) {
	smi := &fakeSMI{devices: "RTX, 8000, 1\n"}
	p := newFakeProbe(detectWith(context.Background(), "nvidia-smi", smi.run))

	info, err := p.Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, info.PhysicalCores)
	assert.Equal(t, 16, info.LogicalCores)
	require.NotNil(t, info.CPUFreqMHz)
	assert.Equal(t, 4800.0, *info.CPUFreqMHz)
	assert.Equal(t, 16.0, info.RAMGiB)
	assert.True(t, info.GPUAvailable)
	assert.Equal(t, 1, info.GPUCount)

	free, err := p.AvailableRAMGiB(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, free)
}

func TestHostWithoutGPUOrFrequency(t *testing.T) {
	p := newFakeProbe(nil)
	p.gpu = Unavailable{}
	p.cpuInfo = func(context.Context) ([]cpu.InfoStat, error) {
		return nil, errors.New("not supported")
	}
	info, err := p.Host(context.Background())
	require.NoError(t, err)
	assert.Nil(t, info.CPUFreqMHz)
	assert.False(t, info.GPUAvailable)
	assert.Zero(t, info.GPUCount)
	assert.NotNil(t, info.GPUs)
}

func TestHostPropagatesMemoryError(t *testing.T) {
	p := newFakeProbe(Unavailable{})
	p.virtualMem = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return nil, errors.New("no /proc")
	}
	_, err := p.Host(context.Background())
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	p := newFakeProbe(Unavailable{})
	s := p.Sample(context.Background())
	assert.Equal(t, 12.5, s.CPUPercent)
	assert.Equal(t, 75.0, s.RAMPercent)
	_, ok := s.GPULoad()
	assert.False(t, ok)

	smi := &fakeSMI{devices: "A, 1, 1\nB, 1, 1\n", usage: "10, 1, 2\n90, 2, 2\n"}
	p.gpu = detectWith(context.Background(), "nvidia-smi", smi.run)
	s = p.Sample(context.Background())
	load, ok := s.GPULoad()
	require.True(t, ok)
	assert.Equal(t, 10.0, load)
	assert.Len(t, s.GPU, 2)
}

func TestNewProbeDefaultsToUnavailable(t *testing.T) {
	p := NewProbe(nil)
	assert.False(t, p.GPU().Available())
}
