package telemetry

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const bytesPerGiB = 1 << 30

// Probe reads host capabilities once and host utilisation every frame.
type Probe struct {
	gpu GPUProvider

	cpuCounts  func(ctx context.Context, logical bool) (int, error)
	cpuInfo    func(ctx context.Context) ([]cpu.InfoStat, error)
	cpuPercent func(ctx context.Context) ([]float64, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// NewProbe returns a probe backed by gopsutil. A nil gpu means Unavailable.
func NewProbe(gpu GPUProvider) *Probe {
	if gpu == nil {
		gpu = Unavailable{}
	}
	return &Probe{
		gpu:       gpu,
		cpuCounts: cpu.CountsWithContext,
		cpuInfo:   cpu.InfoWithContext,
		cpuPercent: func(ctx context.Context) ([]float64, error) {
			return cpu.PercentWithContext(ctx, 0, false)
		},
		virtualMem: mem.VirtualMemoryWithContext,
	}
}

// GPU returns the provider chosen for this probe.
func (p *Probe) GPU() GPUProvider {
	return p.gpu
}

// Host collects the static snapshot. Core counts and memory are required;
// frequency is optional and left nil when unknown.
func (p *Probe) Host(ctx context.Context) (HostInfo, error) {
	var info HostInfo
	var err error

	if info.PhysicalCores, err = p.cpuCounts(ctx, false); err != nil {
		return info, errors.Wrap(err, "counting physical cores")
	}
	if info.LogicalCores, err = p.cpuCounts(ctx, true); err != nil {
		return info, errors.Wrap(err, "counting logical cores")
	}
	if stats, err := p.cpuInfo(ctx); err == nil {
		var peak float64
		for _, s := range stats {
			if s.Mhz > peak {
				peak = s.Mhz
			}
		}
		if peak > 0 {
			info.CPUFreqMHz = &peak
		}
	}
	vm, err := p.virtualMem(ctx)
	if err != nil {
		return info, errors.Wrap(err, "reading virtual memory")
	}
	info.RAMGiB = float64(vm.Total) / bytesPerGiB

	info.GPUAvailable = p.gpu.Available()
	info.GPUs = p.gpu.Devices(ctx)
	if info.GPUs == nil {
		info.GPUs = []GPUInfo{}
	}
	info.GPUCount = len(info.GPUs)
	return info, nil
}

// Sample takes the per-frame reading. Failures read as zero rather than abort
// the frame loop.
func (p *Probe) Sample(ctx context.Context) Sample {
	var s Sample
	if pct, err := p.cpuPercent(ctx); err == nil && len(pct) > 0 {
		s.CPUPercent = pct[0]
	}
	if vm, err := p.virtualMem(ctx); err == nil {
		s.RAMPercent = vm.UsedPercent
	}
	s.GPU = p.gpu.Usage(ctx)
	return s
}

// AvailableRAMGiB is the memory currently free for new allocations.
func (p *Probe) AvailableRAMGiB(ctx context.Context) (float64, error) {
	vm, err := p.virtualMem(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "reading virtual memory")
	}
	return float64(vm.Available) / bytesPerGiB, nil
}
