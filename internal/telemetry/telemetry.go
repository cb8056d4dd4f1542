package telemetry

// HostInfo is the static machine snapshot written into every report.
type HostInfo struct {
	PhysicalCores int       `json:"cpu"`
	LogicalCores  int       `json:"cpu_logical"`
	CPUFreqMHz    *float64  `json:"cpu_freq"`
	RAMGiB        float64   `json:"ram"`
	GPUAvailable  bool      `json:"gpu_available"`
	GPUCount      int       `json:"gpu_count"`
	GPUs          []GPUInfo `json:"gpu_info"`
}

// GPUInfo describes one discrete GPU. MemoryTotal is in MiB.
type GPUInfo struct {
	Name        string  `json:"name"`
	MemoryTotal float64 `json:"memory_total"`
	Driver      string  `json:"driver"`
}

// GPUUsage is one device's instantaneous load and memory utilisation, both 0..100.
type GPUUsage struct {
	Load   float64
	Memory float64
}

// Sample is the cheap per-frame reading.
// GPU is empty when no GPU is present or the query failed for this frame.
type Sample struct {
	CPUPercent float64
	RAMPercent float64
	GPU        []GPUUsage
}

// GPULoad returns the first device's load and whether there was one.
func (s Sample) GPULoad() (float64, bool) {
	if len(s.GPU) == 0 {
		return 0, false
	}
	return s.GPU[0].Load, true
}
