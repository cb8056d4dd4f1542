package telemetry

import (
	"bytes"
	"context"
	"encoding/csv"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GPUProvider is decided once at startup. Frame code asks it for usage without
// having to care whether a GPU exists.
type GPUProvider interface {
	Available() bool
	Devices(ctx context.Context) []GPUInfo
	// Usage never fails: a query error yields no entries for that frame.
	Usage(ctx context.Context) []GPUUsage
}

// Unavailable is the provider used when no GPU telemetry can be read.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }
func (Unavailable) Devices(context.Context) []GPUInfo { return nil }
func (Unavailable) Usage(context.Context) []GPUUsage { return nil }

const nvidiaSMI = "nvidia-smi"

// commandRunner runs an external command and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// NVIDIA reads GPU telemetry through nvidia-smi.
type NVIDIA struct {
	path    string
	run     commandRunner
	devices []GPUInfo
}

// DetectGPU returns an NVIDIA provider when nvidia-smi is installed and lists at
// least one device, Unavailable otherwise.
func DetectGPU(ctx context.Context) GPUProvider {
	path, err := exec.LookPath(nvidiaSMI)
	if err != nil {
		return Unavailable{}
	}
	return detectWith(ctx, path, execRunner)
}

func detectWith(ctx context.Context, path string, run commandRunner) GPUProvider {
	n := &NVIDIA{path: path, run: run}
	devices, err := n.queryDevices(ctx)
	if err != nil || len(devices) == 0 {
		return Unavailable{}
	}
	n.devices = devices
	return n
}

func (n *NVIDIA) Available() bool { return true }

// Devices returns the devices found at detection time.
func (n *NVIDIA) Devices(context.Context) []GPUInfo {
	out := make([]GPUInfo, len(n.devices))
	copy(out, n.devices)
	return out
}

func (n *NVIDIA) Usage(ctx context.Context) []GPUUsage {
	rows, err := n.query(ctx, "utilization.gpu,memory.used,memory.total")
	if err != nil {
		return nil
	}
	out := make([]GPUUsage, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			return nil
		}
		load, err1 := parseFloat(r[0])
		used, err2 := parseFloat(r[1])
		total, err3 := parseFloat(r[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil
		}
		u := GPUUsage{Load: load}
		if total > 0 {
			u.Memory = used / total * 100
		}
		out = append(out, u)
	}
	return out
}

func (n *NVIDIA) queryDevices(ctx context.Context) ([]GPUInfo, error) {
	rows, err := n.query(ctx, "name,memory.total,driver_version")
	if err != nil {
		return nil, err
	}
	devices := make([]GPUInfo, 0, len(rows))
	for _, r := range rows {
		if len(r) < 3 {
			return nil, errors.Errorf("unexpected nvidia-smi row %q", r)
		}
		mem, err := parseFloat(r[1])
		if err != nil {
			return nil, errors.Wrap(err, "parsing GPU memory")
		}
		devices = append(devices, GPUInfo{Name: r[0], MemoryTotal: mem, Driver: r[2]})
	}
	return devices, nil
}

func (n *NVIDIA) query(ctx context.Context, fields string) ([][]string, error) {
	out, err := n.run(ctx, n.path, "--query-gpu="+fields, "--format=csv,noheader,nounits")
	if err != nil {
		return nil, errors.Wrap(err, "running nvidia-smi")
	}
	r := csv.NewReader(bytes.NewReader(out))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parsing nvidia-smi output")
	}
	return rows, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
