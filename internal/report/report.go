// Package report persists benchmark runs as JSON and prints console summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/cheynewallace/tabby"
	"github.com/pkg/errors"

	"render-bench/internal/bench"
	"render-bench/internal/telemetry"
)

// File names used by each suite, relative to the output directory.
const (
	BasicFile    = "benchmark_sem_textura.json"
	LightingFile = "benchmark_lighting.json"
	TextureFile  = "benchmark_textura.json"
)

// Report is one persisted run of a suite.
type Report struct {
	Timestamp  string             `json:"timestamp"`
	SystemInfo telemetry.HostInfo `json:"system_info"`
	Results    []bench.Result     `json:"results"`
	Cancelled  bool               `json:"cancelled,omitempty"`
}

// New stamps a report with the current time. Results are never nil so an empty
// run still serialises as an empty list.
func New(host telemetry.HostInfo, out bench.Outcome) Report {
	return newAt(time.Now(), host, out)
}

func newAt(ts time.Time, host telemetry.HostInfo, out bench.Outcome) Report {
	results := out.Results
	if results == nil {
		results = []bench.Result{}
	}
	return Report{
		Timestamp:  ts.Format(time.RFC3339),
		SystemInfo: host,
		Results:    results,
		Cancelled:  out.Cancelled,
	}
}

// Write saves r to path as indented JSON, creating the parent directory if needed.
func Write(path string, r Report) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating report directory %s", dir)
		}
	}
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "writing report %s", path)
	}
	return nil
}

// Read loads a report previously written by Write.
func Read(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, errors.Wrapf(err, "reading report %s", path)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, errors.Wrapf(err, "decoding report %s", path)
	}
	return r, nil
}

// PrintSummary writes one table row per result.
func PrintSummary(w io.Writer, results []bench.Result) {
	t := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	t.AddHeader("TRIANGLES", "VARIANT", "AVG FPS", "MIN FPS", "MAX FPS", "CPU %", "GPU %", "FRAMES")
	for _, r := range results {
		label := r.VariantLabel()
		if label == "" {
			label = "-"
		}
		t.AddLine(
			r.TriangleCount,
			label,
			fmt.Sprintf("%.2f", r.AvgFPS),
			fmt.Sprintf("%.2f", r.MinFPS),
			fmt.Sprintf("%.2f", r.MaxFPS),
			fmt.Sprintf("%.1f", r.AvgCPU),
			fmt.Sprintf("%.1f", r.AvgGPU),
			r.TotalFrames,
		)
	}
	t.Print()
}
