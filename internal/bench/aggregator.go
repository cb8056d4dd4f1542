package bench

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregator collects the per-frame histories of one configuration.
// A fresh Aggregator is used for every configuration.
type Aggregator struct {
	fps    []float64
	cpu    []float64
	gpu    []float64
	frames int
}

// NewAggregator returns an empty aggregator. sizeHint preallocates histories.
func NewAggregator(sizeHint int) *Aggregator {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Aggregator{
		fps: make([]float64, 0, sizeHint),
		cpu: make([]float64, 0, sizeHint),
		gpu: make([]float64, 0, sizeHint),
	}
}

// AddFrame counts one presented frame.
func (a *Aggregator) AddFrame() { a.frames++ }

// AddFPS records a frame-rate sample.
func (a *Aggregator) AddFPS(v float64) { a.fps = append(a.fps, v) }

// AddCPU records a CPU utilisation sample.
func (a *Aggregator) AddCPU(v float64) { a.cpu = append(a.cpu, v) }

// AddGPU records a GPU load sample.
func (a *Aggregator) AddGPU(v float64) { a.gpu = append(a.gpu, v) }

// Frames is the number of frames presented so far.
func (a *Aggregator) Frames() int { return a.frames }

// Lens returns the history lengths (fps, cpu, gpu).
func (a *Aggregator) Lens() (fps, cpu, gpu int) {
	return len(a.fps), len(a.cpu), len(a.gpu)
}

// Stats is the reduced form of an Aggregator.
type Stats struct {
	AvgFPS      float64
	MinFPS      float64
	MaxFPS      float64
	AvgCPU      float64
	AvgGPU      float64
	TotalFrames int
}

// Stats reduces the histories. Empty histories reduce to zero.
func (a *Aggregator) Stats() Stats {
	s := Stats{TotalFrames: a.frames}
	if len(a.fps) > 0 {
		s.AvgFPS = stat.Mean(a.fps, nil)
		s.MinFPS = floats.Min(a.fps)
		s.MaxFPS = floats.Max(a.fps)
	}
	if len(a.cpu) > 0 {
		s.AvgCPU = stat.Mean(a.cpu, nil)
	}
	if len(a.gpu) > 0 {
		s.AvgGPU = stat.Mean(a.gpu, nil)
	}
	return s
}
