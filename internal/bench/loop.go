package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"render-bench/internal/scene"
	"render-bench/internal/telemetry"
)

// DefaultDuration is how long each configuration renders.
const DefaultDuration = 5 * time.Second

// maxHistoryHint caps history preallocation; longer runs grow by append.
const maxHistoryHint = 4096

// ErrQuitRequested is returned when the user closes the window mid-configuration.
var ErrQuitRequested = errors.New("quit requested")

// Renderer is the graphics context the loop drives. All calls happen on the
// goroutine that opened it.
type Renderer interface {
	// Configure prepares lighting and textures for a variant. Called once per configuration.
	Configure(v Variant, count int) error
	// ShouldQuit polls window events and reports a close request.
	ShouldQuit() bool
	// Render clears, draws every primitive and presents the frame.
	Render(prims []scene.Primitive)
}

// Sampler takes the per-frame host utilisation reading.
type Sampler interface {
	Sample(ctx context.Context) telemetry.Sample
}

// State is the sample loop's position in a configuration's lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateQuitRequested
	StateDurationElapsed
	StateReported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateQuitRequested:
		return "quit-requested"
	case StateDurationElapsed:
		return "duration-elapsed"
	case StateReported:
		return "reported"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Loop renders one configuration for a fixed wall-clock duration and reduces
// the samples it collected.
type Loop struct {
	renderer Renderer
	sampler  Sampler
	duration time.Duration
	now      func() time.Time
	state    State
	lastRun  *Aggregator
}

// NewLoop returns an idle loop. A non-positive duration means DefaultDuration.
func NewLoop(r Renderer, s Sampler, duration time.Duration) *Loop {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Loop{renderer: r, sampler: s, duration: duration, now: time.Now}
}

// State returns where the loop currently is.
func (l *Loop) State() State { return l.state }

// Run renders scn until the duration elapses, the user quits, or ctx ends.
// Quit returns ErrQuitRequested; ctx ending returns ctx.Err(). In both cases the
// statistics are discarded.
//
// Frame rate is measured between successive samples rather than around the
// draw, so the first sample also carries whatever ran between the anchor and
// the first frame.
func (l *Loop) Run(ctx context.Context, scn *scene.Scene) (Stats, error) {
	agg := NewAggregator(historyHint(l.duration))
	l.lastRun = agg
	l.state = StateRunning
	start := l.now()
	last := start

	for {
		if err := ctx.Err(); err != nil {
			l.state = StateIdle
			return Stats{}, errors.WithStack(err)
		}
		if l.renderer.ShouldQuit() {
			l.state = StateQuitRequested
			return Stats{}, ErrQuitRequested
		}
		now := l.now()
		if now.Sub(start) >= l.duration {
			l.state = StateDurationElapsed
			break
		}

		scn.Advance(float32(now.Sub(last).Seconds()))
		l.renderer.Render(scn.Primitives())
		agg.AddFrame()

		sampledAt := l.now()
		if elapsed := sampledAt.Sub(last); elapsed > 0 {
			agg.AddFPS(1 / elapsed.Seconds())
			last = sampledAt
		}

		s := l.sampler.Sample(ctx)
		agg.AddCPU(s.CPUPercent)
		if load, ok := s.GPULoad(); ok {
			agg.AddGPU(load)
		}
	}

	stats := agg.Stats()
	fps, cpu, gpu := agg.Lens()
	grip.Debug(message.Fields{
		"message":     "configuration sampled",
		"frames":      stats.TotalFrames,
		"fps_samples": fps,
		"cpu_samples": cpu,
		"gpu_samples": gpu,
	})
	l.state = StateReported
	return stats, nil
}

// historyHint guesses history length at one sample per millisecond, capped at maxHistoryHint.
func historyHint(d time.Duration) int {
	return int(min(d/time.Millisecond, maxHistoryHint))
}

// reset returns a reported or quit loop to idle.
func (l *Loop) reset() { l.state = StateIdle }
