package bench

import (
	"context"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"render-bench/internal/scene"
)

// Plan is the list of configurations to run: every variant crossed with every
// count, variants outermost.
type Plan struct {
	Name     string
	Counts   []int
	Variants []Variant
	Duration time.Duration
}

// Validate checks that the plan has something to run and that every count is positive.
func (p Plan) Validate() error {
	if len(p.Counts) == 0 {
		return errors.Errorf("plan %q has no triangle counts", p.Name)
	}
	if len(p.Variants) == 0 {
		return errors.Errorf("plan %q has no variants", p.Name)
	}
	for _, c := range p.Counts {
		if c <= 0 {
			return errors.Errorf("plan %q: triangle count %d must be positive", p.Name, c)
		}
	}
	return nil
}

// Size is the number of configurations the plan describes.
func (p Plan) Size() int {
	return len(p.Counts) * len(p.Variants)
}

// Outcome is what a driver run produced. Cancelled is set when the user closed
// the window; Results then holds only the configurations that completed.
type Outcome struct {
	Results   []Result
	Cancelled bool
}

// Driver runs plans against one renderer and sampler.
type Driver struct {
	renderer Renderer
	sampler  Sampler
	scene    *scene.Scene
	now      func() time.Time
}

// NewDriver returns a driver that populates scn for every configuration.
func NewDriver(r Renderer, s Sampler, scn *scene.Scene) *Driver {
	return &Driver{renderer: r, sampler: s, scene: scn, now: time.Now}
}

// Run executes the plan. A window close ends the run early with a cancelled
// outcome and nil error; context cancellation and renderer errors are returned.
func (d *Driver) Run(ctx context.Context, plan Plan) (Outcome, error) {
	if err := plan.Validate(); err != nil {
		return Outcome{}, err
	}
	out := Outcome{Results: make([]Result, 0, plan.Size())}
	loop := NewLoop(d.renderer, d.sampler, plan.Duration)
	loop.now = d.now

	for _, v := range plan.Variants {
		for _, count := range plan.Counts {
			grip.Info(message.Fields{
				"message":   "starting configuration",
				"plan":      plan.Name,
				"triangles": count,
				"variant":   v.String(),
			})

			d.scene.Populate(count, v.Style())
			if err := d.renderer.Configure(v, count); err != nil {
				return out, errors.Wrapf(err, "configuring %s with %d triangles", v, count)
			}

			stats, err := loop.Run(ctx, d.scene)
			if errors.Is(err, ErrQuitRequested) {
				grip.Notice(message.Fields{
					"message":   "run cancelled by user",
					"plan":      plan.Name,
					"completed": len(out.Results),
					"requested": plan.Size(),
				})
				loop.reset()
				out.Cancelled = true
				return out, nil
			}
			if err != nil {
				return out, errors.Wrapf(err, "running %s with %d triangles", v, count)
			}

			res := NewResult(count, v, stats)
			out.Results = append(out.Results, res)
			loop.reset()

			fields := message.Fields{
				"message":   "configuration complete",
				"plan":      plan.Name,
				"triangles": count,
				"variant":   v.String(),
				"avg_fps":   res.AvgFPS,
				"avg_cpu":   res.AvgCPU,
				"frames":    res.TotalFrames,
			}
			if res.AvgGPU > 0 {
				fields["avg_gpu"] = res.AvgGPU
			}
			grip.Info(fields)
		}
	}
	return out, nil
}
