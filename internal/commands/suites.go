package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"render-bench/internal/bench"
	"render-bench/internal/benchconfig"
	"render-bench/internal/graphics"
	"render-bench/internal/report"
	"render-bench/internal/scene"
	"render-bench/internal/telemetry"
	"render-bench/internal/texture"
)

const dumpFlagName = "dump"

// suite ties a plan to the report file it is written to.
type suite struct {
	plan   func(benchconfig.Config) (bench.Plan, error)
	output func(benchconfig.Config) string
}

var (
	basicSuite = suite{
		plan:   benchconfig.Config.BasicPlan,
		output: func(c benchconfig.Config) string { return c.Basic.Output },
	}
	lightingSuite = suite{
		plan:   benchconfig.Config.LightingPlan,
		output: func(c benchconfig.Config) string { return c.Lighting.Output },
	}
	textureSuite = suite{
		plan:   benchconfig.Config.TexturePlan,
		output: func(c benchconfig.Config) string { return c.Texture.Output },
	}
)

// Triangles is the random-colour throughput sweep.
func Triangles() cli.Command {
	return cli.Command{
		Name:  "triangles",
		Usage: "measure frame rate against triangle count with random colours",
		Flags: suiteFlags(),
		Action: func(c *cli.Context) error {
			return runSuites(c, basicSuite)
		},
	}
}

// Lighting sweeps the lighting presets.
func Lighting() cli.Command {
	return cli.Command{
		Name:  "lighting",
		Usage: "measure the cost of each lighting preset",
		Flags: suiteFlags(cli.StringSliceFlag{
			Name:  lightsFlagName,
			Usage: "preset to run (none, omnidirectional, spot, multiple), repeatable",
		}),
		Action: func(c *cli.Context) error {
			return runSuites(c, lightingSuite)
		},
	}
}

// Textures sweeps the checkerboard sizes, or writes them out with --dump.
func Textures() cli.Command {
	return cli.Command{
		Name:  "textures",
		Usage: "measure the cost of texture mapping at each checkerboard size",
		Flags: suiteFlags(
			cli.StringSliceFlag{
				Name:  sizesFlagName,
				Usage: "texture size to run (none, 64x64, 128x128, 256x256), repeatable",
			},
			cli.StringFlag{
				Name:  dumpFlagName,
				Usage: "write the checkerboards as PNG files to this directory instead of benchmarking",
			},
		),
		Action: func(c *cli.Context) error {
			if dir := c.String(dumpFlagName); dir != "" {
				paths, err := texture.Dump(dir)
				if err != nil {
					return errors.Wrap(err, "dumping textures")
				}
				for _, p := range paths {
					fmt.Fprintln(c.App.Writer, p)
				}
				return nil
			}
			return runSuites(c, textureSuite)
		},
	}
}

// All runs the three suites back to back in one window.
func All() cli.Command {
	return cli.Command{
		Name:  "all",
		Usage: "run the triangle, lighting and texture suites in sequence",
		Flags: suiteFlags(
			cli.StringSliceFlag{Name: lightsFlagName, Usage: "lighting presets, repeatable"},
			cli.StringSliceFlag{Name: sizesFlagName, Usage: "texture sizes, repeatable"},
		),
		Action: func(c *cli.Context) error {
			return runSuites(c, basicSuite, lightingSuite, textureSuite)
		},
	}
}

func runSuites(c *cli.Context, suites ...suite) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRunner(c.App.Writer).run(ctx, cfg, suites...)
}

// window is the renderer a runner opens once and shares across its suites.
type window interface {
	bench.Renderer
	Close()
}

// hostSampler reports the host once per run and samples it every frame.
type hostSampler interface {
	bench.Sampler
	Host(ctx context.Context) (telemetry.HostInfo, error)
}

// runner executes suites back to back in one window and writes a report per suite.
type runner struct {
	open    func(benchconfig.Config) (window, error)
	sampler func(context.Context) hostSampler
	out     io.Writer
}

func newRunner(out io.Writer) runner {
	return runner{
		open: func(cfg benchconfig.Config) (window, error) {
			return graphics.Open(graphics.Options{
				Width:  cfg.Width,
				Height: cfg.Height,
				Title:  cfg.Title,
				HUD:    cfg.HUD,
			})
		},
		sampler: func(ctx context.Context) hostSampler {
			return telemetry.NewProbe(telemetry.DetectGPU(ctx))
		},
		out: out,
	}
}

// run stops after the first suite whose window was closed; that suite's partial
// report is still written.
func (r runner) run(ctx context.Context, cfg benchconfig.Config, suites ...suite) error {
	sampler := r.sampler(ctx)
	host, err := sampler.Host(ctx)
	if err != nil {
		return errors.Wrap(err, "reading host information")
	}
	grip.Info(message.Fields{
		"message":       "host snapshot",
		"cpu":           host.PhysicalCores,
		"cpu_logical":   host.LogicalCores,
		"ram_gib":       host.RAMGiB,
		"gpu_available": host.GPUAvailable,
		"gpu_count":     host.GPUCount,
	})

	win, err := r.open(cfg)
	if err != nil {
		return err
	}
	defer win.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	driver := bench.NewDriver(win, sampler, scene.New(seed))

	for _, s := range suites {
		plan, err := s.plan(cfg)
		if err != nil {
			return err
		}
		out, err := driver.Run(ctx, plan)
		if err != nil {
			return errors.Wrapf(err, "running %s suite", plan.Name)
		}

		path, err := cfg.OutputPath(s.output(cfg))
		if err != nil {
			return err
		}
		if err := report.Write(path, report.New(host, out)); err != nil {
			return err
		}
		grip.Info(message.Fields{
			"message":   "report written",
			"suite":     plan.Name,
			"path":      path,
			"results":   len(out.Results),
			"cancelled": out.Cancelled,
		})
		report.PrintSummary(r.out, out.Results)

		if out.Cancelled {
			grip.Warningf("window closed: %d of %d %s configurations completed", len(out.Results), plan.Size(), plan.Name)
			return nil
		}
	}
	return nil
}
