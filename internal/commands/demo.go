package commands

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"render-bench/internal/graphics"
)

// Demo spins the colour triangle for a few seconds to check the graphics stack works.
func Demo() cli.Command {
	return cli.Command{
		Name:  "demo",
		Usage: "render a rotating colour triangle for five seconds at up to 60 FPS",
		Flags: windowFlags(cli.Float64Flag{
			Name:  durationFlagName,
			Value: 5,
			Usage: "seconds to run",
		}),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			res, err := graphics.Demo(graphics.Options{
				Width:     cfg.Width,
				Height:    cfg.Height,
				Title:     cfg.Title + " demo",
				HUD:       cfg.HUD,
				TargetFPS: 60,
			}, time.Duration(c.Float64(durationFlagName)*float64(time.Second)))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "Frames: %d\n", res.Frames)
			fmt.Fprintf(c.App.Writer, "Mean FPS: %.2f\n", res.MeanFPS())
			return nil
		},
	}
}
