// Package commands builds the command-line interface: one cli.Command per
// benchmark suite plus the demo, sysinfo and config helpers.
package commands

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"render-bench/internal/benchconfig"
	"render-bench/internal/logger"
)

const (
	levelFlagName   = "level"
	confFlagName    = "config"
	logFileFlagName = "log-file"

	durationFlagName  = "duration"
	outputDirFlagName = "output-dir"
	widthFlagName     = "width"
	heightFlagName    = "height"
	seedFlagName      = "seed"
	hudFlagName       = "hud"
	countsFlagName    = "counts"
	lightsFlagName    = "lights"
	sizesFlagName     = "sizes"
)

// GlobalFlags are accepted before any subcommand.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  levelFlagName,
			Value: "info",
			Usage: "lowest visible log level: 'emergency|alert|critical|error|warning|notice|info|debug|trace'",
		},
		cli.StringFlag{
			Name:  "conf, config, c",
			Value: benchconfig.ConfigPath,
			Usage: "path to a YAML, TOML or JSON config file; a missing file means defaults",
		},
		cli.StringFlag{
			Name:  logFileFlagName,
			Value: logger.LogFilePath,
			Usage: "also write logs to this file; empty disables file logging",
		},
	}
}

// SetupLogging is the app's Before hook.
func SetupLogging(appName string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		return logger.Setup(appName, c.GlobalString(levelFlagName), c.GlobalString(logFileFlagName))
	}
}

// windowFlags are shared by every command that opens a window.
func windowFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:  widthFlagName,
			Usage: "window width in pixels (default 800)",
		},
		cli.IntFlag{
			Name:  heightFlagName,
			Usage: "window height in pixels (default 600)",
		},
		cli.BoolFlag{
			Name:  hudFlagName,
			Usage: "draw the configuration label, FPS and heap usage over the scene",
		},
	)
}

// suiteFlags are shared by the benchmark commands.
func suiteFlags(flags ...cli.Flag) []cli.Flag {
	return windowFlags(append(flags,
		cli.Float64Flag{
			Name:  durationFlagName,
			Usage: "seconds to render each configuration (default 5)",
		},
		cli.StringFlag{
			Name:  outputDirFlagName,
			Usage: "directory the JSON reports are written to; ~ is expanded",
		},
		cli.Int64Flag{
			Name:  seedFlagName,
			Usage: "seed for primitive colours; 0 picks one from the clock",
		},
		cli.IntSliceFlag{
			Name:  countsFlagName,
			Usage: "triangle count to run, repeatable; replaces the configured sweep",
		},
	)...)
}

// loadConfig reads the global config file and applies this command's flags on top.
func loadConfig(c *cli.Context) (benchconfig.Config, error) {
	path := c.GlobalString(confFlagName)
	cfg, err := benchconfig.Load(path)
	if err != nil {
		return cfg, err
	}
	grip.Debugf("loaded config from '%s'", path)

	o := benchconfig.Override{
		Width:           c.Int(widthFlagName),
		Height:          c.Int(heightFlagName),
		HUD:             c.Bool(hudFlagName),
		DurationSeconds: c.Float64(durationFlagName),
		OutputDir:       c.String(outputDirFlagName),
		Seed:            c.Int64(seedFlagName),
		Counts:          c.IntSlice(countsFlagName),
		Presets:         c.StringSlice(lightsFlagName),
		Sizes:           c.StringSlice(sizesFlagName),
	}
	if err := cfg.Apply(o); err != nil {
		return cfg, err
	}
	return cfg, errors.Wrap(cfg.Validate(), "invalid configuration")
}
