package commands

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"render-bench/internal/benchconfig"
)

const writeFlagName = "write"

// Config prints the effective configuration, or saves it to the --config path.
func Config() cli.Command {
	return cli.Command{
		Name:  "config",
		Usage: "print the effective configuration as YAML, or write it with --write",
		Flags: suiteFlags(
			cli.StringSliceFlag{Name: lightsFlagName, Usage: "lighting presets, repeatable"},
			cli.StringSliceFlag{Name: sizesFlagName, Usage: "texture sizes, repeatable"},
			cli.BoolFlag{
				Name:  writeFlagName,
				Usage: "save to the --config path in the format its extension names",
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.Bool(writeFlagName) {
				path := c.GlobalString(confFlagName)
				if err := benchconfig.Save(path, cfg); err != nil {
					return err
				}
				grip.Infof("wrote config to '%s'", path)
				return nil
			}
			enc := yaml.NewEncoder(c.App.Writer)
			defer enc.Close()
			return errors.Wrap(enc.Encode(cfg), "encoding config")
		},
	}
}
