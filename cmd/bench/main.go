package main

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/urfave/cli"

	"render-bench/internal/commands"
)

func main() {
	app := buildApp()
	if err := app.Run(os.Args); err != nil {
		grip.Error(err)
		os.Exit(1)
	}
}

func buildApp() *cli.App {
	app := cli.NewApp()
	app.Name = "render-bench"
	app.Usage = "measure immediate-mode triangle rendering throughput"
	app.Version = "0.1.0"

	app.Commands = []cli.Command{
		// Benchmark suites
		commands.Triangles(),
		commands.Lighting(),
		commands.Textures(),
		commands.All(),

		// Helpers
		commands.Demo(),
		commands.SysInfo(),
		commands.Config(),
	}

	app.Flags = commands.GlobalFlags()
	app.Before = commands.SetupLogging(app.Name)

	return app
}
