package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"render-bench/internal/telemetry"
)

const jsonFlagName = "json"

// SysInfo prints the host snapshot the reports embed.
func SysInfo() cli.Command {
	return cli.Command{
		Name:  "sysinfo",
		Usage: "show the CPU, memory and GPU information recorded in reports",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  jsonFlagName,
				Usage: "print the snapshot as it appears in a report",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			probe := telemetry.NewProbe(telemetry.DetectGPU(ctx))
			host, err := probe.Host(ctx)
			if err != nil {
				return errors.Wrap(err, "reading host information")
			}
			if c.Bool(jsonFlagName) {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "    ")
				return errors.Wrap(enc.Encode(host), "encoding host information")
			}
			avail, err := probe.AvailableRAMGiB(ctx)
			if err != nil {
				return errors.Wrap(err, "reading available memory")
			}
			printHost(c.App.Writer, host, avail)
			return nil
		},
	}
}

func printHost(w io.Writer, host telemetry.HostInfo, availGiB float64) {
	t := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	t.AddLine("CPU cores", host.PhysicalCores)
	t.AddLine("CPU threads", host.LogicalCores)
	if host.CPUFreqMHz != nil {
		t.AddLine("CPU max frequency", fmt.Sprintf("%.0f MHz", *host.CPUFreqMHz))
	} else {
		t.AddLine("CPU max frequency", "unknown")
	}
	t.AddLine("RAM total", humanize.IBytes(gibToBytes(host.RAMGiB)))
	t.AddLine("RAM available", humanize.IBytes(gibToBytes(availGiB)))
	t.AddLine("GPUs", host.GPUCount)
	for i, g := range host.GPUs {
		t.AddLine(fmt.Sprintf("GPU %d", i), fmt.Sprintf("%s, %s, driver %s", g.Name, humanize.IBytes(uint64(g.MemoryTotal)<<20), g.Driver))
	}
	t.Print()
}

func gibToBytes(gib float64) uint64 {
	if gib <= 0 {
		return 0
	}
	return uint64(gib * (1 << 30))
}
