// Command cachesim replays a memory access trace through a configurable
// multi-level cache hierarchy and reports per-level hit/miss counts, AMAT,
// and latency.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/memhier/cachesim/config"
	"github.com/memhier/cachesim/controller"
	"github.com/memhier/cachesim/log"
	"github.com/memhier/cachesim/report"
	"github.com/memhier/cachesim/runner"
)

func main() {
	app := &cli.App{
		Name:  "cachesim",
		Usage: "trace-driven multi-level cache hierarchy simulator",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Required: true, Usage: "path to the cache configuration JSON file"},
			&cli.StringFlag{Name: "trace", Required: true, Usage: "path to the memory access trace file"},
			&cli.IntFlag{Name: "warmup", Value: 3, Usage: "number of times to replay the trace before averaging"},
			&cli.StringFlag{Name: "output-dir", Value: "output", Usage: "directory to save the rendered report into"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("cachesim: fatal", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	configPath := c.String("config")
	tracePath := c.String("trace")
	warmup := c.Int("warmup")
	outputDir := c.String("output-dir")

	doc, err := config.Load(configPath)
	if err != nil {
		return err
	}
	h, err := config.Build(doc)
	if err != nil {
		return err
	}

	ctrl := controller.New(h)
	if err := runner.Run(ctrl, tracePath, warmup); err != nil {
		return err
	}

	rpt := &report.Report{
		TraceName:  tracePath,
		ConfigName: configPath,
		Config:     doc,
		Hierarchy:  h,
		Metrics:    ctrl.Metrics(),
	}
	rpt.PrintToTerminal()

	if _, err := rpt.Save(outputDir); err != nil {
		log.Error("cachesim: report save failed, simulation results are unaffected", "error", err)
	}
	if _, err := rpt.SaveJSON(outputDir); err != nil {
		log.Error("cachesim: json snapshot save failed", "error", err)
	}

	return nil
}
