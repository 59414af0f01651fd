package main

import (
	"context"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v3"
)

const (
	iterationsKey = "iterations"
	instancesKey  = "instances"
	verboseKey    = "verbose"
)

type config struct {
	Iterations int     `env:"BINDBENCH_ITERATIONS" envDefault:"100"`
	Instances  []int64 `env:"BINDBENCH_INSTANCES" envSeparator:"," envDefault:"1,10,100,1000"`
	Verbose    bool    `env:"BINDBENCH_VERBOSE"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	cmd := &cli.Command{
		Name:  "bindbench",
		Usage: "Exercise store bindings",
		Commands: []*cli.Command{
			{
				Name:  "bench",
				Usage: "Measure dispatch latency with many mounted bindings",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  iterationsKey,
						Usage: "Dispatches per run",
						Value: int64(cfg.Iterations),
					},
					&cli.IntSliceFlag{
						Name:  instancesKey,
						Usage: "Mounted instance counts to run",
						Value: cfg.Instances,
					},
				},
				Action: bench,
			},
			{
				Name:  "demo",
				Usage: "Run a scripted todo list and print every render",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  verboseKey,
						Usage: "Log every render decision",
						Value: cfg.Verbose,
					},
				},
				Action: demo,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
