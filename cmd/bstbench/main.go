package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	_ "go.uber.org/automaxprocs"

	"github.com/xyzst/OMP-BST/bst"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.App{
		Name:      "bstbench",
		Usage:     "build a binary search tree with concurrent writers, verify it, and report throughput",
		ArgsUsage: "[<number_of_values> <random_seed> <num_threads>]",
		Version:   versioninfo.Short(),
		Flags:     append(globalFlags, buildFlags()...),
		Action:    runBench,
	}
	app.Commands = []*cli.Command{
		runCmd,
		sweepCmd,
		printCmd,
		historyCmd,
	}
	return app.RunContext(ctx, args)
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "log verbosity level (eg: warn, info, debug)",
		Value:   "warn",
		EnvVars: []string{"BSTBENCH_LOG_LEVEL", "LOG_LEVEL"},
	},
	&cli.StringFlag{
		Name:    "log-format",
		Usage:   "log output format (text or json)",
		Value:   "text",
		EnvVars: []string{"BSTBENCH_LOG_FORMAT"},
	},
	&cli.StringFlag{
		Name:    "metrics-listen",
		Usage:   "address for the prometheus/pprof HTTP server (disabled when empty)",
		EnvVars: []string{"BSTBENCH_METRICS_LISTEN"},
	},
	&cli.DurationFlag{
		Name:    "metrics-linger",
		Usage:   "keep the metrics server up this long after the benchmark finishes",
		EnvVars: []string{"BSTBENCH_METRICS_LINGER"},
	},
	&cli.StringFlag{
		Name:    "results-db",
		Usage:   "database URL to record runs in (sqlite://path or postgres://...)",
		EnvVars: []string{"BSTBENCH_RESULTS_DB"},
	},
}

var runCmd = &cli.Command{
	Name:      "run",
	Usage:     "one build-verify cycle (the default when no command is given)",
	ArgsUsage: "[<number_of_values> <random_seed> <num_threads>]",
	Flags:     buildFlags(),
	Action:    runBench,
}

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "values",
			Aliases: []string{"n"},
			Usage:   "number of keys to insert",
			Value:   1_000_000,
			EnvVars: []string{"BSTBENCH_VALUES"},
		},
		&cli.IntFlag{
			Name:    "seed",
			Usage:   "key generator seed (32-bit signed integer)",
			EnvVars: []string{"BSTBENCH_SEED"},
		},
		&cli.IntFlag{
			Name:    "threads",
			Aliases: []string{"t"},
			Usage:   "number of concurrent writers",
			Value:   runtime.GOMAXPROCS(0),
			EnvVars: []string{"BSTBENCH_THREADS"},
		},
		&cli.StringFlag{
			Name:    "schedule",
			Usage:   "how keys are split across writers: static or dynamic",
			Value:   "static",
			EnvVars: []string{"BSTBENCH_SCHEDULE"},
		},
		&cli.IntFlag{
			Name:    "chunk-size",
			Usage:   "keys per work chunk",
			Value:   bst.DefaultChunkSize,
			EnvVars: []string{"BSTBENCH_CHUNK_SIZE"},
		},
		&cli.DurationFlag{
			Name:  "progress-interval",
			Usage: "log build progress at this interval (disabled when zero)",
		},
	}
}
