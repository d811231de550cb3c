package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/xyzst/OMP-BST/bst"

	"github.com/urfave/cli/v2"
)

const usage = "usage: bstbench number_of_values random_seed num_threads"

type benchConfig struct {
	Values    int
	Seed      int
	Threads   int
	Schedule  bst.Schedule
	ChunkSize int
}

func (c benchConfig) buildOptions() []bst.BuildOption {
	return []bst.BuildOption{
		bst.WithSchedule(c.Schedule),
		bst.WithChunkSize(c.ChunkSize),
	}
}

func configFromCli(cctx *cli.Context) (benchConfig, error) {
	return newBenchConfig(
		cctx.Args().Slice(),
		cctx.Int("values"),
		cctx.Int("seed"),
		cctx.Int("threads"),
		cctx.String("schedule"),
		cctx.Int("chunk-size"),
	)
}

// newBenchConfig validates the benchmark parameters. Positional arguments, when present, must be exactly
// values, seed and threads, and take precedence over the flag values.
func newBenchConfig(args []string, values, seed, threads int, schedule string, chunkSize int) (benchConfig, error) {
	if len(args) != 0 {
		if len(args) != 3 {
			return benchConfig{}, errors.New(usage)
		}
		var err error
		if values, err = strconv.Atoi(args[0]); err != nil {
			return benchConfig{}, fmt.Errorf("number of values must be an integer: %w", err)
		}
		seed32, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return benchConfig{}, fmt.Errorf("random seed must be a 32-bit integer: %w", err)
		}
		seed = int(seed32)
		if threads, err = strconv.Atoi(args[2]); err != nil {
			return benchConfig{}, fmt.Errorf("number of threads must be an integer: %w", err)
		}
	}

	if values < 1 {
		return benchConfig{}, fmt.Errorf("number of values must be at least 1")
	}
	if threads < 1 {
		return benchConfig{}, fmt.Errorf("number of threads requested must be at least 1")
	}
	if seed < math.MinInt32 || seed > math.MaxInt32 {
		return benchConfig{}, fmt.Errorf("random seed must be a 32-bit integer, got %d", seed)
	}
	if chunkSize < 1 {
		return benchConfig{}, fmt.Errorf("chunk size must be at least 1")
	}
	sched, err := bst.ParseSchedule(schedule)
	if err != nil {
		return benchConfig{}, err
	}

	return benchConfig{
		Values:    values,
		Seed:      seed,
		Threads:   threads,
		Schedule:  sched,
		ChunkSize: chunkSize,
	}, nil
}
