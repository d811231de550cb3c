package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/xyzst/OMP-BST/internal/results"
	"github.com/xyzst/OMP-BST/util/svcutil"

	"github.com/urfave/cli/v2"
)

var sweepCmd = &cli.Command{
	Name:  "sweep",
	Usage: "run the benchmark across a range of thread counts and print a scaling table",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "max-threads",
			Usage: "largest thread count to try; counts double from 1 up to this value",
			Value: runtime.GOMAXPROCS(0),
		},
		&cli.IntFlag{
			Name:  "repeat",
			Usage: "build-verify cycles per thread count; the best time is reported",
			Value: 3,
		},
	},
	Action: runSweep,
}

type sweepRow struct {
	Threads        int
	Best           time.Duration
	MeanThroughput float64
	LostRaces      int64
}

// threadCounts returns 1, 2, 4, ... up to max, always ending with max itself.
func threadCounts(max int) []int {
	var out []int
	for t := 1; t < max; t *= 2 {
		out = append(out, t)
	}
	return append(out, max)
}

func runSweep(cctx *cli.Context) error {
	logger := svcutil.ConfigLogger(cctx, os.Stderr)
	out := cctx.App.Writer

	maxThreads := cctx.Int("max-threads")
	repeat := cctx.Int("repeat")
	if maxThreads < 1 {
		return fmt.Errorf("max threads must be at least 1")
	}
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1")
	}

	base, err := configFromCli(cctx)
	if err != nil {
		return err
	}

	store, err := openStore(cctx, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	return withServices(cctx, logger, func(ctx context.Context) error {
		printBanner(out)
		fmt.Fprintf(out, "sweep: %d values with seed of %d, %s schedule, %d repeats\n", base.Values, base.Seed, base.Schedule, repeat)
		printSweepHeader(out)

		var baseline float64
		for _, threads := range threadCounts(maxThreads) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			cfg := base
			cfg.Threads = threads
			row, err := sweepOne(ctx, cfg, repeat, logger, func(rec *results.Run) {
				if store == nil {
					return
				}
				if err := store.Record(ctx, rec); err != nil {
					logger.Error("failed to record run", "err", err)
				}
			})
			if err != nil {
				return err
			}
			if threads == 1 {
				baseline = row.Best.Seconds()
			}
			printSweepRow(out, row, baseline)
		}
		return nil
	})
}

func sweepOne(ctx context.Context, cfg benchConfig, repeat int, logger *slog.Logger, record func(*results.Run)) (sweepRow, error) {
	row := sweepRow{Threads: cfg.Threads}
	var total float64
	for i := 0; i < repeat; i++ {
		rec, err := runCycle(ctx, cfg, logger, io.Discard, 0)
		if rec != nil {
			record(rec)
		}
		if err != nil {
			return row, fmt.Errorf("%d threads, repeat %d: %w", cfg.Threads, i, err)
		}
		if row.Best == 0 || rec.Elapsed < row.Best {
			row.Best = rec.Elapsed
		}
		total += rec.Throughput
		row.LostRaces += rec.LostRaces
	}
	row.MeanThroughput = total / float64(repeat)
	return row, nil
}
