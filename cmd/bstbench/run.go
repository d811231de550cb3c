package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/xyzst/OMP-BST/bst"
	"github.com/xyzst/OMP-BST/internal/group"
	"github.com/xyzst/OMP-BST/internal/results"
	"github.com/xyzst/OMP-BST/internal/ticker"
	"github.com/xyzst/OMP-BST/pkg/metrics"
	"github.com/xyzst/OMP-BST/util/svcutil"

	"github.com/carlmjohnson/versioninfo"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
)

func runBench(cctx *cli.Context) error {
	logger := svcutil.ConfigLogger(cctx, os.Stderr)
	out := cctx.App.Writer

	cfg, err := configFromCli(cctx)
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
		printConfig(out, cfg)

		rec, err := runCycle(ctx, cfg, logger, out, cctx.Duration("progress-interval"))
		if store != nil && rec != nil {
			if rerr := store.Record(ctx, rec); rerr != nil {
				logger.Error("failed to record run", "err", rerr)
			}
		}
		return err
	})
}

// withServices runs job next to the metrics server, with tracing configured. The server stops once job has
// returned and the linger period is over.
func withServices(cctx *cli.Context, logger *slog.Logger, job func(ctx context.Context) error) error {
	shutdownTracing := configOTEL(cctx.Context, cctx.App.Name)
	defer shutdownTracing()

	addr := cctx.String("metrics-listen")
	linger := cctx.Duration("metrics-linger")

	g := group.New(group.WithContext(cctx.Context), group.WithLogger(logger))
	g.Add("metrics", func(ctx context.Context) error {
		return metrics.RunServer(ctx, addr, versioninfo.Short())
	})
	g.Add("bench", func(ctx context.Context) error {
		if err := job(ctx); err != nil {
			return err
		}
		if addr != "" && linger > 0 {
			logger.Info("benchmark done, metrics server lingering", "linger", linger)
			select {
			case <-ctx.Done():
			case <-time.After(linger):
			}
		}
		return nil
	})
	return g.Wait()
}

func openStore(cctx *cli.Context, logger *slog.Logger) (*results.Store, error) {
	dburl := cctx.String("results-db")
	if dburl == "" {
		return nil, nil
	}
	return results.Open(dburl, logger)
}

// runCycle performs one build-verify cycle and prints the timing report. The returned run describes the
// cycle for the results store, including failed ones; it is nil only when nothing was built.
func runCycle(ctx context.Context, cfg benchConfig, logger *slog.Logger, out io.Writer, progressEvery time.Duration) (*results.Run, error) {
	ctx, span := otel.Tracer("bstbench").Start(ctx, "runCycle")
	defer span.End()

	opts := cfg.buildOptions()

	progressDone := make(chan struct{})
	progressCtx, stopProgress := context.WithCancel(ctx)
	if progressEvery > 0 {
		progress := xsync.NewCounter()
		opts = append(opts, bst.WithProgress(progress))
		go func() {
			defer close(progressDone)
			_ = ticker.Periodically(progressCtx, progressEvery, func(context.Context) error {
				logger.Info("build progress", "inserted", progress.Value(), "values", cfg.Values)
				return nil
			})
		}()
	} else {
		close(progressDone)
	}

	tree, stats := bst.Build(ctx, cfg.Values, cfg.Seed, cfg.Threads, append(opts, bst.WithLogger(logger))...)
	stopProgress()
	<-progressDone

	printTiming(out, stats)

	rec := &results.Run{
		Values:     cfg.Values,
		Seed:       cfg.Seed,
		Threads:    cfg.Threads,
		Schedule:   cfg.Schedule.String(),
		ChunkSize:  cfg.ChunkSize,
		GoMaxProcs: runtime.GOMAXPROCS(0),
		Elapsed:    stats.Elapsed,
		Throughput: stats.Throughput(),
		LockAcqs:   stats.LockAcquisitions,
		LostRaces:  stats.LostRaces,
		Version:    versioninfo.Short(),
	}

	if tree.IsEmpty() {
		return nil, bst.ErrEmptyTree
	}
	rec.Height = tree.Height()
	logger.Debug("build stats", "height", rec.Height, "locks", stats.LockAcquisitions, "lost_races", stats.LostRaces)

	count, err := bst.VerifyAndRelease(tree)
	rec.Nodes = count
	if err != nil {
		rec.Failure = err.Error()
		if bst.IsOrderViolation(err) {
			return rec, fmt.Errorf("verification failed: %w", err)
		}
		return rec, err
	}
	if err := bst.CheckCount(cfg.Values, count); err != nil {
		rec.Failure = err.Error()
		return rec, err
	}
	rec.Passed = true
	return rec, nil
}
