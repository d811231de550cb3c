package main

import (
	"fmt"
	"os"

	"github.com/xyzst/OMP-BST/util/svcutil"

	"github.com/urfave/cli/v2"
)

var historyCmd = &cli.Command{
	Name:  "history",
	Usage: "list benchmark runs recorded in the results database",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "number of most recent runs to show (0 for all)",
			Value: 20,
		},
	},
	Action: runHistory,
}

func runHistory(cctx *cli.Context) error {
	logger := svcutil.ConfigLogger(cctx, os.Stderr)
	out := cctx.App.Writer

	store, err := openStore(cctx, logger)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("no results database configured (set --results-db)")
	}
	defer store.Close()

	runs, err := store.List(cctx.Context, cctx.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-20s %10s %8s %8s %12s %12s %6s\n", "when", "values", "threads", "sched", "time (s)", "Mvalues/s", "ok")
	for _, r := range runs {
		ok := "yes"
		if !r.Passed {
			ok = "NO"
		}
		fmt.Fprintf(out, "%-20s %10d %8d %8s %12.4f %12.3f %6s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Values, r.Threads, r.Schedule, r.Elapsed.Seconds(), r.Throughput/1e6, ok)
		if r.Failure != "" {
			fmt.Fprintf(out, "    %s\n", r.Failure)
		}
	}
	return nil
}
