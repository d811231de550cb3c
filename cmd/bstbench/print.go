package main

import (
	"fmt"
	"os"

	"github.com/xyzst/OMP-BST/bst"
	"github.com/xyzst/OMP-BST/util/svcutil"

	"github.com/urfave/cli/v2"
)

var printCmd = &cli.Command{
	Name:      "print",
	Usage:     "build a small tree and draw it",
	ArgsUsage: "[<number_of_values> <random_seed> <num_threads>]",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "values",
			Aliases: []string{"n"},
			Usage:   "number of keys to insert",
			Value:   15,
		},
		&cli.IntFlag{
			Name:    "threads",
			Aliases: []string{"t"},
			Usage:   "number of concurrent writers",
			Value:   4,
		},
		&cli.BoolFlag{
			Name:  "compare",
			Usage: "report whether the tree has the same shape as a single-writer build of the same keys",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "maximum number of nodes to draw (0 for all)",
			Value: 64,
		},
	},
	Action: runPrint,
}

func runPrint(cctx *cli.Context) error {
	logger := svcutil.ConfigLogger(cctx, os.Stderr)
	out := cctx.App.Writer

	cfg, err := configFromCli(cctx)
	if err != nil {
		return err
	}

	tree, stats := bst.Build(cctx.Context, cfg.Values, cfg.Seed, cfg.Threads, append(cfg.buildOptions(), bst.WithLogger(logger))...)
	printConfig(out, cfg)
	if err := tree.Verify(); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	fmt.Fprint(out, bst.Render(tree, cctx.Int("limit")))
	fmt.Fprintf(out, "height: %d, lock acquisitions: %d, lost races: %d\n", tree.Height(), stats.LockAcquisitions, stats.LostRaces)
	if cctx.Bool("compare") {
		same := bst.Equal(tree, bst.NewTreeFromKeys(bst.Keys(cfg.Values, cfg.Seed)))
		fmt.Fprintf(out, "same shape as single-writer build: %t\n", same)
	}

	count, err := bst.VerifyAndRelease(tree)
	if err != nil {
		return err
	}
	return bst.CheckCount(cfg.Values, count)
}
