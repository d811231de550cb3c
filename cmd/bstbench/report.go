package main

import (
	"fmt"
	"io"

	"github.com/xyzst/OMP-BST/bst"
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "BST v1.0 [Go]")
}

func printConfig(w io.Writer, cfg benchConfig) {
	fmt.Fprintf(w, "configuration: %d values with seed of %d with %d threads\n", cfg.Values, cfg.Seed, cfg.Threads)
}

func printTiming(w io.Writer, stats bst.BuildStats) {
	fmt.Fprintf(w, "compute time: %.4f s\n", stats.Elapsed.Seconds())
	fmt.Fprintf(w, "throughput: %.3f Mvalues/s\n", stats.Throughput()/1e6)
}

func printSweepHeader(w io.Writer) {
	fmt.Fprintf(w, "%8s %12s %16s %8s %12s\n", "threads", "best (s)", "Mvalues/s", "speedup", "lost races")
}

func printSweepRow(w io.Writer, row sweepRow, baseline float64) {
	speedup := 0.0
	if row.Best > 0 && baseline > 0 {
		speedup = baseline / row.Best.Seconds()
	}
	fmt.Fprintf(w, "%8d %12.4f %16.3f %8.2f %12d\n", row.Threads, row.Best.Seconds(), row.MeanThroughput/1e6, speedup, row.LostRaces)
}
