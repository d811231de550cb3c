package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/xyzst/OMP-BST/bst"
	"github.com/xyzst/OMP-BST/internal/results"

	"github.com/stretchr/testify/assert"
)

func TestThreadCounts(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]int{1}, threadCounts(1))
	assert.Equal([]int{1, 2}, threadCounts(2))
	assert.Equal([]int{1, 2, 4, 6}, threadCounts(6))
	assert.Equal([]int{1, 2, 4, 8}, threadCounts(8))
}

func TestSweepOne(t *testing.T) {
	assert := assert.New(t)

	var recorded []*results.Run
	cfg := benchConfig{Values: 2_000, Seed: 3, Threads: 4, Schedule: bst.ScheduleStatic, ChunkSize: 128}
	row, err := sweepOne(context.Background(), cfg, 3, slog.Default(), func(run *results.Run) {
		recorded = append(recorded, run)
	})
	assert.NoError(err)
	assert.Equal(4, row.Threads)
	assert.Greater(row.Best, time.Duration(0))
	assert.Greater(row.MeanThroughput, 0.0)
	if assert.Len(recorded, 3) {
		for _, r := range recorded {
			assert.True(r.Passed)
			assert.Equal(2_000, r.Nodes)
		}
	}
}
