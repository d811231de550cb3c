package main

import (
	"math"
	"testing"

	"github.com/xyzst/OMP-BST/bst"

	"github.com/stretchr/testify/assert"
)

func TestNewBenchConfig(t *testing.T) {
	assert := assert.New(t)

	cfg, err := newBenchConfig([]string{"1000", "-7", "8"}, 5, 5, 5, "dynamic", 64)
	assert.NoError(err)
	assert.Equal(benchConfig{Values: 1000, Seed: -7, Threads: 8, Schedule: bst.ScheduleDynamic, ChunkSize: 64}, cfg)

	cfg, err = newBenchConfig(nil, 5, 42, 4, "", 1024)
	assert.NoError(err)
	assert.Equal(5, cfg.Values)
	assert.Equal(42, cfg.Seed)
	assert.Equal(4, cfg.Threads)
	assert.Equal(bst.ScheduleStatic, cfg.Schedule)

	cfg, err = newBenchConfig([]string{"10", "-2147483648", "1"}, 0, 0, 0, "static", 1)
	assert.NoError(err)
	assert.Equal(math.MinInt32, cfg.Seed)
	cfg, err = newBenchConfig([]string{"10", "2147483647", "1"}, 0, 0, 0, "static", 1)
	assert.NoError(err)
	assert.Equal(math.MaxInt32, cfg.Seed)

	testVec := []struct {
		Args     []string
		Values   int
		Seed     int
		Threads  int
		Schedule string
		Chunk    int
		Msg      string
	}{
		{[]string{"10", "1"}, 1, 0, 1, "static", 1, "usage:"},
		{[]string{"ten", "1", "1"}, 1, 0, 1, "static", 1, "number of values must be an integer"},
		{[]string{"10", "x", "1"}, 1, 0, 1, "static", 1, "random seed must be a 32-bit integer"},
		{[]string{"10", "4294967301", "1"}, 1, 0, 1, "static", 1, "random seed must be a 32-bit integer"},
		{[]string{"10", "-2147483649", "1"}, 1, 0, 1, "static", 1, "random seed must be a 32-bit integer"},
		{nil, 1, 4294967301, 1, "static", 1, "random seed must be a 32-bit integer"},
		{[]string{"10", "1", "many"}, 1, 0, 1, "static", 1, "number of threads must be an integer"},
		{[]string{"0", "1", "1"}, 1, 0, 1, "static", 1, "number of values must be at least 1"},
		{[]string{"10", "1", "0"}, 1, 0, 1, "static", 1, "number of threads requested must be at least 1"},
		{nil, 0, 0, 1, "static", 1, "number of values must be at least 1"},
		{nil, 1, 0, -3, "static", 1, "number of threads requested must be at least 1"},
		{nil, 1, 0, 1, "static", 0, "chunk size must be at least 1"},
		{nil, 1, 0, 1, "guided", 1, "unknown schedule"},
	}

	for _, c := range testVec {
		_, err := newBenchConfig(c.Args, c.Values, c.Seed, c.Threads, c.Schedule, c.Chunk)
		assert.ErrorContains(err, c.Msg, c.Msg)
	}
}
