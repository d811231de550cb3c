package bst

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Schedule controls how the parallel part of a build hands out key indices to workers.
type Schedule int

const (
	// each worker gets one contiguous block of indices, sized as evenly as possible
	ScheduleStatic Schedule = iota
	// workers repeatedly claim the next chunk of indices from a shared cursor
	ScheduleDynamic
)

const DefaultChunkSize = 1024

func (s Schedule) String() string {
	switch s {
	case ScheduleStatic:
		return "static"
	case ScheduleDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("schedule(%d)", int(s))
	}
}

func ParseSchedule(raw string) (Schedule, error) {
	switch strings.ToLower(raw) {
	case "", "static":
		return ScheduleStatic, nil
	case "dynamic":
		return ScheduleDynamic, nil
	default:
		return ScheduleStatic, fmt.Errorf("unknown schedule: %q", raw)
	}
}

type buildConfig struct {
	schedule  Schedule
	chunkSize int
	progress  *xsync.Counter
	log       *slog.Logger
}

type BuildOption func(*buildConfig)

func WithSchedule(s Schedule) BuildOption {
	return func(c *buildConfig) {
		c.schedule = s
	}
}

// WithChunkSize sets how many indices a worker processes between progress updates (and, for the dynamic
// schedule, how many it claims at once). Values below 1 are ignored.
func WithChunkSize(size int) BuildOption {
	return func(c *buildConfig) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithProgress makes workers add the number of keys they have inserted to counter as they go. The counter
// can be read concurrently while the build is running.
func WithProgress(counter *xsync.Counter) BuildOption {
	return func(c *buildConfig) {
		c.progress = counter
	}
}

func WithLogger(log *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.log = log
	}
}

// BuildStats describes a finished build.
type BuildStats struct {
	Values      int
	Concurrency int
	Schedule    Schedule
	Elapsed     time.Duration
	// nodes actually created; equals Values for a correct build
	Inserted int64
	// slot locks taken, across all workers
	LockAcquisitions int64
	// locks taken only to find the slot already filled by another writer
	LostRaces int64
}

// Throughput is the number of values inserted per second of build time.
func (s BuildStats) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Values) / s.Elapsed.Seconds()
}

func (s *BuildStats) add(st *insertStats) {
	s.Inserted += st.inserted
	s.LockAcquisitions += st.locks
	s.LostRaces += st.lostRaces
}

// Build creates a tree holding KeyAt(i, seed) for every i in [0, n). The seed key is inserted first on the
// calling goroutine; the other n-1 keys are spread across concurrency workers. Build returns only after every
// worker has finished.
//
// The caller must pass n >= 1 and concurrency >= 1. ctx only carries tracing; a build cannot be cancelled.
func Build(ctx context.Context, n, seed, concurrency int, opts ...BuildOption) (*Tree, BuildStats) {
	cfg := buildConfig{
		schedule:  ScheduleStatic,
		chunkSize: DefaultChunkSize,
		log:       slog.Default().With("system", "bst"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	_, span := otel.Tracer("bst").Start(ctx, "Build")
	defer span.End()
	span.SetAttributes(
		attribute.Int("values", n),
		attribute.Int("seed", seed),
		attribute.Int("concurrency", concurrency),
		attribute.String("schedule", cfg.schedule.String()),
	)

	cfg.log.Debug("starting build", "values", n, "seed", seed, "concurrency", concurrency, "schedule", cfg.schedule)

	stats := BuildStats{
		Values:      n,
		Concurrency: concurrency,
		Schedule:    cfg.schedule,
	}
	start := time.Now()

	tree := &Tree{}

	// the root has to exist before workers start, so that they all race below it
	var seedStats insertStats
	tree.insert(KeyAt(0, seed), &seedStats)
	stats.add(&seedStats)
	if cfg.progress != nil {
		cfg.progress.Inc()
	}

	if n > 1 {
		workers := min(concurrency, n-1)
		perWorker := make([]insertStats, workers)

		var eg errgroup.Group
		switch cfg.schedule {
		case ScheduleDynamic:
			var cursor atomic.Int64
			cursor.Store(1)
			for w := 0; w < workers; w++ {
				st := &perWorker[w]
				eg.Go(func() error {
					for {
						lo := int(cursor.Add(int64(cfg.chunkSize))) - cfg.chunkSize
						if lo >= n {
							return nil
						}
						cfg.insertRange(tree, lo, min(lo+cfg.chunkSize, n), seed, st)
					}
				})
			}
		default:
			total := int64(n - 1)
			for w := 0; w < workers; w++ {
				st := &perWorker[w]
				lo := 1 + int(total*int64(w)/int64(workers))
				hi := 1 + int(total*int64(w+1)/int64(workers))
				eg.Go(func() error {
					for c := lo; c < hi; c += cfg.chunkSize {
						cfg.insertRange(tree, c, min(c+cfg.chunkSize, hi), seed, st)
					}
					return nil
				})
			}
		}
		// workers never fail; Wait is the barrier before the tree is handed back
		_ = eg.Wait()

		for i := range perWorker {
			stats.add(&perWorker[i])
		}
	}

	stats.Elapsed = time.Since(start)

	sched := cfg.schedule.String()
	buildsTotal.WithLabelValues(sched).Inc()
	buildDuration.WithLabelValues(sched).Observe(stats.Elapsed.Seconds())
	nodesInserted.Add(float64(stats.Inserted))
	slotLockAcquisitions.Add(float64(stats.LockAcquisitions))
	slotRacesLost.Add(float64(stats.LostRaces))

	span.SetAttributes(
		attribute.Int64("inserted", stats.Inserted),
		attribute.Int64("lost_races", stats.LostRaces),
	)
	cfg.log.Debug("build finished", "elapsed", stats.Elapsed, "inserted", stats.Inserted, "locks", stats.LockAcquisitions, "lost_races", stats.LostRaces)

	return tree, stats
}

func (cfg *buildConfig) insertRange(tree *Tree, lo, hi, seed int, st *insertStats) {
	for i := lo; i < hi; i++ {
		tree.insert(KeyAt(i, seed), st)
	}
	if cfg.progress != nil {
		cfg.progress.Add(int64(hi - lo))
	}
}
