// Package results keeps a history of benchmark runs in a SQL database, so that throughput can be compared
// across machines, versions and thread counts.
package results

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Run is one build-verify cycle.
type Run struct {
	gorm.Model
	Values     int
	Seed       int
	Threads    int
	Schedule   string
	ChunkSize  int
	GoMaxProcs int
	Elapsed    time.Duration
	Throughput float64
	Nodes      int
	LockAcqs   int64
	LostRaces  int64
	Height     int
	Passed     bool
	Failure    string
	Version    string
}

type Store struct {
	db *gorm.DB
}

// Open connects to dburl and migrates the schema. Accepted forms are "sqlite://path", "sqlite=path",
// "postgres://..." (or "postgresql://...") and "postgres=dsn".
func Open(dburl string, logger *slog.Logger) (*Store, error) {
	var dial gorm.Dialector
	isSqlite := false
	switch {
	case strings.HasPrefix(dburl, "sqlite://"), strings.HasPrefix(dburl, "sqlite="):
		path := strings.TrimPrefix(strings.TrimPrefix(dburl, "sqlite://"), "sqlite=")
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return nil, fmt.Errorf("creating results directory: %w", err)
			}
		}
		dial = sqlite.Open(path)
		isSqlite = true
	case strings.HasPrefix(dburl, "postgresql://"), strings.HasPrefix(dburl, "postgres://"):
		dial = postgres.Open(dburl)
	case strings.HasPrefix(dburl, "postgres="):
		dial = postgres.Open(strings.TrimPrefix(dburl, "postgres="))
	default:
		return nil, fmt.Errorf("unsupported or unrecognized results database URL (expected sqlite:// or postgres://)")
	}

	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(dial, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 slogGorm.New(slogGorm.WithLogger(logger.With("system", "results"))),
	})
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	if err := db.Use(tracing.NewPlugin()); err != nil {
		return nil, fmt.Errorf("enabling database tracing: %w", err)
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isSqlite {
		sqldb.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
			return nil, err
		}
	}

	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("migrating results schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns the most recent runs first. A limit below 1 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	q := s.db.WithContext(ctx).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *Store) Close() error {
	sqldb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}
