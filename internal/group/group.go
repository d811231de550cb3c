// Package group runs a set of named goroutines that share one lifetime.
package group

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// G manages the lifetime of a set of goroutines from a common context.
// The first member to return cancels the context, which asks every other member to stop.
// A panicking member is recovered and reported as the group's error.
type G struct {
	// ctx is the context passed to every member of the group.
	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
	log    *slog.Logger

	initOnce sync.Once

	errOnce sync.Once
	err     error
}

type Option func(*G)

// WithContext uses the provided context as the parent of the group's context.
func WithContext(ctx context.Context) Option {
	return func(g *G) {
		g.ctx = ctx
	}
}

// WithLogger logs member exits to log instead of the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *G) {
		g.log = log
	}
}

func New(opts ...Option) *G {
	g := new(G)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *G) init() {
	if g.ctx == nil {
		g.ctx = context.Background()
	}
	if g.log == nil {
		g.log = slog.Default().With("system", "group")
	}
	g.ctx, g.cancel = context.WithCancel(g.ctx)
}

// Add starts fn in a new goroutine. fn should return once the context passed to it is canceled.
// The name only shows up in logs and panic errors.
func (g *G) Add(name string, fn func(context.Context) error) {
	g.initOnce.Do(g.init)
	g.done.Add(1)
	go func() {
		defer g.done.Done()
		defer g.cancel()
		defer func() {
			if r := recover(); r != nil {
				g.errOnce.Do(func() {
					if err, ok := r.(error); ok {
						g.err = fmt.Errorf("%s: panic: %w", name, err)
					} else {
						g.err = fmt.Errorf("%s: panic: %v", name, r)
					}
				})
			}
		}()
		err := fn(g.ctx)
		g.log.Debug("group member exited", "member", name, "err", err)
		if err != nil {
			g.errOnce.Do(func() { g.err = err })
		}
	}()
}

// Wait blocks until every member has returned, and returns the first error any of them produced.
func (g *G) Wait() error {
	g.done.Wait()
	g.errOnce.Do(func() {
		// noop, required to synchronise on the errOnce mutex.
	})
	return g.err
}
