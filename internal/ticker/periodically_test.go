package ticker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodically(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	var runs atomic.Int32
	err := Periodically(ctx, time.Millisecond, func(context.Context) error {
		if runs.Add(1) == 3 {
			cancel()
		}
		return nil
	})
	assert.NoError(err)
	assert.GreaterOrEqual(runs.Load(), int32(3))
}

func TestPeriodicallyTaskError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")
	err := Periodically(context.Background(), time.Millisecond, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(err, boom)

	assert.Error(Periodically(context.Background(), 0, func(context.Context) error { return nil }))
}
