package ticker

import (
	"context"
	"fmt"
	"time"
)

// Periodically runs task every interval until ctx is done or task fails. Cancellation is the normal way to
// stop it and is not reported as an error.
func Periodically(ctx context.Context, interval time.Duration, task func(context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval: %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := task(ctx); err != nil {
				return fmt.Errorf("periodic task failed: %w", err)
			}
		}
	}
}
