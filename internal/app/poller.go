package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/reelgrid/reelgrid/internal/gallery"
)

const (
	defaultRefreshInterval = 30 * time.Second
	maxBackoff             = 5 * time.Minute
)

// StartRefresher launches a background goroutine that merges backend
// updates into the loaded gallery pages at a fixed cadence, so view and
// like counters stay current while the TUI runs. It returns immediately.
//
// Consecutive failures back off exponentially up to maxBackoff, then the
// next success resets to the base interval.
func StartRefresher(ctx context.Context, manager *gallery.Manager, log *zap.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	go func() {
		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(failures, interval)):
			}

			if err := manager.RefreshVisible(ctx); err != nil {
				failures++
				log.Warn("background refresh failed",
					zap.Error(err),
					zap.Int("consecutive_failures", failures))
				continue
			}
			failures = 0
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
