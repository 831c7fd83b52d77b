package scrape

import (
	"context"
	"log/slog"
	"time"
)

// MaxScrollIterations caps the scroll loop so an infinite-scroll page that
// never stabilizes cannot hang a render call.
const MaxScrollIterations = 20

// scrollUntilStable repeatedly scrolls to the bottom of the page and waits
// for lazy-loaded content to settle, terminating on the first iteration
// where the page height is unchanged or once the iteration cap is reached.
// The scroll and height actions are injected so the termination logic is
// independent of the browser driving it.
func scrollUntilStable(ctx context.Context, scroll func() error, height func() (int64, error), settle time.Duration, maxIterations int) error {
	lastHeight, err := height()
	if err != nil {
		return err
	}

	for i := 1; i <= maxIterations; i++ {
		if err := scroll(); err != nil {
			return err
		}

		select {
		case <-time.After(settle):
		case <-ctx.Done():
			return ctx.Err()
		}

		newHeight, err := height()
		if err != nil {
			return err
		}

		slog.Debug("Scroll iteration", "iteration", i, "max", maxIterations, "height", newHeight)

		if newHeight == lastHeight {
			slog.Debug("Reached bottom of page", "iterations", i)
			return nil
		}

		lastHeight = newHeight
	}

	slog.Warn("Scroll cap reached before page height stabilized", "iterations", maxIterations)
	return nil
}
