package scrape

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScrollUntilStableStopsOnStableHeight(t *testing.T) {
	heights := []int64{1000, 2000, 3000, 3000, 9000}
	calls := 0
	scrolls := 0

	height := func() (int64, error) {
		h := heights[calls]
		calls++
		return h, nil
	}
	scroll := func() error {
		scrolls++
		return nil
	}

	err := scrollUntilStable(context.Background(), scroll, height, time.Millisecond, MaxScrollIterations)
	require.NoError(t, err)

	// Initial read plus one read per iteration; stops on the first
	// iteration where the height is unchanged.
	require.Equal(t, 4, calls)
	require.Equal(t, 3, scrolls)
}

func TestScrollUntilStableEnforcesCap(t *testing.T) {
	var h int64
	scrolls := 0

	height := func() (int64, error) {
		h += 500 // never stabilizes
		return h, nil
	}
	scroll := func() error {
		scrolls++
		return nil
	}

	err := scrollUntilStable(context.Background(), scroll, height, 0, MaxScrollIterations)
	require.NoError(t, err)
	require.Equal(t, MaxScrollIterations, scrolls)
}

func TestScrollUntilStableRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	height := func() (int64, error) { return 100, nil }
	scroll := func() error { return nil }

	err := scrollUntilStable(ctx, scroll, height, time.Second, MaxScrollIterations)
	require.ErrorIs(t, err, context.Canceled)
}
