package lynx

import (
	"context"
	"log/slog"
	"time"

	"github.com/sigweihq/ual-lynx/pkg/bridge"
	"github.com/sigweihq/ual-lynx/pkg/scheduler"
)

// pollForBridge checks for the bridge immediately and then on every interval tick,
// for at most attempts ticks. The pending tick is cancelled on every return path.
func pollForBridge(ctx context.Context, locator bridge.Locator, sched scheduler.Scheduler, interval time.Duration, attempts int, logger *slog.Logger) (bool, error) {
	tick := make(chan struct{}, 1)

	for attempt := 0; ; attempt++ {
		if _, ok := locator.Bridge(); ok {
			logger.Debug("wallet bridge found", "attempt", attempt)
			return true, nil
		}
		if attempt >= attempts {
			return false, nil
		}

		logger.Debug("wallet bridge not found, retrying", "attempt", attempt, "interval", interval)
		handle := sched.Schedule(interval, func() {
			select {
			case tick <- struct{}{}:
			default:
			}
		})

		select {
		case <-tick:
		case <-ctx.Done():
			handle.Cancel()
			return false, ctx.Err()
		}
	}
}

// waitForLoadedSignal waits for the locator's loaded signal until timeout elapses
func waitForLoadedSignal(ctx context.Context, locator bridge.Locator, sched scheduler.Scheduler, timeout time.Duration) (bool, error) {
	notifier, ok := locator.(bridge.LoadNotifier)
	if !ok {
		return false, ErrNoLoadSignal
	}

	expired := make(chan struct{})
	handle := sched.Schedule(timeout, func() { close(expired) })
	defer handle.Cancel()

	select {
	case <-notifier.Loaded():
		// The signal only fires once; the bridge may have been withdrawn since
		_, ok := locator.Bridge()
		return ok, nil
	case <-expired:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
