package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/mgpai22/subshift/internal/logging"
)

const (
	pauseObserverID    int64 = 1
	timePosObserverID  int64 = 2
	subDelayObserverID int64 = 3
	sidObserverID      int64 = 4

	// DefaultUnhookDelay is how long playback must run before time-pos
	// updates stop.
	DefaultUnhookDelay = 100 * time.Millisecond
)

// TimeWatcher reports the playback position while the player is paused.
// Position updates are only subscribed to during a pause so a playing video
// does not flood the connection.
type TimeWatcher struct {
	Client      *Client
	UnhookDelay time.Duration
	Logger      *logging.Logger
	// OnTime receives the paused position in whole milliseconds.
	OnTime func(ms int64)
	// OnDelay and OnTrack, when set, receive sub-delay (ms) and sid changes.
	OnDelay func(ms int64)
	OnTrack func(id int64)
}

// Run watches until ctx is done or the connection ends.
func (w *TimeWatcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	delay := w.UnhookDelay
	if delay <= 0 {
		delay = DefaultUnhookDelay
	}

	if err := w.Client.ObserveProperty(ctx, pauseObserverID, "pause"); err != nil {
		return err
	}
	if w.OnDelay != nil {
		if err := w.Client.ObserveProperty(ctx, subDelayObserverID, "sub-delay"); err != nil {
			return err
		}
	}
	if w.OnTrack != nil {
		if err := w.Client.ObserveProperty(ctx, sidObserverID, "sid"); err != nil {
			return err
		}
	}

	var (
		observing bool
		unhook    <-chan time.Time
	)
	events := w.Client.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-unhook:
			unhook = nil
			if observing {
				if err := w.Client.UnobserveProperty(ctx, timePosObserverID); err != nil {
					return err
				}
				observing = false
				logger.Debugw("Stopped position updates")
			}

		case ev, ok := <-events:
			if !ok {
				return w.Client.Err()
			}
			if ev.Name != "property-change" {
				continue
			}
			switch ev.ID {
			case pauseObserverID:
				// events can arrive out of order; the property is authoritative
				var paused bool
				if err := w.Client.GetProperty(ctx, "pause", &paused); err != nil {
					if errors.Is(err, ErrClosed) {
						return err
					}
					if json.Unmarshal(ev.Data, &paused) != nil {
						continue
					}
				}
				if !paused {
					unhook = time.After(delay)
					continue
				}
				unhook = nil
				if !observing {
					if err := w.Client.ObserveProperty(ctx, timePosObserverID, "time-pos"); err != nil {
						return err
					}
					observing = true
					logger.Debugw("Started position updates")
				}

			case timePosObserverID:
				var seconds float64
				if err := json.Unmarshal(ev.Data, &seconds); err != nil {
					continue
				}
				if w.OnTime != nil {
					w.OnTime(toMs(seconds))
				}

			case subDelayObserverID:
				var seconds float64
				if err := json.Unmarshal(ev.Data, &seconds); err == nil && w.OnDelay != nil {
					w.OnDelay(toMs(seconds))
				}

			case sidObserverID:
				var id int64
				if err := json.Unmarshal(ev.Data, &id); err != nil {
					id = 0
				}
				if w.OnTrack != nil {
					w.OnTrack(id)
				}
			}
		}
	}
}

func toMs(seconds float64) int64 {
	return int64(math.Floor(seconds*1000 + 0.5))
}
