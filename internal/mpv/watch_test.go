package mpv

import (
	"context"
	"errors"
	"testing"
	"time"
)

func startWatcher(t *testing.T) (*fakePlayer, <-chan int64, context.CancelFunc, <-chan error) {
	t.Helper()
	p, c := newFakePlayer(t, nil)
	times := make(chan int64, 8)
	w := &TimeWatcher{
		Client:      c,
		UnhookDelay: 50 * time.Millisecond,
		OnTime:      func(ms int64) { times <- ms },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(cancel)

	p.waitFor(t, "observe_property", 1)
	return p, times, cancel, done
}

func TestTimeWatcherPauseCycle(t *testing.T) {
	p, times, cancel, done := startWatcher(t)

	p.emit(pauseObserverID, "pause", true)
	p.waitFor(t, "observe_property", 2)

	p.emit(timePosObserverID, "time-pos", 83.4567)
	select {
	case ms := <-times:
		if ms != 83457 {
			t.Errorf("expected 83457, got %d", ms)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for position")
	}

	p.emit(pauseObserverID, "pause", false)
	p.waitFor(t, "unobserve_property", 1)

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTimeWatcherQuickResumeKeepsObserving(t *testing.T) {
	p, _, _, _ := startWatcher(t)

	p.emit(pauseObserverID, "pause", true)
	p.waitFor(t, "observe_property", 2)

	p.emit(pauseObserverID, "pause", false)
	p.emit(pauseObserverID, "pause", true)
	time.Sleep(200 * time.Millisecond)

	if n := p.count("unobserve_property"); n != 0 {
		t.Errorf("expected no unobserve after a quick re-pause, got %d", n)
	}
	if n := p.count("observe_property"); n != 2 {
		t.Errorf("expected time-pos observed once, got %d observe commands", n)
	}
}

func TestTimeWatcherConnectionLost(t *testing.T) {
	p, _, _, done := startWatcher(t)
	_ = p.conn.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected an error when the connection ends")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestTimeWatcherReportsDelayAndTrack(t *testing.T) {
	p, c := newFakePlayer(t, nil)
	delays := make(chan int64, 4)
	tracks := make(chan int64, 4)
	w := &TimeWatcher{
		Client:  c,
		OnDelay: func(ms int64) { delays <- ms },
		OnTrack: func(id int64) { tracks <- id },
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()
	p.waitFor(t, "observe_property", 3)

	p.emit(subDelayObserverID, "sub-delay", -0.25)
	p.emit(sidObserverID, "sid", 2)
	p.emit(sidObserverID, "sid", false)

	expect := func(ch <-chan int64, want int64) {
		t.Helper()
		select {
		case got := <-ch:
			if got != want {
				t.Errorf("expected %d, got %d", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d", want)
		}
	}
	expect(delays, -250)

	// order between the two track events is not guaranteed
	seen := map[int64]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-tracks:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for track change")
		}
	}
	if !seen[2] || !seen[0] {
		t.Errorf("expected tracks 2 and 0, got %v", seen)
	}
}
