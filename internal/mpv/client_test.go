package mpv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestClientGetProperty(t *testing.T) {
	_, c := newFakePlayer(t, map[string]any{"path": "/videos/movie.mkv"})
	ctx := context.Background()

	var path string
	if err := c.GetProperty(ctx, "path", &path); err != nil {
		t.Fatalf("GetProperty failed: %v", err)
	}
	if path != "/videos/movie.mkv" {
		t.Errorf("expected /videos/movie.mkv, got %q", path)
	}

	err := c.GetProperty(ctx, "sub-delay", new(float64))
	if !errors.Is(err, ErrPropertyUnavailable) {
		t.Errorf("expected ErrPropertyUnavailable, got %v", err)
	}

	if _, err := c.Command(ctx, "bogus"); err == nil || !strings.Contains(err.Error(), "invalid parameter") {
		t.Errorf("expected invalid parameter error, got %v", err)
	}
}

func TestClientMatchesConcurrentReplies(t *testing.T) {
	props := map[string]any{}
	for i := 0; i < 10; i++ {
		props[fmt.Sprintf("p%d", i)] = i
	}
	_, c := newFakePlayer(t, props)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var got int
			if err := c.GetProperty(context.Background(), fmt.Sprintf("p%d", i), &got); err != nil {
				errs <- err
				return
			}
			if got != i {
				errs <- fmt.Errorf("p%d: got %d", i, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestClientSetProperty(t *testing.T) {
	p, c := newFakePlayer(t, nil)
	if err := c.SetProperty(context.Background(), "sub-delay", 1.5); err != nil {
		t.Fatalf("SetProperty failed: %v", err)
	}
	if got := p.prop("sub-delay"); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestClientEvents(t *testing.T) {
	p, c := newFakePlayer(t, nil)
	go p.emit(7, "volume", 50)

	select {
	case ev := <-c.Events():
		if ev.Name != "property-change" || ev.ID != 7 || string(ev.Data) != "50" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestClientClosed(t *testing.T) {
	_, c := newFakePlayer(t, nil)
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	select {
	case _, ok := <-c.Events():
		if ok {
			t.Fatal("expected events channel to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events channel to close")
	}
	if !errors.Is(c.Err(), ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", c.Err())
	}
	if _, err := c.Command(context.Background(), "get_property", "path"); err == nil {
		t.Error("expected error after Close")
	}
}

func TestClientCommandContext(t *testing.T) {
	_, c := newFakePlayer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the reply may win the race; either outcome must return promptly
	done := make(chan struct{})
	go func() {
		_, _ = c.Command(ctx, "get_property", "path")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Command did not return")
	}
}
