package cooldown

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Guard lets one trigger through per window and refuses the rest. The zero
// value has no window and always allows.
type Guard struct {
	mu      sync.Mutex
	window  time.Duration
	limiter *rate.Limiter
	now     func() time.Time
}

func New(window time.Duration) *Guard {
	g := &Guard{window: window}
	g.limiter = g.newLimiter()
	return g
}

// one token, refilled once per window
func (g *Guard) newLimiter() *rate.Limiter {
	if g.window <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(g.window), 1)
}

// Allow records a trigger and reports whether it falls outside the window
// of the last allowed one.
func (g *Guard) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.limiter == nil {
		return true
	}
	now := time.Now()
	if g.now != nil {
		now = g.now()
	}
	return g.limiter.AllowN(now, 1)
}

// Reset forgets the last trigger.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.limiter = g.newLimiter()
	g.mu.Unlock()
}
