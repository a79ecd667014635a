package assessment

import (
	"sync"
	"time"
)

// Countdown is the cancellable timer owned by a timed session. It is started
// at session creation and stopped on submission or teardown; it never
// outlives its attempt.
type Countdown struct {
	mu        sync.Mutex
	remaining int64

	stop     chan struct{}
	stopOnce sync.Once
}

// startCountdown ticks once per interval, decrementing the remaining seconds
// counter. When it reaches zero it fires onExpire exactly once and exits.
func startCountdown(seconds int64, interval time.Duration, onExpire func()) *Countdown {
	c := &Countdown{remaining: seconds, stop: make(chan struct{})}
	go c.run(interval, onExpire)
	return c
}

func (c *Countdown) run(interval time.Duration, onExpire func()) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			c.mu.Lock()
			c.remaining--
			expired := c.remaining <= 0
			if expired {
				c.remaining = 0
			}
			c.mu.Unlock()
			if expired {
				onExpire()
				return
			}
		}
	}
}

// Stop cancels the countdown. Idempotent, non-blocking: a tick already past
// the stop check may still call onExpire, which the session's phase guard
// turns into a no-op.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Countdown) Remaining() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}
