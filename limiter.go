package pubadmin

import (
	"sync"
	"time"
)

// ActionLimiter rate-limits a destructive action, such as bulk deletes,
// per IP address.
type ActionLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewActionLimiter creates an ActionLimiter that allows max actions per window.
func NewActionLimiter(max int, window time.Duration) *ActionLimiter {
	l := &ActionLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		stop:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *ActionLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			kept := recent(hits, cutoff)
			if len(kept) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Stop ends the background cleanup.
func (l *ActionLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Allow reports whether the IP is under the limit and, if so, records the action.
func (l *ActionLimiter) Allow(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := recent(l.hits[ip], cutoff)
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, time.Now())
	return true
}

// Remaining returns how many actions the IP may still take in the current window.
func (l *ActionLimiter) Remaining(ip string) int {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := recent(l.hits[ip], cutoff)
	l.hits[ip] = kept
	return max(l.max-len(kept), 0)
}

func recent(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
