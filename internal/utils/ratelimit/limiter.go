// Package ratelimit provides rate limiting functionality for protecting
// abuse-sensitive operations. It implements a sliding-window algorithm with a
// configurable event budget per window.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter represents a sliding-window rate limiter for a specific client
// identity. Each allowed event is timestamped; an event is admitted only while
// fewer than the budget of timestamps fall inside the trailing window.
type Limiter struct {
	// events holds the timestamps of admitted events inside the window
	events []time.Time

	// limit is the maximum number of events per window
	limit int

	// window is the length of the sliding window
	window time.Duration

	// lastSeen is the time of the most recent Allow call, used for cleanup
	lastSeen time.Time

	// mu protects concurrent access to the event list
	mu sync.Mutex
}

// NewLimiter creates a new sliding-window limiter admitting at most limit
// events per window.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		window:   window,
		lastSeen: time.Now(),
	}
}

// Allow checks if an event should be admitted. An admitted event counts
// against the budget immediately; a rejected event does not.
//
// Returns:
//   - true if the event is admitted
//   - false if the budget for the trailing window is exhausted
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.lastSeen = now
	cutoff := now.Add(-l.window)

	// Drop timestamps that have slid out of the window
	kept := l.events[:0]
	for _, t := range l.events {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.events = kept

	if len(l.events) >= l.limit {
		return false
	}

	l.events = append(l.events, now)
	return true
}

// Remaining reports how many events the trailing window still admits.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-l.window)
	inWindow := 0
	for _, t := range l.events {
		if t.After(cutoff) {
			inWindow++
		}
	}

	return l.limit - inWindow
}

// Reset clears all recorded events for the limiter.
// This is useful for administrative actions or testing.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// idle reports whether the limiter has been unused for longer than the window,
// meaning it holds no state worth keeping.
func (l *Limiter) idle(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return now.Sub(l.lastSeen) > l.window
}
