package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Store manages sliding-window limiters for multiple clients.
// It provides methods to check budgets and clean up idle limiters.
type Store struct {
	// limiters maps client identifiers to their limiters
	limiters map[string]*Limiter

	// limit and window configure limiters created by this store
	limit  int
	window time.Duration

	// mu protects concurrent access to the limiters map
	mu sync.RWMutex

	// cleanupInterval controls how often idle limiters are removed
	cleanupInterval time.Duration

	// done stops the cleanup goroutine
	done chan struct{}
}

// NewStore creates a new store for managing sliding-window limiters.
//
// Parameters:
//   - limit: The event budget per window for every client
//   - window: The length of the sliding window
//   - cleanupInterval: How often to remove idle limiters
//
// Returns:
//   - A configured limiter store
func NewStore(limit int, window, cleanupInterval time.Duration) *Store {
	store := &Store{
		limiters:        make(map[string]*Limiter),
		limit:           limit,
		window:          window,
		cleanupInterval: cleanupInterval,
		done:            make(chan struct{}),
	}

	go store.cleanupRoutine()

	return store
}

// Allow checks whether the client identified by key may perform another event
// inside the current window. A limiter is created on first sight of a key.
//
// Parameters:
//   - key: The unique identifier for the client (e.g., "actorID:remoteAddr")
//
// Returns:
//   - true if the event is admitted
func (s *Store) Allow(key string) bool {
	return s.getLimiter(key).Allow()
}

// Remaining reports the unused event budget for the client identified by key.
func (s *Store) Remaining(key string) int {
	return s.getLimiter(key).Remaining()
}

// Reset clears the recorded events for the client identified by key.
func (s *Store) Reset(key string) {
	s.getLimiter(key).Reset()
}

// getLimiter returns the limiter for the specified client, creating one if it
// does not exist yet.
func (s *Store) getLimiter(key string) *Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[key]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have created it between the two locks
	if limiter, exists = s.limiters[key]; exists {
		return limiter
	}

	limiter = NewLimiter(s.limit, s.window)
	s.limiters[key] = limiter

	return limiter
}

// cleanupRoutine periodically removes idle limiters to prevent memory growth
// from many one-time clients. This runs in a separate goroutine.
func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// Stop terminates the cleanup goroutine. The store remains usable; only the
// background pruning stops.
func (s *Store) Stop() {
	close(s.done)
}

// cleanup removes limiters whose last activity is older than the window.
func (s *Store) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, limiter := range s.limiters {
		if limiter.idle(now) {
			delete(s.limiters, key)
			removed++
		}
	}

	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Cleaned up idle rate limiters")
	}
}
