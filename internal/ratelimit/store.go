// Package ratelimit counts requests per client in fixed windows.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window is the state of one client's current window after a hit.
type Window struct {
	Count   int64
	ResetAt time.Time
}

// Store records a hit for key and returns the window it landed in.
// A window opens on the first hit and lasts for the given duration.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration) (Window, error)
}

// MemoryStore keeps windows in process memory. Expired windows are dropped
// lazily on Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]Window
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]Window),
		now:     time.Now,
	}
}

// Hit implements Store.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.ResetAt) {
		w = Window{ResetAt: now.Add(window)}
	}
	w.Count++
	s.windows[key] = w

	return w, nil
}

// Sweep drops every expired window and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for key, w := range s.windows {
		if !now.Before(w.ResetAt) {
			delete(s.windows, key)
			dropped++
		}
	}
	return dropped
}
