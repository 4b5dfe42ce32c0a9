package checkout

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound indicates the requested session does not exist or has
// expired.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps live sessions in memory keyed by id. Sessions carry a TTL
// that mutations refresh; an expired session is indistinguishable from a
// missing one.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns an empty store. A non-positive ttl falls back to one
// hour.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the store clock, for tests.
func (st *Store) SetClock(now func() time.Time) {
	if now != nil {
		st.now = now
	}
}

// Put registers a session and stamps its expiry.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s.createdAt = st.now()
	s.expiresAt = s.createdAt.Add(st.ttl)
	st.sessions[s.ID] = s
}

// Get returns a live session and refreshes its TTL.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.expiresAt.After(st.now()) {
		delete(st.sessions, id)
		return nil, ErrSessionNotFound
	}
	s.expiresAt = st.now().Add(st.ttl)
	return s, nil
}

// Len reports the number of tracked sessions, expired ones included until
// the next sweep.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	removed := 0
	for id, s := range st.sessions {
		if !s.expiresAt.After(now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Janitor sweeps on the given interval until the context is cancelled.
func (st *Store) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
