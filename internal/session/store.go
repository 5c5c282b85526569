// Package session keeps one cart per client session in memory.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID string

	mu       sync.Mutex
	cart     *cart.Cart
	lastSeen time.Time
}

// Store maps session ids to sessions. Operations on one session run one at a
// time; sessions idle for longer than the TTL are treated as ended.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session with an empty cart and returns its id.
func (s *Store) Create() string {
	sess := &Session{
		ID:       uuid.NewString(),
		cart:     cart.New(),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.ID
}

// With runs fn with exclusive access to the session's cart.
func (s *Store) With(id string, fn func(c *cart.Cart) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	now := s.now()
	if s.expired(sess, now) {
		return ErrNotFound
	}
	sess.lastSeen = now
	return fn(sess.cart)
}

// End discards the session and its cart.
func (s *Store) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle past the TTL and returns how many were dropped.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := s.expired(sess, now)
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug().Int("expired", n).Int("active", s.Len()).Msg("sessions swept")
			}
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}
