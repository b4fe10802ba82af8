package session

import (
	"context"
	"sync"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/thejerf/abtime"
)

// RAMStore holds sessions in process memory. Expired sessions are dropped
// when they are read and by Purge.
type RAMStore struct {
	ttl   time.Duration
	clock abtime.AbstractTime

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRAMStore(ttl time.Duration, clock abtime.AbstractTime) *RAMStore {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &RAMStore{
		ttl:      ttl,
		clock:    clock,
		sessions: map[string]*Session{},
	}
}

func (s *RAMStore) Create(ctx context.Context, id auth.Identity) (*Session, error) {
	now := s.clock.Now()
	sess := &Session{
		ID:        newSessionID(),
		Identity:  id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	copied := *sess
	return &copied, nil
}

func (s *RAMStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Expired(s.clock.Now()) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *RAMStore) Destroy(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// Purge removes every expired session and returns how many were dropped.
func (s *RAMStore) Purge() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged
}

// Len is the number of stored sessions, expired ones included.
func (s *RAMStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
