// Package session keeps the server-side sessions behind the browser cookie.
// Sessions live for a fixed TTL from creation and are never extended.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        string        `json:"id"`
	Identity  auth.Identity `json:"identity"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Store interface {
	Create(ctx context.Context, id auth.Identity) (*Session, error)
	// Get returns ErrSessionNotFound for unknown and expired sessions.
	Get(ctx context.Context, sessionID string) (*Session, error)
	Destroy(ctx context.Context, sessionID string) error
}

func newSessionID() string {
	return uuid.NewString()
}
