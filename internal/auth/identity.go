// Package auth holds the authenticated identity that the authorization
// middleware attaches to a request.
package auth

import (
	"context"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
)

// Identity is the minimal, immutable snapshot of an authenticated user. It
// never carries the password digest.
type Identity struct {
	UserID   uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

func IdentityOf(u *models.User) Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Source records which credential authenticated the request.
type Source int

const (
	SourceToken Source = iota + 1
	SourceSession
)

type contextKey struct{}

type principal struct {
	identity   Identity
	source     Source
	credential string
}

// WithIdentity returns a copy of ctx carrying id. credential is the bearer
// token or session id that proved it.
func WithIdentity(ctx context.Context, id Identity, source Source, credential string) context.Context {
	return context.WithValue(ctx, contextKey{}, principal{identity: id, source: source, credential: credential})
}

func FromContext(ctx context.Context) (Identity, bool) {
	p, ok := ctx.Value(contextKey{}).(principal)
	if !ok {
		return Identity{}, false
	}
	return p.identity, true
}

// CredentialFromContext returns the token or session id that authenticated
// the request together with its source.
func CredentialFromContext(ctx context.Context) (string, Source, bool) {
	p, ok := ctx.Value(contextKey{}).(principal)
	if !ok {
		return "", 0, false
	}
	return p.credential, p.source, true
}
