package services

import (
	"context"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/apperr"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/session"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store/memstore"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	store    *memstore.Store
	sessions *session.RAMStore
	service  *AuthService
}

func setupAuthService(t *testing.T) *authFixture {
	t.Helper()
	st := memstore.New()
	sessions := session.NewRAMStore(24*time.Hour, abtime.NewManual())
	tokens := utils.NewTokenManager("test_secret", time.Hour)
	svc := NewAuthService(st, sessions, tokens, NewMemoryDenylist(nil)).WithHashCost(bcrypt.MinCost)
	return &authFixture{store: st, sessions: sessions, service: svc}
}

func TestRegisterAndLoginScenario(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	alice, err := f.service.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, alice.Role)
	assert.True(t, alice.Active)
	assert.NotEqual(t, "pw123", alice.PasswordHash)

	_, err = f.service.Register(ctx, "alice-two", "alice@x.com", "pw123")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	_, err = f.service.Register(ctx, "alice", "other@x.com", "pw123")
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	result, err := f.service.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.Session)
	assert.Equal(t, auth.Identity{UserID: alice.ID, Username: "alice", Role: models.RoleUser}, result.Session.Identity)

	claims, err := f.service.AuthenticateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)

	sess, err := f.service.AuthenticateSession(ctx, result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Identity.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	bob, err := f.service.Register(ctx, "bob", "bob@x.com", "pw123")
	require.NoError(t, err)
	inactive := false
	_, err = f.store.UpdateUser(ctx, bob.ID, models.UserUpdate{Active: &inactive})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"Wrong password", "alice", "wrong"},
		{"Unknown user", "nobody", "pw123"},
		{"Inactive user", "bob", "pw123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, ErrInvalidCredentials.Error(), err.Error())
		})
	}
	assert.Equal(t, 0, f.sessions.Len())
}

func TestRevokeToken(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	result, err := f.service.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	claims, err := f.service.AuthenticateToken(ctx, result.Token)
	require.NoError(t, err)
	require.NoError(t, f.service.RevokeToken(ctx, claims))

	_, err = f.service.AuthenticateToken(ctx, result.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.service.AuthenticateToken(ctx, "garbage")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestRevokeTokenUsesManagerClock(t *testing.T) {
	ctx := context.Background()
	clock := abtime.NewManualAtTime(time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC))
	tokens := utils.NewTokenManager("test_secret", time.Hour).WithClock(clock.Now)
	svc := NewAuthService(memstore.New(), session.NewRAMStore(time.Hour, clock), tokens, NewMemoryDenylist(clock)).
		WithHashCost(bcrypt.MinCost)

	_, err := svc.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	claims, err := svc.AuthenticateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, tokens.Remaining(claims))
	require.NoError(t, svc.RevokeToken(ctx, claims))

	_, err = svc.AuthenticateToken(ctx, result.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestCredentialsFollowStoredUser(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	alice, err := f.service.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	result, err := f.service.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	promoted := models.RoleAdmin
	_, err = f.store.UpdateUser(ctx, alice.ID, models.UserUpdate{Role: &promoted})
	require.NoError(t, err)

	claims, err := f.service.AuthenticateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Identity().Role)
	sess, err := f.service.AuthenticateSession(ctx, result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, sess.Identity.Role)

	inactive := false
	_, err = f.store.UpdateUser(ctx, alice.ID, models.UserUpdate{Active: &inactive})
	require.NoError(t, err)

	_, err = f.service.AuthenticateToken(ctx, result.Token)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	_, err = f.service.AuthenticateSession(ctx, result.Session.ID)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	assert.Equal(t, 0, f.sessions.Len())
}

func TestDestroySession(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	result, err := f.service.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	require.NoError(t, f.service.DestroySession(ctx, result.Session.ID))
	_, err = f.service.AuthenticateSession(ctx, result.Session.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	_, err = f.service.AuthenticateSession(ctx, "")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestCurrentUser(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	alice, err := f.service.Register(ctx, "alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	got, err := f.service.CurrentUser(ctx, auth.IdentityOf(alice))
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", got.Email)

	_, err = f.store.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	_, err = f.service.CurrentUser(ctx, auth.IdentityOf(alice))
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestEnsureAdmin(t *testing.T) {
	f := setupAuthService(t)
	ctx := context.Background()

	created, err := f.service.EnsureAdmin(ctx, "admin", "admin@example.com", "12345")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.service.EnsureAdmin(ctx, "admin", "admin@example.com", "12345")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := f.store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	created, err = f.service.EnsureAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestDenylists(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	clock := abtime.NewManual()
	lists := map[string]TokenDenylist{
		"memory": NewMemoryDenylist(clock),
		"redis":  NewRedisDenylist(redis.NewClient(&redis.Options{Addr: mr.Addr()})),
	}
	advance := func(d time.Duration) {
		clock.Advance(d)
		mr.FastForward(d)
	}

	ctx := context.Background()
	for name, list := range lists {
		t.Run(name, func(t *testing.T) {
			ok, err := list.IsDenylisted(ctx, "jti-1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, list.Add(ctx, "jti-1", time.Minute))
			ok, err = list.IsDenylisted(ctx, "jti-1")
			require.NoError(t, err)
			assert.True(t, ok)

			advance(time.Minute)
			ok, err = list.IsDenylisted(ctx, "jti-1")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, list.Add(ctx, "jti-2", 0))
			ok, err = list.IsDenylisted(ctx, "jti-2")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}
