package session

import (
	"context"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
)

var alice = auth.Identity{UserID: 1, Username: "alice", Role: models.RoleUser}

func TestRAMStoreFixedTTL(t *testing.T) {
	clock := abtime.NewManual()
	s := NewRAMStore(24*time.Hour, clock)
	ctx := context.Background()

	sess, err := s.Create(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, alice, sess.Identity)
	assert.Equal(t, sess.CreatedAt.Add(24*time.Hour), sess.ExpiresAt)

	// Reads do not extend the lifetime.
	clock.Advance(23 * time.Hour)
	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ExpiresAt, got.ExpiresAt)

	clock.Advance(time.Hour)
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestRAMStoreDestroyAndPurge(t *testing.T) {
	clock := abtime.NewManual()
	s := NewRAMStore(time.Hour, clock)
	ctx := context.Background()

	first, err := s.Create(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, s.Destroy(ctx, first.ID))
	_, err = s.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.Create(ctx, alice)
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = s.Create(ctx, alice)
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	assert.Equal(t, 1, s.Purge())
	assert.Equal(t, 1, s.Len())
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, 24*time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, alice)
	require.NoError(t, err)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got.Identity)
	assert.Equal(t, 24*time.Hour, mr.TTL(redisKeyPrefix+sess.ID))

	mr.FastForward(24 * time.Hour)
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess, err = s.Create(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, s.Destroy(ctx, sess.ID))
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
