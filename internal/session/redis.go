package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions as JSON values whose Redis TTL matches the
// session lifetime.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func (s *RedisStore) Create(ctx context.Context, id auth.Identity) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        newSessionID(),
		Identity:  id,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}
