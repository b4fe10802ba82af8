package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/thejerf/abtime"
)

const denylistPrefix = "denylist:"

// TokenDenylist records revoked bearer tokens by their jti until they would
// have expired anyway.
type TokenDenylist interface {
	Add(ctx context.Context, tokenID string, expiration time.Duration) error
	IsDenylisted(ctx context.Context, tokenID string) (bool, error)
}

type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func (d *RedisDenylist) Add(ctx context.Context, tokenID string, expiration time.Duration) error {
	if expiration <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+tokenID, 1, expiration).Err()
}

func (d *RedisDenylist) IsDenylisted(ctx context.Context, tokenID string) (bool, error) {
	val, err := d.client.Get(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) { // key does not exist
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}

// MemoryDenylist is the in-process denylist used with the memory session
// backend.
type MemoryDenylist struct {
	clock abtime.AbstractTime

	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryDenylist(clock abtime.AbstractTime) *MemoryDenylist {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &MemoryDenylist{clock: clock, entries: map[string]time.Time{}}
}

func (d *MemoryDenylist) Add(ctx context.Context, tokenID string, expiration time.Duration) error {
	if expiration <= 0 {
		return nil
	}
	now := d.clock.Now()

	d.mu.Lock()
	defer d.mu.Unlock()
	for id, until := range d.entries {
		if !now.Before(until) {
			delete(d.entries, id)
		}
	}
	d.entries[tokenID] = now.Add(expiration)
	return nil
}

func (d *MemoryDenylist) IsDenylisted(ctx context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !d.clock.Now().Before(until) {
		delete(d.entries, tokenID)
		return false, nil
	}
	return true, nil
}
