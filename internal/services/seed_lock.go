package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SeedLockKey = "lock:seed"
	// SeedLockTTL bounds how long a crashed holder can block other instances.
	SeedLockTTL = 60 * time.Second
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a single-key Redis lock (SET NX PX with a random token).
type RedisLocker struct {
	client   *redis.Client
	key      string
	ttl      time.Duration
	wait     time.Duration
	interval time.Duration
}

func NewRedisLocker(client *redis.Client, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:   client,
		key:      key,
		ttl:      ttl,
		wait:     2 * ttl,
		interval: 200 * time.Millisecond,
	}
}

// Lock blocks until the lock is acquired, ctx is done, or the wait budget runs out.
func (l *RedisLocker) Lock(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis setnx %s: %w", l.key, err)
		}
		if ok {
			return func(ctx context.Context) error {
				return releaseScript.Run(ctx, l.client, []string{l.key}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%s: %w", l.key, ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}
}
