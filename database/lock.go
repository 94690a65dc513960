package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Per-entity lock settings. Every mutation of a bill, claim, shift, billing
// code, or patient override serializes on one of these locks so two requests
// cannot both read stale state and pass a money guard independently.
const (
	lockTTL        = 10 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 2 * time.Second
)

// NewLock acquires a distributed lock using Redis
func NewLock(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if RedisClient == nil {
		return false, errors.New("Redis client is not initialized")
	}

	return RedisClient.SetNX(ctx, key, value, ttl).Result()
}

// ReleaseLock releases a distributed lock using Redis with Lua scripting
func ReleaseLock(ctx context.Context, key string, value string) error {
	if RedisClient == nil {
		return errors.New("Redis client is not initialized")
	}

	const releaseLockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
	`

	script := redis.NewScript(releaseLockScript)
	result, err := script.Run(ctx, RedisClient, []string{key}, value).Result()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result.(int64) == 0 {
		return errors.New("lock release failed: not the lock owner")
	}
	return nil
}

// WithEntityLock runs fn while holding the lock for the given entity key,
// retrying acquisition a few times before giving up.
func WithEntityLock(ctx context.Context, key string, fn func() error) error {
	lockValue := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < lockMaxRetries; i++ {
		locked, err = NewLock(ctx, key, lockValue, lockTTL)
		if err == nil && locked {
			break
		}
		if i < lockMaxRetries-1 {
			time.Sleep(lockRetryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock %s after retries: %w", key, err)
	}
	defer func() {
		if err := ReleaseLock(ctx, key, lockValue); err != nil {
			log.Printf("Failed to release lock %s: %v", key, err)
		}
	}()

	return fn()
}
