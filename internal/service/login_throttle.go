package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/admin-panel-backend/internal/config"
)

// LoginThrottle limits repeated failed logins for one email from one client.
type LoginThrottle interface {
	// Allow returns ErrTooManyAttempts when the client is locked out of email.
	Allow(ctx context.Context, clientIP, email string) error
	// Failure records a failed attempt.
	Failure(ctx context.Context, clientIP, email string) error
	// Reset clears the failure counter after a correct password.
	Reset(ctx context.Context, clientIP, email string) error
}

// NoopLoginThrottle never limits.
type NoopLoginThrottle struct{}

func (NoopLoginThrottle) Allow(context.Context, string, string) error   { return nil }
func (NoopLoginThrottle) Failure(context.Context, string, string) error { return nil }
func (NoopLoginThrottle) Reset(context.Context, string, string) error   { return nil }

// The counter and its expiry are updated in one script so a key can never be
// left without a TTL. A key found without one gets the window again.
var (
	failureScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

	attemptsScript = redis.NewScript(`
local n = redis.call('GET', KEYS[1])
if not n then
  return 0
end
if redis.call('PTTL', KEYS[1]) == -1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return tonumber(n)
`)
)

// RedisLoginThrottle counts failures in Redis with a fixed window that starts
// at the first failure.
type RedisLoginThrottle struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisLoginThrottle creates a throttle allowing maxAttempts failures per window.
func NewRedisLoginThrottle(rdb *redis.Client, maxAttempts int, window time.Duration) *RedisLoginThrottle {
	return &RedisLoginThrottle{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func (t *RedisLoginThrottle) Allow(ctx context.Context, clientIP, email string) error {
	key := config.CacheKey.LoginAttemptsKey(clientIP, email)
	n, err := attemptsScript.Run(ctx, t.rdb, []string{key}, t.window.Milliseconds()).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("read login attempts: %w", err)
	}
	if n >= t.maxAttempts {
		return ErrTooManyAttempts
	}
	return nil
}

func (t *RedisLoginThrottle) Failure(ctx context.Context, clientIP, email string) error {
	key := config.CacheKey.LoginAttemptsKey(clientIP, email)
	if err := failureScript.Run(ctx, t.rdb, []string{key}, t.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("count login attempt: %w", err)
	}
	return nil
}

func (t *RedisLoginThrottle) Reset(ctx context.Context, clientIP, email string) error {
	return t.rdb.Del(ctx, config.CacheKey.LoginAttemptsKey(clientIP, email)).Err()
}
