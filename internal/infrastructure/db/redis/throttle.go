package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow = 15 * time.Minute
	maxFailures    = 5
)

// LoginThrottle counts failed login attempts per email in Redis.
// Key format: login_fail:<email>, expiring after throttleWindow.
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// TooManyAttempts reports whether the email has reached the failure cap
// within the current window.
func (t *LoginThrottle) TooManyAttempts(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure increments the counter, starting the expiry window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	n, err := t.client.Incr(ctx, t.key(email)).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, t.key(email), throttleWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *LoginThrottle) key(email string) string {
	return "login_fail:" + email
}
