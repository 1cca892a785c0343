package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginFailuresPrefix = "login_failures:"

// recordFailureScript increments the failure counter and starts the window on
// the first failure only, so repeated failures do not extend the lockout.
var recordFailureScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// LoginLimiter throttles password guessing per email address using a fixed
// window counter of failed attempts.
// Key format: login_failures:<email>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether another login attempt may be made for email.
// A non-positive maxAttempts disables throttling.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}

	raw, err := l.client.Get(ctx, failuresKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return false, fmt.Errorf("login limiter: bad counter %q: %w", raw, err)
	}
	return n < l.maxAttempts, nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	if l.maxAttempts <= 0 {
		return nil
	}
	err := recordFailureScript.Run(ctx, l.client, []string{failuresKey(email)}, l.window.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, failuresKey(email)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func failuresKey(email string) string {
	return loginFailuresPrefix + strings.ToLower(strings.TrimSpace(email))
}
