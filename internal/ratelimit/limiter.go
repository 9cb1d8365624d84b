// Package ratelimit throttles roster mutations per participant using Redis.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether an operation may proceed.
type Limiter interface {
	Allow(ctx context.Context, operation, subject string) error
}

type Config struct {
	Limit  int
	Window time.Duration
}

// RedisLimiter is a fixed-window counter: INCR the key, set its TTL on the first
// hit, reject while the count is above Limit.
type RedisLimiter struct {
	config *Config
	redis  *redis.Client
	logger logger.Logger
}

func NewRedisLimiter(config *Config, client *redis.Client, log logger.Logger) *RedisLimiter {
	return &RedisLimiter{
		config: config,
		redis:  client,
		logger: log.WithFields(map[string]interface{}{"component": "ratelimit"}),
	}
}

func Key(operation, subject string) string {
	return fmt.Sprintf("ratelimit:%s:%s", operation, strings.ToLower(strings.TrimSpace(subject)))
}

// Allow returns a RATE_LIMITED StandardError when the window is exhausted.
// Redis failures let the request through.
func (l *RedisLimiter) Allow(ctx context.Context, operation, subject string) error {
	key := Key(operation, subject)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limit check failed, allowing request", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil
	}

	if count == 1 {
		l.startWindow(ctx, key)
	}

	if count > int64(l.config.Limit) {
		retryAfter, err := l.redis.TTL(ctx, key).Result()
		if err != nil {
			retryAfter = l.config.Window
		} else if retryAfter < 0 {
			// the EXPIRE on the first hit was lost; without a TTL the key would reject forever
			l.startWindow(ctx, key)
			retryAfter = l.config.Window
		}
		return apperrors.NewRateLimitedError(key, retryAfter)
	}

	return nil
}

func (l *RedisLimiter) startWindow(ctx context.Context, key string) {
	if err := l.redis.Expire(ctx, key, l.config.Window).Err(); err != nil {
		l.logger.Warn("failed to set rate limit window", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Unlimited allows everything.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string, string) error { return nil }
