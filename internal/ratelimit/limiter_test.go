package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func createTestConfig() *Config {
	return &Config{
		Limit:  2,
		Window: time.Minute,
	}
}

// ==========================
// miniredis
// ==========================

func TestRedisLimiter_AllowsUpToLimit(t *testing.T) {
	mr, client := setupRedis(t)
	limiter := NewRedisLimiter(createTestConfig(), client, logger.NewTestLogger(t))
	ctx := context.Background()

	assert.NoError(t, limiter.Allow(ctx, "signup", "a@x.edu"))
	assert.NoError(t, limiter.Allow(ctx, "signup", "a@x.edu"))

	err := limiter.Allow(ctx, "signup", "a@x.edu")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateLimited)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, 60, stdErr.Metadata["retryAfterSeconds"])

	assert.Equal(t, time.Minute, mr.TTL(Key("signup", "a@x.edu")))
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	_, client := setupRedis(t)
	limiter := NewRedisLimiter(createTestConfig(), client, logger.NewTestLogger(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, limiter.Allow(ctx, "signup", "a@x.edu"))
	}

	assert.NoError(t, limiter.Allow(ctx, "signup", "b@x.edu"))
	assert.NoError(t, limiter.Allow(ctx, "unregister", "a@x.edu"))
	assert.Error(t, limiter.Allow(ctx, "signup", " A@X.edu "))
}

func TestRedisLimiter_WindowExpires(t *testing.T) {
	mr, client := setupRedis(t)
	limiter := NewRedisLimiter(createTestConfig(), client, logger.NewTestLogger(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, limiter.Allow(ctx, "signup", "a@x.edu"))
	}
	require.Error(t, limiter.Allow(ctx, "signup", "a@x.edu"))

	mr.FastForward(time.Minute + time.Second)

	assert.NoError(t, limiter.Allow(ctx, "signup", "a@x.edu"))
}

// ==========================
// redismock
// ==========================

func TestRedisLimiter_FailsOpenOnRedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRedisLimiter(createTestConfig(), client, logger.NewTestLogger(t))

	key := Key("signup", "a@x.edu")
	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))

	assert.NoError(t, limiter.Allow(context.Background(), "signup", "a@x.edu"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_CommandSequence(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRedisLimiter(&Config{Limit: 1, Window: 30 * time.Second}, client, logger.NewTestLogger(t))
	key := Key("unregister", "a@x.edu")

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, 30*time.Second).SetVal(true)
	require.NoError(t, limiter.Allow(context.Background(), "unregister", "a@x.edu"))

	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectTTL(key).SetVal(12 * time.Second)
	err := limiter.Allow(context.Background(), "unregister", "a@x.edu")
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, 12, stdErr.Metadata["retryAfterSeconds"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_RestoresLostWindow(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRedisLimiter(&Config{Limit: 1, Window: 30 * time.Second}, client, logger.NewTestLogger(t))
	key := Key("signup", "a@x.edu")

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, 30*time.Second).SetErr(errors.New("connection reset"))
	require.NoError(t, limiter.Allow(context.Background(), "signup", "a@x.edu"))

	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectTTL(key).SetVal(-1)
	mock.ExpectExpire(key, 30*time.Second).SetVal(true)
	err := limiter.Allow(context.Background(), "signup", "a@x.edu")
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, 30, stdErr.Metadata["retryAfterSeconds"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_KeyWithoutTTLRecovers(t *testing.T) {
	mr, client := setupRedis(t)
	limiter := NewRedisLimiter(createTestConfig(), client, logger.NewTestLogger(t))
	ctx := context.Background()
	key := Key("signup", "a@x.edu")

	// a counter left behind without a TTL
	require.NoError(t, mr.Set(key, "5"))
	require.Error(t, limiter.Allow(ctx, "signup", "a@x.edu"))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	assert.NoError(t, limiter.Allow(ctx, "signup", "a@x.edu"))
}

func TestUnlimited(t *testing.T) {
	assert.NoError(t, Unlimited{}.Allow(context.Background(), "signup", "a@x.edu"))
}
