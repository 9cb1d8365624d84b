package database

import (
	"context"
	"testing"

	"activity-signup/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_PingAndClose(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedis(config.RedisConfig{Enabled: true, Address: mr.Addr()})
	require.NoError(t, err)

	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestNewRedis_PingFailsWhenServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client, err := NewRedis(config.RedisConfig{Enabled: true, Address: addr})
	require.NoError(t, err)
	defer client.Close()

	err = client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}
