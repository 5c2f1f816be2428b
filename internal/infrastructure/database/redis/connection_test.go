package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func configFor(mr *miniredis.Miniredis) *config.Config {
	return &config.Config{Redis: config.RedisConfig{
		Host:     mr.Host(),
		Port:     mr.Port(),
		PoolSize: 2,
	}}
}

func TestNewConnection(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewConnection(context.Background(), configFor(mr), logger.Discard())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Health(context.Background()))

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}

func TestNewConnection_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := configFor(mr)
	mr.Close()

	_, err := NewConnection(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
