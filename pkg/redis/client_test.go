package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-prints/storefront-backend/pkg/config"
)

func TestIdempotencyKeyNamespacing(t *testing.T) {
	c := &Client{}

	assert.Equal(t, "nlp:idempotency:stripe:evt_123", c.IdempotencyKey("stripe", "evt_123"))
	assert.Equal(t, "nlp:idempotency:stripe", c.IdempotencyKey("stripe", "  "))
}

func TestUninitializedClientErrors(t *testing.T) {
	c := &Client{}
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	require.Error(t, err)
	_, err = c.SetNX(ctx, "k", "v", time.Minute)
	require.Error(t, err)
	require.Error(t, c.Del(ctx, "k"))
	require.Error(t, c.Ping(ctx))
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 8})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 8, opts.PoolSize)
}
