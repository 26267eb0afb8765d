package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	cache := NewCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "rates", `{"USD":1}`, time.Minute))

	val, err := cache.Get(ctx, "rates")
	require.NoError(t, err)
	assert.Equal(t, `{"USD":1}`, val)

	// expiry is honored
	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, "rates")
	assert.Error(t, err)
}
