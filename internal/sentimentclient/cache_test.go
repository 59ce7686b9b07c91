package sentimentclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/sentimentclient"
)

func TestRedisCache_RoundTripAndExpiry(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := sentimentclient.NewRedisCache(rdb, time.Minute)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "bom dia")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	want := &domain.SentimentResult{Label: "positive", Score: 0.77}
	require.NoError(t, cache.Set(ctx, "bom dia", want))

	got, ok, err := cache.Get(ctx, "bom dia")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, time.Minute, mr.TTL(sentimentclient.CacheKey("bom dia")))

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "bom dia")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire")
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, mr.Set(sentimentclient.CacheKey("oi"), "not json"))

	_, ok, err := sentimentclient.NewRedisCache(rdb, 0).Get(context.Background(), "oi")
	assert.Error(t, err)
	assert.False(t, ok)
}
