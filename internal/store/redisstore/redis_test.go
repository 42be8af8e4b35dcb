package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestStore_GetSet(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	s := New(addr, "", 0)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	key := "test:redisstore:" + time.Now().Format(time.RFC3339Nano)
	_, err := s.Get(ctx, key)
	require.True(t, errors.Is(err, redis.Nil))

	require.NoError(t, s.Set(ctx, key, []byte(`["science"]`), time.Minute))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `["science"]`, string(got))
	require.NoError(t, s.Delete(ctx, key))
}
