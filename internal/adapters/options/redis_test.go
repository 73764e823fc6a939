package options

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

// Runs only when REDIS_TEST_ADDR points at a disposable Redis.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	return NewRedisStore(client, "test:"+uuid.New().String()+":")
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	_, err := s.Get(ctx, domain.SettingsOptionKey)
	assert.ErrorIs(t, err, domain.ErrOptionNotFound)

	require.NoError(t, s.Set(ctx, domain.SettingsOptionKey, []byte(`{"paypal_pro_api_username":"u"}`)))
	require.NoError(t, s.Set(ctx, domain.SettingsOptionKey, []byte(`{"paypal_pro_api_username":"v"}`)))

	got, err := s.Get(ctx, domain.SettingsOptionKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paypal_pro_api_username":"v"}`, string(got))

	t.Cleanup(func() { s.client.Del(ctx, s.prefix+domain.SettingsOptionKey) })
}
