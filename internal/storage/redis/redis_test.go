package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kriya/internal/cart"
	"kriya/internal/config"
)

func testClient(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := NewClient(context.Background(), config.RedisConfig{Addrs: []string{addr}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client, time.Minute)
}

func TestStoreRoundTrip(t *testing.T) {
	s := testClient(t)
	key := "test:cart:" + uuid.NewString()

	_, ok, err := s.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(key, `[]`))
	v, ok, err := s.Get(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove(key))
	require.NoError(t, s.Remove(key))
	_, ok, _ = s.Get(key)
	assert.False(t, ok)
}

func TestStoreBacksCartManager(t *testing.T) {
	s := testClient(t)
	key := "test:cart:" + uuid.NewString()
	t.Cleanup(func() { _ = s.Remove(key) })

	m := cart.New(s, key)
	m.AddItem(cart.ProductRef{ID: "batik-tulis-01", Price: 750000}, 2, "", "")
	again := cart.New(s, key).Items()
	require.Len(t, again, 1)
	assert.Equal(t, 2, again[0].Quantity)
}

func TestNewClientFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := NewClient(ctx, config.RedisConfig{Addrs: []string{"127.0.0.1:1"}})
	assert.Error(t, err)
}
