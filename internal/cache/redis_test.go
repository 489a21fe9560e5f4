package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/cafe-maiolini/internal/config"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

type testStruct struct {
	Name string
	Age  int
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := testStruct{Name: "Alice", Age: 30}
	err := cache.Set(ctx, "user:1", expected, time.Minute)
	require.NoError(t, err)

	var actual testStruct
	found, err := cache.Get(ctx, "user:1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out testStruct
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "key", "value", time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate(ctx, "key")
	require.NoError(t, err)

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out testStruct
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:9999",
		DialTimeout:  100 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}

func TestUserCache(t *testing.T) {
	c, mr := setupTestCache(t)
	users := NewUserCache(c, time.Minute)
	ctx := context.Background()
	user := &models.User{ID: 5, Nome: "Ana", TipoUsuario: models.RoleCliente}

	_, found, err := users.Get(ctx, "sid", "tok")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, users.Set(ctx, "sid", "tok", user))

	got, found, err := users.Get(ctx, "sid", "tok")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, user, got)

	_, found, err = users.Get(ctx, "sid", "other-token")
	require.NoError(t, err)
	assert.False(t, found, "entry belongs to another token")

	raw, err := mr.Get("user:sid")
	require.NoError(t, err)
	assert.NotContains(t, raw, "tok\"", "raw token must not be stored")

	mr.FastForward(2 * time.Minute)
	_, found, err = users.Get(ctx, "sid", "tok")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, users.Set(ctx, "sid", "tok", user))
	require.NoError(t, users.Invalidate(ctx, "sid"))
	_, found, err = users.Get(ctx, "sid", "tok")
	require.NoError(t, err)
	assert.False(t, found)
}
