package credential

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("connection refused")

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, sid, token string) error {
	args := m.Called(ctx, sid, token)
	return args.Error(0)
}

func (m *MockStore) Load(ctx context.Context, sid string) (string, bool, error) {
	args := m.Called(ctx, sid)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Clear(ctx context.Context, sid string) error {
	args := m.Called(ctx, sid)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	db := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = db.Close() })

	return NewRedisStore(db, ttl), mr
}

func TestStores_SaveLoadClear(t *testing.T) {
	redisStore, _ := setupRedisStore(t, time.Hour)

	stores := map[string]Store{
		"redis":    redisStore,
		"memory":   NewMemoryStore(),
		"fallback": NewFallbackStore(NewMemoryStore(), discardLogger()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := store.Load(ctx, "sid-1")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Save(ctx, "sid-1", "first"))
			require.NoError(t, store.Save(ctx, "sid-1", "second"))

			token, found, err := store.Load(ctx, "sid-1")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "second", token)

			_, found, err = store.Load(ctx, "sid-2")
			require.NoError(t, err)
			assert.False(t, found, "sessions must not share tokens")

			require.NoError(t, store.Clear(ctx, "sid-1"))
			require.NoError(t, store.Clear(ctx, "sid-1"), "clearing twice is not an error")

			_, found, err = store.Load(ctx, "sid-1")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	store, mr := setupRedisStore(t, 7*24*time.Hour)

	require.NoError(t, store.Save(context.Background(), "abc", "tok"))

	got, err := mr.Get("session:abc:token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.Equal(t, 7*24*time.Hour, mr.TTL("session:abc:token"))

	mr.FastForward(7*24*time.Hour + time.Second)
	_, found, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := setupRedisStore(t, time.Hour)
	mr.Close()

	ctx := context.Background()
	assert.Error(t, store.Save(ctx, "sid", "tok"))
	_, _, err := store.Load(ctx, "sid")
	assert.Error(t, err)
	assert.Error(t, store.Clear(ctx, "sid"))
}

func TestFallbackStore_PrimaryDown(t *testing.T) {
	ctx := context.Background()
	primary := new(MockStore)
	primary.On("Save", mock.Anything, "sid", "tok").Return(errDown)
	primary.On("Load", mock.Anything, "sid").Return("", false, errDown)
	primary.On("Clear", mock.Anything, "sid").Return(errDown)

	store := NewFallbackStore(primary, discardLogger())

	require.NoError(t, store.Save(ctx, "sid", "tok"))

	token, found, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.Clear(ctx, "sid"))
	_, found, err = store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)

	primary.AssertExpectations(t)
}

func TestFallbackStore_PrimaryIsAuthoritativeWhenUp(t *testing.T) {
	ctx := context.Background()
	primary := new(MockStore)
	primary.On("Save", mock.Anything, "sid", "tok").Return(nil)
	primary.On("Load", mock.Anything, "sid").Return("", false, nil).Once()
	primary.On("Load", mock.Anything, "sid").Return("", false, errDown).Once()

	store := NewFallbackStore(primary, discardLogger())
	require.NoError(t, store.Save(ctx, "sid", "tok"))

	// токен истёк в основном хранилище
	_, found, err := store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)

	// и не воскресает из памяти, когда основное хранилище упало
	_, found, err = store.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, found)

	primary.AssertExpectations(t)
}
