package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, namespace string) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, namespace), mr
}

func TestStore_GetSetClear(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, "alice")

	_, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMany(ctx, map[string]string{"token": "A1", "refreshToken": "R1"}))
	require.NoError(t, s.Set(ctx, "userId", "u1"))

	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A1", v)
	assert.Equal(t, "R1", mr.HGet("flashcards:session:alice", "refreshToken"))

	require.NoError(t, s.Clear(ctx, "token", "refreshToken", "missing"))
	_, ok, err = s.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "u1", mr.HGet("flashcards:session:alice", "userId"))
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	a := NewStore(rdb, "a")
	b := NewStore(rdb, "b")

	require.NoError(t, a.Set(ctx, "token", "A"))
	_, ok, err := b.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_EmptyBatches(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "x")

	assert.NoError(t, s.SetMany(ctx, nil))
	assert.NoError(t, s.Clear(ctx))
}

func TestStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	s := NewStore(rdb, "x")
	mr.Close()

	_, _, err = s.Get(ctx, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get session value")
}

func TestConnect(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb, err := Connect(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer rdb.Close()

	_, err = Connect(ctx, "not-a-url")
	require.Error(t, err)
}
