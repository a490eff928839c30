package file

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/flashcards-client/internal/testutil"
)

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := NewStore(path, testutil.MakeNoopLogger())
	require.NoError(t, err)

	require.NoError(t, s.SetMany(ctx, map[string]string{"token": "A1", "refreshToken": "R1"}))
	require.NoError(t, s.Set(ctx, "userId", "u1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := NewStore(path, testutil.MakeNoopLogger())
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A1", v)

	require.NoError(t, reopened.Clear(ctx, "token", "refreshToken"))
	_, ok, err = reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := NewStore(path, testutil.MakeNoopLogger())
	require.NoError(t, err)
	v, ok, err = again.Get(ctx, "userId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u1", v)
	_, ok, _ = again.Get(ctx, "refreshToken")
	assert.False(t, ok)
}

func TestStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "session.json"), testutil.MakeNoopLogger())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set(ctx, "token", "A"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session.json", entries[0].Name())
}

func TestNewStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewStore(path, testutil.MakeNoopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse session file")
}

func TestStore_WatchPicksUpExternalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := filepath.Join(t.TempDir(), "session.json")

	reader, err := NewStore(path, testutil.MakeNoopLogger())
	require.NoError(t, err)
	require.NoError(t, reader.Watch(ctx))
	t.Cleanup(func() { _ = reader.Close() })

	writer, err := NewStore(path, testutil.MakeNoopLogger())
	require.NoError(t, err)
	require.NoError(t, writer.SetMany(ctx, map[string]string{"token": "A9"}))

	assert.Eventually(t, func() bool {
		v, ok, _ := reader.Get(ctx, "token")
		return ok && v == "A9"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, writer.Clear(ctx, "token"))

	assert.Eventually(t, func() bool {
		_, ok, _ := reader.Get(ctx, "token")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStore_WatchNeverRollsBackLocalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := NewStore(filepath.Join(t.TempDir(), "session.json"), testutil.MakeNoopLogger())
	require.NoError(t, err)
	require.NoError(t, s.Watch(ctx))
	t.Cleanup(func() { _ = s.Close() })

	const writes = 300
	var committed atomic.Int64
	committed.Store(-1)
	done := make(chan error, 1)

	go func() {
		for i := 0; i < writes; i++ {
			if err := s.SetMany(ctx, map[string]string{"token": strconv.Itoa(i), "refreshToken": "R"}); err != nil {
				done <- err
				return
			}
			committed.Store(int64(i))
		}
		done <- nil
	}()

	for finished := false; !finished; {
		select {
		case err := <-done:
			require.NoError(t, err)
			finished = true
		default:
		}

		floor := committed.Load()
		v, ok, err := s.Get(ctx, "token")
		require.NoError(t, err)
		if floor < 0 {
			continue
		}
		require.True(t, ok, "token missing after write %d", floor)
		got, err := strconv.Atoi(v)
		require.NoError(t, err)
		require.GreaterOrEqual(t, int64(got), floor, "read older value after write %d", floor)
	}

	// let pending watcher events drain, then the last write must still be visible
	time.Sleep(100 * time.Millisecond)
	v, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, strconv.Itoa(writes-1), v)
}

func TestStore_CloseWithoutWatch(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "session.json"), testutil.MakeNoopLogger())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
