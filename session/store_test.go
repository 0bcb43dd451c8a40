package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "sid-1", KeyUserEmail)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "sid-1", KeyUserEmail, "a@b.co"))
	require.NoError(t, s.Set(ctx, "sid-1", KeyAuthToken, "tok"))
	require.NoError(t, s.Set(ctx, "sid-2", KeyUserEmail, "other@b.co"))

	v, ok, err := s.Get(ctx, "sid-1", KeyUserEmail)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", v)

	require.NoError(t, s.Set(ctx, "sid-1", KeyUserEmail, "b@b.co"))
	v, _, _ = s.Get(ctx, "sid-1", KeyUserEmail)
	assert.Equal(t, "b@b.co", v, "last writer wins")

	require.NoError(t, s.Delete(ctx, "sid-1", KeyUserEmail, KeyAuthToken))
	_, ok, _ = s.Get(ctx, "sid-1", KeyAuthToken)
	assert.False(t, ok)

	v, _, _ = s.Get(ctx, "sid-2", KeyUserEmail)
	assert.Equal(t, "other@b.co", v, "sessions are isolated")

	require.NoError(t, s.Delete(ctx, "missing", KeyCart))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpires(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(context.Background(), "sid", KeyCart, "2"))

	now = now.Add(2 * time.Minute)
	_, ok, err := s.Get(context.Background(), "sid", KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreReadSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "sid", KeyCart, "2"))
	for i := 0; i < 3; i++ {
		now = now.Add(45 * time.Second)
		v, ok, err := s.Get(ctx, "sid", KeyCart)
		require.NoError(t, err)
		require.True(t, ok, "read %d", i)
		assert.Equal(t, "2", v)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Unix(1_700_000_000, 0)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "stale", KeyCart, "1"))
	now = now.Add(30 * time.Second)
	require.NoError(t, s.Set(ctx, "fresh", KeyCart, "2"))
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	_, ok, _ := s.Get(ctx, "fresh", KeyCart)
	assert.True(t, ok)
}

func TestMemoryStoreSweeperRuns(t *testing.T) {
	s := NewMemoryStore(time.Millisecond)
	require.NoError(t, s.Set(context.Background(), "sid", KeyCart, "1"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartSweeper(ctx, 5*time.Millisecond, zerolog.Nop())

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRedisStoreReadSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(ctx, "sid", KeyCart, "2"))
	mr.FastForward(50 * time.Minute)
	assert.Equal(t, 10*time.Minute, mr.TTL("session:sid"))

	v, ok, err := s.Get(ctx, "sid", KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, time.Hour, mr.TTL("session:sid"))

	_, ok, err = s.Get(ctx, "sid", KeyUserEmail)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Hour)
	_, ok, err = s.Get(ctx, "sid", KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("session:sid"), "reads never resurrect an expired session")
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStore(mr.Addr(), time.Hour)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)

	assert.True(t, mr.Exists("session:sid-2"))
	assert.Equal(t, time.Hour, mr.TTL("session:sid-2"))
}
