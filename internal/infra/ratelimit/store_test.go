package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	memoryStorage "github.com/gofiber/storage/memory/v2"
	redisStorage "github.com/gofiber/storage/redis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_MemoryWhenAddrEmpty(t *testing.T) {
	s := NewStore(RedisConfig{})
	require.NotNil(t, s)
	_, ok := s.(*memoryStorage.Storage)
	assert.True(t, ok, "expected memory storage, got %T", s)
}

func TestNewStore_FallsBackWhenRedisUnreachable(t *testing.T) {
	s := NewStore(RedisConfig{Addr: "127.0.0.1:1"})
	require.NotNil(t, s)
	_, ok := s.(*memoryStorage.Storage)
	assert.True(t, ok, "expected memory fallback, got %T", s)
}

func TestNewStore_UsesRedisWhenReachable(t *testing.T) {
	mrs, err := miniredis.Run()
	require.NoError(t, err)
	defer mrs.Close()

	s := NewStore(RedisConfig{Addr: mrs.Addr()})
	defer s.Close()

	_, ok := s.(*redisStorage.Storage)
	require.True(t, ok, "expected redis storage, got %T", s)

	require.NoError(t, s.Set("client-key", []byte("3"), time.Minute))
	got, err := mrs.Get("client-key")
	require.NoError(t, err)
	assert.Equal(t, "3", got)

	val, err := s.Get("client-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)
}
