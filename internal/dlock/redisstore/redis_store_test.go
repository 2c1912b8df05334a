package redisstore

import (
	"context"
	"testing"
	"time"

	"brain/internal/dlock"
	"brain/internal/dlock/dlocktest"

	"github.com/alicebob/miniredis/v2"
	goredislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisStoreTestSuite runs the lease store contract against an in-process redis
type RedisStoreTestSuite struct {
	dlocktest.StoreSuite
	mr    *miniredis.Miniredis
	store *redisStore
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())

	var err error
	s.store, err = NewRedisStoreFromURL("redis://" + s.mr.Addr() + "/0")
	s.Require().NoError(err, "Failed to create redis store")
	s.Store = s.store
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

// TestLeaseLayout checks the hash written for a lease
func (s *RedisStoreTestSuite) TestLeaseLayout() {
	acquired := time.UnixMilli(1700000000123).UTC()
	err := s.store.TryInsert(context.Background(), dlock.Lease{
		ResourceID: "memory_lock",
		AcquiredAt: acquired,
		OwnerToken: "host-1-1700000000123-abc",
	})
	s.Require().NoError(err)

	s.Equal("1700000000123", s.mr.HGet("lease:memory_lock", "acquired_at"))
	s.Equal("host-1-1700000000123-abc", s.mr.HGet("lease:memory_lock", "owner_token"))
	s.Equal(time.Duration(0), s.mr.TTL("lease:memory_lock"), "Lease keys must not expire on their own")
}

// TestCorruptLease reports an unparsable timestamp as an error
func (s *RedisStoreTestSuite) TestCorruptLease() {
	s.mr.HSet("lease:broken", "acquired_at", "yesterday", "owner_token", "x")

	_, _, err := s.store.Get(context.Background(), "broken")
	s.Require().Error(err)
	s.Contains(err.Error(), "corrupt acquired_at")
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func TestRedisStore_UnavailableServer(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredislib.NewClient(&goredislib.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := NewRedisStore(client)
	defer store.Close()

	mr.Close()

	ctx := context.Background()
	err := store.TryInsert(ctx, dlock.Lease{ResourceID: "memory_lock", AcquiredAt: time.Now(), OwnerToken: "a"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, dlock.ErrLeaseExists, "A dead server is not contention")

	_, _, err = store.Get(ctx, "memory_lock")
	assert.Error(t, err)
}

func TestNewRedisStoreFromURL_Invalid(t *testing.T) {
	_, err := NewRedisStoreFromURL("localhost:6379")
	assert.Error(t, err)
}
