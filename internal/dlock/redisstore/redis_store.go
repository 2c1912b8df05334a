// internal/dlock/redisstore/redis_store.go
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"brain/internal/dlock"

	goredislib "github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "lease:"

	fieldAcquiredAt = "acquired_at"
	fieldOwnerToken = "owner_token"
)

// insertScript writes the lease hash only when the key is absent.
var insertScript = goredislib.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'acquired_at', ARGV[1], 'owner_token', ARGV[2])
return 1
`)

// deleteIfOwnedScript deletes the lease hash only when owner_token matches.
var deleteIfOwnedScript = goredislib.NewScript(`
if redis.call('HGET', KEYS[1], 'owner_token') == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// redisStore implements dlock.Store with one hash per resource. The key never
// expires on its own; staleness is judged by the lease manager.
type redisStore struct {
	client    *goredislib.Client
	keyPrefix string
}

// NewRedisStore creates a lease store on an existing client
func NewRedisStore(client *goredislib.Client) *redisStore {
	return &redisStore{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
}

// NewRedisStoreFromURL creates a client for url, e.g. redis://localhost:6379/0
func NewRedisStoreFromURL(url string) (*redisStore, error) {
	opts, err := goredislib.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedisStore(goredislib.NewClient(opts)), nil
}

func (s *redisStore) key(resourceID string) string {
	return s.keyPrefix + resourceID
}

func (s *redisStore) TryInsert(ctx context.Context, lease dlock.Lease) error {
	inserted, err := insertScript.Run(ctx, s.client,
		[]string{s.key(lease.ResourceID)},
		lease.AcquiredAt.UnixMilli(),
		lease.OwnerToken,
	).Int()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return dlock.ErrLeaseExists
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, resourceID string) (dlock.Lease, bool, error) {
	fields, err := s.client.HGetAll(ctx, s.key(resourceID)).Result()
	if err != nil {
		return dlock.Lease{}, false, err
	}
	if len(fields) == 0 {
		return dlock.Lease{}, false, nil
	}

	millis, err := strconv.ParseInt(fields[fieldAcquiredAt], 10, 64)
	if err != nil {
		return dlock.Lease{}, false, fmt.Errorf("corrupt %s for lease %q: %w", fieldAcquiredAt, resourceID, err)
	}
	return dlock.Lease{
		ResourceID: resourceID,
		AcquiredAt: time.UnixMilli(millis).UTC(),
		OwnerToken: fields[fieldOwnerToken],
	}, true, nil
}

func (s *redisStore) DeleteIfOwned(ctx context.Context, resourceID, ownerToken string) (bool, error) {
	deleted, err := deleteIfOwnedScript.Run(ctx, s.client, []string{s.key(resourceID)}, ownerToken).Int()
	if err != nil && !errors.Is(err, goredislib.Nil) {
		return false, err
	}
	return deleted > 0, nil
}

func (s *redisStore) DeleteUnconditional(ctx context.Context, resourceID string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.key(resourceID)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// Ping checks the connection to redis
func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *redisStore) Close() error {
	return s.client.Close()
}
