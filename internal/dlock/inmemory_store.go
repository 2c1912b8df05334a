package dlock

import (
	"context"
	"sync"
)

// inMemoryStore keeps leases in a map. It only coordinates callers inside one
// process and is meant for local runs and tests.
type inMemoryStore struct {
	leases map[string]Lease
	mu     sync.Mutex
}

func NewInMemoryStore() *inMemoryStore {
	return &inMemoryStore{
		leases: make(map[string]Lease),
	}
}

func (s *inMemoryStore) TryInsert(ctx context.Context, lease Lease) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leases[lease.ResourceID]; ok {
		return ErrLeaseExists
	}
	s.leases[lease.ResourceID] = lease
	return nil
}

func (s *inMemoryStore) Get(ctx context.Context, resourceID string) (Lease, bool, error) {
	if err := ctx.Err(); err != nil {
		return Lease{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lease, ok := s.leases[resourceID]
	return lease, ok, nil
}

func (s *inMemoryStore) DeleteIfOwned(ctx context.Context, resourceID, ownerToken string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lease, ok := s.leases[resourceID]
	if !ok || lease.OwnerToken != ownerToken {
		return false, nil
	}
	delete(s.leases, resourceID)
	return true, nil
}

func (s *inMemoryStore) DeleteUnconditional(ctx context.Context, resourceID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leases[resourceID]; !ok {
		return false, nil
	}
	delete(s.leases, resourceID)
	return true, nil
}
