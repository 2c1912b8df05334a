package dlocktest

import (
	"context"
	"errors"
	"sync"
	"time"

	"brain/internal/dlock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// StoreSuite checks the dlock.Store contract. Adapter tests embed it and set
// Store before the tests run.
type StoreSuite struct {
	suite.Suite
	Store dlock.Store
}

func (s *StoreSuite) newLease() dlock.Lease {
	return dlock.Lease{
		ResourceID: "lease-" + uuid.NewString(),
		AcquiredAt: time.UnixMilli(time.Now().UnixMilli()).UTC(),
		OwnerToken: "owner-" + uuid.NewString(),
	}
}

// TestInsertThenGet stores a lease and reads it back unchanged
func (s *StoreSuite) TestInsertThenGet() {
	ctx := context.Background()
	lease := s.newLease()

	s.Require().NoError(s.Store.TryInsert(ctx, lease), "First insert should succeed")

	got, found, err := s.Store.Get(ctx, lease.ResourceID)
	s.Require().NoError(err)
	s.Require().True(found, "Lease should be found after insert")
	s.Equal(lease.ResourceID, got.ResourceID)
	s.Equal(lease.OwnerToken, got.OwnerToken)
	s.True(lease.AcquiredAt.Equal(got.AcquiredAt), "AcquiredAt should survive the round trip: want %v got %v", lease.AcquiredAt, got.AcquiredAt)
}

// TestGetAbsent reports a missing lease without error
func (s *StoreSuite) TestGetAbsent() {
	_, found, err := s.Store.Get(context.Background(), "absent-"+uuid.NewString())
	s.Require().NoError(err)
	s.False(found)
}

// TestDuplicateInsert keeps the first lease and reports ErrLeaseExists
func (s *StoreSuite) TestDuplicateInsert() {
	ctx := context.Background()
	first := s.newLease()
	second := first
	second.OwnerToken = "owner-" + uuid.NewString()

	s.Require().NoError(s.Store.TryInsert(ctx, first))
	err := s.Store.TryInsert(ctx, second)
	s.Require().ErrorIs(err, dlock.ErrLeaseExists, "Second insert should report an existing lease")

	got, found, err := s.Store.Get(ctx, first.ResourceID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(first.OwnerToken, got.OwnerToken, "Duplicate insert must not overwrite the lease")
}

// TestConcurrentInsertSingleWinner lets many callers race for the same resource
func (s *StoreSuite) TestConcurrentInsertSingleWinner() {
	ctx := context.Background()
	resourceID := "race-" + uuid.NewString()

	const racers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
		existed  int
		failures []error
	)
	start := make(chan struct{})
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease := s.newLease()
			lease.ResourceID = resourceID
			<-start
			err := s.Store.TryInsert(ctx, lease)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				inserted++
			case errors.Is(err, dlock.ErrLeaseExists):
				existed++
			default:
				failures = append(failures, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Empty(failures, "No insert should fail with a store error")
	s.Equal(1, inserted, "Exactly one concurrent insert should win")
	s.Equal(racers-1, existed)
}

// TestDeleteIfOwned removes the lease for the matching token only
func (s *StoreSuite) TestDeleteIfOwned() {
	ctx := context.Background()
	lease := s.newLease()
	s.Require().NoError(s.Store.TryInsert(ctx, lease))

	deleted, err := s.Store.DeleteIfOwned(ctx, lease.ResourceID, "someone-else")
	s.Require().NoError(err)
	s.False(deleted, "A foreign token must not delete the lease")

	_, found, err := s.Store.Get(ctx, lease.ResourceID)
	s.Require().NoError(err)
	s.True(found, "Lease should still be present after a foreign delete")

	deleted, err = s.Store.DeleteIfOwned(ctx, lease.ResourceID, lease.OwnerToken)
	s.Require().NoError(err)
	s.True(deleted)

	_, found, err = s.Store.Get(ctx, lease.ResourceID)
	s.Require().NoError(err)
	s.False(found)

	deleted, err = s.Store.DeleteIfOwned(ctx, lease.ResourceID, lease.OwnerToken)
	s.Require().NoError(err, "Deleting an absent lease is a no-op")
	s.False(deleted)
}

// TestDeleteUnconditional removes the lease whoever owns it
func (s *StoreSuite) TestDeleteUnconditional() {
	ctx := context.Background()
	lease := s.newLease()
	s.Require().NoError(s.Store.TryInsert(ctx, lease))

	deleted, err := s.Store.DeleteUnconditional(ctx, lease.ResourceID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.Store.DeleteUnconditional(ctx, lease.ResourceID)
	s.Require().NoError(err)
	s.False(deleted, "Second delete should find nothing")

	s.Require().NoError(s.Store.TryInsert(ctx, lease), "Insert should succeed again after delete")
}
