package dlock

import (
	"context"
	"time"
)

// Lease is the persisted claim on a resource. There is at most one per ResourceID.
type Lease struct {
	ResourceID string
	AcquiredAt time.Time
	OwnerToken string
}

// Store is the shared table the lease lives in. It knows nothing about locking;
// exclusivity comes from TryInsert failing for all but one concurrent caller.
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=lease.go -destination=../../mocks/mock_lease_store.go -package=mocks
type Store interface {
	// TryInsert creates the lease row, or returns ErrLeaseExists if one is present
	TryInsert(ctx context.Context, lease Lease) error

	// Get returns the current lease for the resource, if any
	Get(ctx context.Context, resourceID string) (Lease, bool, error)

	// DeleteIfOwned removes the lease only if it still carries ownerToken
	DeleteIfOwned(ctx context.Context, resourceID, ownerToken string) (bool, error)

	// DeleteUnconditional removes the lease whoever owns it
	DeleteUnconditional(ctx context.Context, resourceID string) (bool, error)
}
