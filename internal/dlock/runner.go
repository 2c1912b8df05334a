package dlock

import (
	"context"
	"time"
)

// releaseTimeout bounds the owner-checked delete issued after the protected work.
const releaseTimeout = 5 * time.Second

// runHeld executes fn while the lease identified by token is held. The release
// is deferred so it also runs when fn panics; the panic then continues unwinding.
func (m *LeaseManager) runHeld(ctx context.Context, token string, fn func(ctx context.Context) error) error {
	defer m.release(ctx, token)
	return fn(ctx)
}

// release deletes the lease only if it still carries token. A lease reclaimed by
// someone else while fn ran is left alone. Failures are logged, never returned,
// so they cannot mask fn's outcome.
func (m *LeaseManager) release(ctx context.Context, token string) {
	// The caller's context may already be done; the row still has to go.
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	deleted, err := m.store.DeleteIfOwned(releaseCtx, m.resourceID, token)
	switch {
	case err != nil:
		m.logger.Error("Failed to release lease",
			"owner_token", token,
			"error", err,
		)
	case !deleted:
		m.logger.Warn("Lease no longer ours at release, left untouched", "owner_token", token)
	default:
		m.logger.Debug("Lease released", "owner_token", token)
	}
}
