package dlock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	nilArgErr   = "nil %v not allowed"
	emptyArgErr = "empty %v not allowed"
)

// LeaseManager synthesizes a mutual-exclusion lock for a single resource out of
// a Store that only offers insert-if-absent and row deletes.
type LeaseManager struct {
	logger     *slog.Logger
	store      Store
	resourceID string
	clock      Clock
	defaults   lockConfig
}

// ManagerOption configures a LeaseManager.
type ManagerOption func(*LeaseManager)

// WithClock replaces the wall clock used for staleness checks and acquisition times.
func WithClock(c Clock) ManagerOption {
	return func(m *LeaseManager) {
		m.clock = c
	}
}

// WithDefaults sets the policy used when WithLock is called without options.
func WithDefaults(opts ...LockOption) ManagerOption {
	return func(m *LeaseManager) {
		m.defaults = m.defaults.apply(opts)
	}
}

// NewLeaseManager creates a manager for the lease identified by resourceID.
func NewLeaseManager(logger *slog.Logger, store Store, resourceID string, opts ...ManagerOption) (*LeaseManager, error) {
	if logger == nil {
		return nil, fmt.Errorf(nilArgErr, "logger")
	}
	if store == nil {
		return nil, fmt.Errorf(nilArgErr, "lease store")
	}
	if resourceID == "" {
		return nil, fmt.Errorf(emptyArgErr, "resource id")
	}

	m := &LeaseManager{
		logger:     logger.With("resource_id", resourceID),
		store:      store,
		resourceID: resourceID,
		clock:      SystemClock(),
		defaults:   defaultLockConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		return nil, fmt.Errorf(nilArgErr, "clock")
	}
	if err := m.defaults.validate(); err != nil {
		return nil, fmt.Errorf("invalid default lock policy: %w", err)
	}
	return m, nil
}

// ResourceID returns the identifier of the lease this manager guards.
func (m *LeaseManager) ResourceID() string {
	return m.resourceID
}

// WithLock acquires the lease, runs fn, and releases the lease on the way out.
//
// The error is fn's own error when fn ran. Otherwise it is a *StoreError,
// ErrAcquisitionExhausted, or the context error if ctx ended while waiting.
func (m *LeaseManager) WithLock(ctx context.Context, fn func(ctx context.Context) error, opts ...LockOption) error {
	cfg := m.defaults.apply(opts)
	if err := cfg.validate(); err != nil {
		return err
	}

	token, err := m.acquire(ctx, cfg)
	if err != nil {
		return err
	}
	return m.runHeld(ctx, token, fn)
}

// acquire loops Probe -> (Acquire | Wait) until the lease is inserted, a store
// call fails, or maxAttempts probes have been made.
func (m *LeaseManager) acquire(ctx context.Context, cfg lockConfig) (string, error) {
	for attempt := 1; ; attempt++ {
		token, acquired, err := m.attempt(ctx, cfg, attempt)
		if err != nil {
			return "", err
		}
		if acquired {
			return token, nil
		}

		if err := sleep(ctx, cfg.retryDelay); err != nil {
			return "", fmt.Errorf("waiting for lease %q: %w", m.resourceID, err)
		}
		if attempt >= cfg.maxAttempts {
			m.logger.Warn("Giving up on lease", "attempts", attempt)
			return "", fmt.Errorf("%w: resource %q still held after %d attempts", ErrAcquisitionExhausted, m.resourceID, attempt)
		}
	}
}

func (m *LeaseManager) attempt(ctx context.Context, cfg lockConfig, attempt int) (string, bool, error) {
	current, found, err := m.store.Get(ctx, m.resourceID)
	if err != nil {
		return "", false, m.storeError("get", err)
	}

	if found {
		if !IsStale(current, m.clock.Now(), cfg.timeout) {
			m.logger.Debug("Lease held by another owner",
				"owner_token", current.OwnerToken,
				"attempt", attempt,
			)
			return "", false, nil
		}

		m.logger.Warn("Reclaiming stale lease",
			"owner_token", current.OwnerToken,
			"acquired_at", current.AcquiredAt,
			"timeout", cfg.timeout,
		)
		// Whether the row was still there or not, go on to insert; losing the
		// insert race to another reclaimer is ordinary contention.
		if _, err := m.store.DeleteUnconditional(ctx, m.resourceID); err != nil {
			return "", false, m.storeError("reclaim", err)
		}
	}

	now := truncateMillis(m.clock.Now())
	lease := Lease{
		ResourceID: m.resourceID,
		AcquiredAt: now,
		OwnerToken: newOwnerToken(now),
	}
	err = m.store.TryInsert(ctx, lease)
	switch {
	case err == nil:
		m.logger.Debug("Lease acquired", "owner_token", lease.OwnerToken, "attempt", attempt)
		return lease.OwnerToken, true, nil
	case errors.Is(err, ErrLeaseExists):
		m.logger.Debug("Lost lease insert race", "attempt", attempt)
		return "", false, nil
	default:
		return "", false, m.storeError("insert", err)
	}
}

// LeaseStatus describes the lease currently stored for a resource.
type LeaseStatus struct {
	Lease
	Held  bool
	Stale bool
	Age   time.Duration
}

// Inspect reports the current lease without touching it.
func (m *LeaseManager) Inspect(ctx context.Context, opts ...LockOption) (LeaseStatus, error) {
	cfg := m.defaults.apply(opts)
	current, found, err := m.store.Get(ctx, m.resourceID)
	if err != nil {
		return LeaseStatus{}, m.storeError("get", err)
	}
	if !found {
		return LeaseStatus{Lease: Lease{ResourceID: m.resourceID}}, nil
	}

	now := m.clock.Now()
	return LeaseStatus{
		Lease: current,
		Held:  true,
		Stale: IsStale(current, now, cfg.timeout),
		Age:   time.Duration(now.UnixMilli()-current.AcquiredAt.UnixMilli()) * time.Millisecond,
	}, nil
}

// ForceRelease deletes the lease regardless of owner. It is meant for operators
// clearing a lease by hand; the lock path never calls it on release.
func (m *LeaseManager) ForceRelease(ctx context.Context) (bool, error) {
	deleted, err := m.store.DeleteUnconditional(ctx, m.resourceID)
	if err != nil {
		return false, m.storeError("force release", err)
	}
	m.logger.Warn("Lease force released", "deleted", deleted)
	return deleted, nil
}

func (m *LeaseManager) storeError(op string, err error) error {
	return &StoreError{Op: op, ResourceID: m.resourceID, Err: err}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
