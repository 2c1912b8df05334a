// internal/dlock/dlock.go
package dlock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultTimeout is how old a lease must be before another process may reclaim it.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxAttempts bounds the number of probes made by a single WithLock call.
	DefaultMaxAttempts = 10

	// DefaultRetryDelay is the fixed pause between probes under contention.
	DefaultRetryDelay = time.Second
)

var (
	// ErrAcquisitionExhausted is returned when the lease stayed held by another
	// party for every attempt allowed by the policy.
	ErrAcquisitionExhausted = errors.New("lock acquisition exhausted")

	// ErrLeaseExists is returned by Store.TryInsert when a lease row for the
	// resource is already present.
	ErrLeaseExists = errors.New("lease already exists")
)

// StoreError wraps a failure of the lease store itself, as opposed to contention.
type StoreError struct {
	Op         string
	ResourceID string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("lease store %s %q: %v", e.Op, e.ResourceID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Locker runs work under an exclusive lease
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=dlock.go -destination=../../mocks/mock_dlock.go -package=mocks
type Locker interface {
	// WithLock runs fn while holding the lease and releases it afterwards
	WithLock(ctx context.Context, fn func(ctx context.Context) error, opts ...LockOption) error
}

// Admin inspects and clears the lease out of band
type Admin interface {
	// ResourceID returns the guarded resource
	ResourceID() string

	// Inspect reports the current lease without changing it
	Inspect(ctx context.Context, opts ...LockOption) (LeaseStatus, error)

	// ForceRelease deletes the lease whoever holds it
	ForceRelease(ctx context.Context) (bool, error)
}

// Do runs fn under the lease held by l and returns its result.
func Do[T any](ctx context.Context, l Locker, fn func(ctx context.Context) (T, error), opts ...LockOption) (T, error) {
	var result T
	err := l.WithLock(ctx, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx)
		return err
	}, opts...)
	return result, err
}

// LockOption allows configuring lock behavior
type LockOption func(*lockConfig)

type lockConfig struct {
	timeout     time.Duration
	maxAttempts int
	retryDelay  time.Duration
}

func defaultLockConfig() lockConfig {
	return lockConfig{
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
}

func (c lockConfig) apply(opts []LockOption) lockConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c lockConfig) validate() error {
	if c.timeout <= 0 {
		return fmt.Errorf("invalid lease timeout %v", c.timeout)
	}
	if c.maxAttempts < 1 {
		return fmt.Errorf("invalid max attempts %d", c.maxAttempts)
	}
	if c.retryDelay < 0 {
		return fmt.Errorf("invalid retry delay %v", c.retryDelay)
	}
	return nil
}

// WithTimeout sets the age after which a held lease is considered abandoned
func WithTimeout(d time.Duration) LockOption {
	return func(cfg *lockConfig) {
		cfg.timeout = d
	}
}

// WithMaxAttempts sets how many probes are made before giving up
func WithMaxAttempts(n int) LockOption {
	return func(cfg *lockConfig) {
		cfg.maxAttempts = n
	}
}

// WithRetryDelay sets the fixed wait between probes
func WithRetryDelay(d time.Duration) LockOption {
	return func(cfg *lockConfig) {
		cfg.retryDelay = d
	}
}
