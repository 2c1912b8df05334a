package dlock

import "time"

// Clock supplies wall-clock time to the lease manager.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// IsStale reports whether lease is older than timeout at now. Ages are compared
// in whole milliseconds since the epoch, the unit leases are stored in.
func IsStale(lease Lease, now time.Time, timeout time.Duration) bool {
	age := now.UnixMilli() - lease.AcquiredAt.UnixMilli()
	return age > timeout.Milliseconds()
}

// truncateMillis drops sub-millisecond precision and the monotonic reading so an
// acquisition time compares equal before and after a store round trip.
func truncateMillis(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli()).UTC()
}
