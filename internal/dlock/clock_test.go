package dlock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsStale(t *testing.T) {
	acquired := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lease := Lease{ResourceID: "memory_lock", AcquiredAt: acquired, OwnerToken: "a"}
	timeout := 30 * time.Second

	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"just acquired", 0, false},
		{"one millisecond before timeout", timeout - time.Millisecond, false},
		{"exactly at timeout", timeout, false},
		{"one millisecond after timeout", timeout + time.Millisecond, true},
		{"long abandoned", time.Hour, true},
		{"clock behind acquirer", -5 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStale(lease, acquired.Add(tt.elapsed), timeout))
		})
	}
}

func TestIsStale_IgnoresSubMillisecondNoise(t *testing.T) {
	acquired := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lease := Lease{AcquiredAt: acquired}

	// 30s + 0.9ms is still 30000ms once truncated
	now := acquired.Add(30*time.Second + 900*time.Microsecond)
	assert.False(t, IsStale(lease, now, 30*time.Second))
}

func TestTruncateMillis(t *testing.T) {
	in := time.Date(2025, 1, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600))
	out := truncateMillis(in)

	assert.Equal(t, in.UnixMilli(), out.UnixMilli())
	assert.Equal(t, 123000000, out.Nanosecond())
	assert.Equal(t, time.UTC, out.Location())
}

func TestNewOwnerToken_Unique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token := newOwnerToken(now)
		_, dup := seen[token]
		assert.False(t, dup, "owner tokens generated in the same millisecond must differ")
		seen[token] = struct{}{}
	}
}
