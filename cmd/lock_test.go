package cmd

import (
	"bytes"
	"testing"
	"time"

	"brain/internal/dlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestLockProbe(t *testing.T) {
	out, err := runCommand(t, "lock", "probe")
	require.NoError(t, err)
	assert.Contains(t, out, `Lease probe on "test_lock" succeeded`)
}

func TestLockCheck_NoLease(t *testing.T) {
	out, err := runCommand(t, "lock", "check")
	require.NoError(t, err)
	assert.Contains(t, out, `No lease held for "memory_lock"`)
}

func TestLockClear_NoLease(t *testing.T) {
	out, err := runCommand(t, "lock", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, `No lease held for "memory_lock"`)
}

func TestMigrate_MemoryBackend(t *testing.T) {
	out, err := runCommand(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to migrate")
}

func TestPrintLeaseStatus(t *testing.T) {
	var out bytes.Buffer
	printLeaseStatus(&out, "memory_lock", dlock.LeaseStatus{
		Lease: dlock.Lease{
			ResourceID: "memory_lock",
			AcquiredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			OwnerToken: "host-42-1714564800000-abc",
		},
		Held:  true,
		Stale: true,
		Age:   31 * time.Second,
	})

	assert.Contains(t, out.String(), `Lease "memory_lock" is stale`)
	assert.Contains(t, out.String(), "host-42-1714564800000-abc")
	assert.Contains(t, out.String(), "2024-05-01T12:00:00Z")
	assert.Contains(t, out.String(), "31s")
}
