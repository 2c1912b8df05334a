package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"brain/internal/dlock"

	"github.com/spf13/cobra"
)

// probeResourceID is a throwaway lease used to check the store end to end
const probeResourceID = "test_lock"

// lockCmd groups the operator commands for the dataset lease
var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Inspect or clear the dataset lease",
}

var lockCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show who holds the dataset lease",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLeaseAdmin(cmd, func(ctx context.Context, admin dlock.Admin) error {
			status, err := admin.Inspect(ctx)
			if err != nil {
				return err
			}
			printLeaseStatus(cmd.OutOrStdout(), admin.ResourceID(), status)
			return nil
		})
	},
}

var lockClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the dataset lease whoever holds it",
	Long: `Delete the dataset lease regardless of its owner. Use this only when the
holder is known to be gone; a live holder will keep writing without the lease.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLeaseAdmin(cmd, func(ctx context.Context, admin dlock.Admin) error {
			deleted, err := admin.ForceRelease(ctx)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Lease %q cleared\n", admin.ResourceID())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No lease held for %q\n", admin.ResourceID())
			}
			return nil
		})
	},
}

var lockProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Take and release a throwaway lease to check the store works",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		app, err := loadApp(ctx)
		if err != nil {
			return err
		}
		defer app.Close()

		manager, err := app.leaseManager(probeResourceID)
		if err != nil {
			return err
		}

		start := time.Now()
		err = manager.WithLock(ctx, func(ctx context.Context) error {
			status, err := manager.Inspect(ctx)
			if err != nil {
				return err
			}
			if !status.Held {
				return fmt.Errorf("lease %q not visible while held", probeResourceID)
			}
			return nil
		}, dlock.WithMaxAttempts(1))
		if err != nil {
			return fmt.Errorf("lease probe failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Lease probe on %q succeeded in %v\n", probeResourceID, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func withLeaseAdmin(cmd *cobra.Command, fn func(ctx context.Context, admin dlock.Admin) error) error {
	ctx := cmd.Context()

	app, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	manager, err := app.leaseManager(app.config.Lock.ResourceID)
	if err != nil {
		return err
	}
	return fn(ctx, manager)
}

func printLeaseStatus(w io.Writer, resourceID string, status dlock.LeaseStatus) {
	if !status.Held {
		fmt.Fprintf(w, "No lease held for %q\n", resourceID)
		return
	}

	state := "active"
	if status.Stale {
		state = "stale"
	}
	fmt.Fprintf(w, "Lease %q is %s\n", resourceID, state)
	fmt.Fprintf(w, "  owner:       %s\n", status.OwnerToken)
	fmt.Fprintf(w, "  acquired at: %s\n", status.AcquiredAt.Format(time.RFC3339Nano))
	fmt.Fprintf(w, "  age:         %v\n", status.Age.Round(time.Millisecond))
}

func init() {
	lockCmd.AddCommand(lockCheckCmd, lockClearCmd, lockProbeCmd)
	rootCmd.AddCommand(lockCmd)
}
