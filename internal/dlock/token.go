package dlock

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// newOwnerToken identifies one acquisition attempt: host, pid, acquisition time
// and a random suffix so two attempts in the same millisecond still differ.
func newOwnerToken(now time.Time) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d-%d-%s", host, os.Getpid(), now.UnixMilli(), uuid.NewString())
}
