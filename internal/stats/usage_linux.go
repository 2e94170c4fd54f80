//go:build linux

package stats

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ReadUsage snapshots getrusage(RUSAGE_SELF).
func ReadUsage() (Usage, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return Usage{}, fmt.Errorf("getrusage: %w", err)
	}
	return Usage{
		User:   time.Duration(ru.Utime.Nano()),
		System: time.Duration(ru.Stime.Nano()),
	}, nil
}
