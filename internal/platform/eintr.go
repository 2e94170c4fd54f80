package platform

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// readCall and writeCall are swapped out by tests to inject short counts
// and interruptions.
var (
	readCall  = unix.Read
	writeCall = unix.Write
)

// ignoringEINTR calls fn until it fails with something other than EINTR.
func ignoringEINTR[T int | int64](fn func() (T, error)) (T, error) {
	for {
		n, err := fn()
		if err != unix.EINTR {
			return n, err
		}
	}
}

// writeAll writes p to fd, resuming after short writes and interruptions.
func writeAll(fd int, p []byte) (int64, error) {
	var written int64
	for len(p) > 0 {
		n, err := ignoringEINTR(func() (int, error) { return writeCall(fd, p) })
		if err != nil {
			return written, fmt.Errorf("write: %w", err)
		}
		if n == 0 {
			return written, fmt.Errorf("write: %w", ErrShortTransfer)
		}
		written += int64(n)
		p = p[n:]
	}
	return written, nil
}
