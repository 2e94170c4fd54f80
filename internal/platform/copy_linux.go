//go:build linux

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// sendfileCall is swapped out by tests to inject interruptions.
var sendfileCall = unix.Sendfile

// SendfileStrategy copies in-kernel with sendfile(2), advancing an explicit
// input offset until the whole input has been sent.
type SendfileStrategy struct{}

func (SendfileStrategy) Method() Method { return Sendfile }

//nolint:gosec // G115: fd values are small non-negative integers
func (SendfileStrategy) Transfer(in, out *os.File) (int64, error) {
	total, err := FileSize(in)
	if err != nil {
		return 0, err
	}

	inFd, outFd := int(in.Fd()), int(out.Fd())
	var offset int64
	for offset < total {
		n, err := sendfileCall(outFd, inFd, &offset, int(total-offset))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return offset, fmt.Errorf("sendfile: %w", err)
		}
		if n == 0 {
			return offset, fmt.Errorf("sendfile: %w", ErrShortTransfer)
		}
	}
	return total, nil
}
