//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const spliceChunkSize = 64 << 10 // 64 KiB

// spliceCall is swapped out by tests to count kernel calls.
var spliceCall = unix.Splice

// SpliceStrategy moves data input -> pipe -> output with splice(2), never
// copying through a user-space buffer.
type SpliceStrategy struct{}

func (SpliceStrategy) Method() Method { return Splice }

//nolint:gosec // G115: fd values are small non-negative integers
func (SpliceStrategy) Transfer(in, out *os.File) (int64, error) {
	total, err := FileSize(in)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	p, err := newPipe()
	if err != nil {
		return 0, err
	}
	defer p.Close()

	inFd, outFd := int(in.Fd()), int(out.Fd())
	var r, w int64
	for r < total {
		n, err := ignoringEINTR(func() (int64, error) {
			return spliceCall(inFd, nil, p.w, nil, spliceChunkSize, 0)
		})
		if err != nil {
			return w, fmt.Errorf("splice in: %w", err)
		}
		if n == 0 {
			break
		}
		r += n

		for w < r {
			m, err := ignoringEINTR(func() (int64, error) {
				return spliceCall(p.r, nil, outFd, nil, spliceChunkSize, 0)
			})
			if err != nil {
				return w, fmt.Errorf("splice out: %w", err)
			}
			if m == 0 {
				return w, fmt.Errorf("splice out: %w", ErrShortTransfer)
			}
			w += m
		}
	}
	return w, nil
}

// pipe holds both ends of an anonymous pipe for the lifetime of a single
// transfer.
type pipe struct {
	r, w int
}

func newPipe() (*pipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC); err != nil {
		return nil, fmt.Errorf("pipe2: %w", err)
	}
	return &pipe{r: fds[0], w: fds[1]}, nil
}

// Close closes both ends.
func (p *pipe) Close() error {
	return errors.Join(unix.Close(p.r), unix.Close(p.w))
}
