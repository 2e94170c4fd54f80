//go:build linux

package platform

import (
	"fmt"
	"os"
)

const drainChunkSize = 8 << 10 // 8 KiB

// DrainStrategy reads the input to EOF and writes nothing. It isolates the
// read cost of the other strategies.
type DrainStrategy struct{}

func (DrainStrategy) Method() Method { return Drain }

//nolint:gosec // G115: fd values are small non-negative integers
func (DrainStrategy) Transfer(in, _ *os.File) (int64, error) {
	buf := make([]byte, drainChunkSize)
	fd := int(in.Fd())
	for {
		n, err := ignoringEINTR(func() (int, error) { return readCall(fd, buf) })
		if err != nil {
			return 0, fmt.Errorf("drain read: %w", err)
		}
		if n == 0 {
			return 0, nil
		}
	}
}

// ReadWriteStrategy copies through a user buffer. The buffer is Fixed bytes
// when Fixed is set, otherwise Factor times the output filesystem's
// preferred block size.
type ReadWriteStrategy struct {
	Factor int64
	Fixed  int64
}

func (ReadWriteStrategy) Method() Method { return ReadWrite }

// BufferSize resolves the per-call read size for out.
func (s ReadWriteStrategy) BufferSize(out *os.File) (int64, error) {
	if s.Fixed > 0 {
		return s.Fixed, nil
	}
	bs, err := BlockSize(out)
	if err != nil {
		return 0, err
	}
	if bs < MinBlockSize {
		return 0, fmt.Errorf("%w: %d", ErrBlockSizeTooSmall, bs)
	}
	factor := s.Factor
	if factor <= 0 {
		factor = 1
	}
	return factor * bs, nil
}

func (s ReadWriteStrategy) Transfer(in, out *os.File) (int64, error) {
	bs, err := s.BufferSize(out)
	if err != nil {
		return 0, err
	}
	total, err := FileSize(in)
	if err != nil {
		return 0, err
	}
	return copyBlocks(in, out, total, make([]byte, bs))
}

// copyBlocks reads up to len(buf) bytes at a time and writes each block out
// before reading the next. r and w are independent cursors so a short write
// resumes from the unwritten tail of the block.
//
//nolint:gosec // G115: fd values are small non-negative integers
func copyBlocks(in, out *os.File, total int64, buf []byte) (int64, error) {
	inFd, outFd := int(in.Fd()), int(out.Fd())
	var r, w int64
	for r < total {
		n, err := ignoringEINTR(func() (int, error) { return readCall(inFd, buf) })
		if err != nil {
			return w, fmt.Errorf("read: %w", err)
		}
		if n == 0 {
			break
		}
		r += int64(n)

		m, err := writeAll(outFd, buf[:n])
		w += m
		if err != nil {
			return w, err
		}
	}
	return w, nil
}
