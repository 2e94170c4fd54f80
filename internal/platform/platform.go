package platform

import (
	"errors"
	"os"
)

// Method identifies which kernel I/O path a strategy exercises.
type Method int

const (
	Drain     Method = iota // read(2) only, nothing written
	ReadWrite               // read(2) + write(2) through a user buffer
	Mmap                    // mmap(2) of the input + write(2)
	Splice                  // splice(2) through an intermediate pipe
	Sendfile                // Linux sendfile(2)
)

func (m Method) String() string {
	switch m {
	case Drain:
		return "drain"
	case ReadWrite:
		return "read_write"
	case Mmap:
		return "mmap"
	case Splice:
		return "splice"
	case Sendfile:
		return "sendfile"
	default:
		return "unknown"
	}
}

// Strategy copies the whole of in to out, starting at both files' current
// offsets, and returns the number of bytes it wrote.
type Strategy interface {
	Transfer(in, out *os.File) (int64, error)
	Method() Method
}

var (
	// ErrBlockSizeTooSmall is returned when the filesystem reports a
	// preferred I/O size below MinBlockSize.
	ErrBlockSizeTooSmall = errors.New("filesystem block size too small")

	// ErrShortTransfer is returned when the kernel reports no progress
	// before the full input length was moved.
	ErrShortTransfer = errors.New("transfer made no progress")
)

// MinBlockSize is the smallest preferred block size accepted for
// block-multiple read/write strategies.
const MinBlockSize = 1024
