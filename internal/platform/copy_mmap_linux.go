//go:build linux

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapStrategy maps the whole input read-only and writes the mapping to the
// output. An empty input is a no-op since a zero-length mapping is invalid.
type MmapStrategy struct{}

func (MmapStrategy) Method() Method { return Mmap }

//nolint:gosec // G115: fd values are small non-negative integers
func (MmapStrategy) Transfer(in, out *os.File) (int64, error) {
	size, err := FileSize(in)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		return 0, nil
	}

	data, err := unix.Mmap(int(in.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return 0, fmt.Errorf("mmap %s: %w", in.Name(), err)
	}

	w, werr := writeAll(int(out.Fd()), data)
	if err := unix.Munmap(data); err != nil && werr == nil {
		werr = fmt.Errorf("munmap: %w", err)
	}
	return w, werr
}
