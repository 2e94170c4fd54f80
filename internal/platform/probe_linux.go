//go:build linux

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// IsRegularFile reports whether f refers to a regular file.
//
//nolint:gosec // G115: fd values are small non-negative integers
func IsRegularFile(f *os.File) (bool, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return false, fmt.Errorf("fstat %s: %w", f.Name(), err)
	}
	return st.Mode&unix.S_IFMT == unix.S_IFREG, nil
}

// BlockSize returns the preferred transfer size of the filesystem holding f.
//
//nolint:gosec // G115: fd values are small non-negative integers
func BlockSize(f *os.File) (int64, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(int(f.Fd()), &st); err != nil {
		return 0, fmt.Errorf("fstatfs %s: %w", f.Name(), err)
	}
	return int64(st.Bsize), nil //nolint:unconvert // Bsize width differs per arch
}

// FileSize returns the current length of f in bytes.
//
//nolint:gosec // G115: fd values are small non-negative integers
func FileSize(f *os.File) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, fmt.Errorf("fstat %s: %w", f.Name(), err)
	}
	return st.Size, nil
}
