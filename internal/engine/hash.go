package engine

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// HashFile computes the BLAKE3 hash of the file at path, returning the hex-encoded digest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	digest := h.Sum(nil)
	return hex.EncodeToString(digest), nil
}

// HashOpenFile hashes the file behind an already-open descriptor. The
// descriptor may be write-only (a shell's "> out"), so the file is reopened
// read-only through /proc rather than read in place; f's offset is untouched.
func HashOpenFile(f *os.File) (string, error) {
	return HashFile(fmt.Sprintf("/proc/self/fd/%d", f.Fd()))
}
