//go:build linux

package platform

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRegularFile(t *testing.T) {
	in, _ := openPair(t, []byte("data"))
	ok, err := IsRegularFile(in)
	require.NoError(t, err)
	assert.True(t, ok)

	dir, err := os.Open(t.TempDir())
	require.NoError(t, err)
	defer dir.Close()
	ok, err = IsRegularFile(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	ok, err = IsRegularFile(r)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProbeClosedFile(t *testing.T) {
	in, _ := openPair(t, nil)
	require.NoError(t, in.Close())

	_, err := IsRegularFile(in)
	assert.Error(t, err)
	_, err = FileSize(in)
	assert.Error(t, err)
	_, err = BlockSize(in)
	assert.Error(t, err)
}

func TestFileSize(t *testing.T) {
	in, out := openPair(t, make([]byte, 12345))
	size, err := FileSize(in)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), size)

	size, err = FileSize(out)
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestBlockSize(t *testing.T) {
	in, _ := openPair(t, nil)
	bs, err := BlockSize(in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bs, int64(MinBlockSize))
}
