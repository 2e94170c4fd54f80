//go:build linux

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/copybench/internal/config"
	"github.com/bamsammich/copybench/internal/engine"
	"github.com/bamsammich/copybench/internal/event"
)

func regularFile(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.OpenFile(filepath.Join(t.TempDir(), name), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestCheckFiles(t *testing.T) {
	in := regularFile(t, "in")
	out := regularFile(t, "out")
	require.NoError(t, checkFiles(engine.Files{In: in, Out: out}))

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	assert.ErrorIs(t, checkFiles(engine.Files{In: r, Out: out}), errNotRegular)
	assert.ErrorIs(t, checkFiles(engine.Files{In: in, Out: w}), errNotRegular)
}

func TestRootCmdUsageOnNonRegularInput(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var stderr bytes.Buffer
	cmd := newRootCmd(engine.Files{In: r, Out: regularFile(t, "out")}, &stderr)
	cmd.SetArgs([]string{})

	err = cmd.Execute()
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.code)
	assert.Equal(t, "usage: copybench <in >out\n", stderr.String())
}

func TestRootCmdUnwritableLogIsRuntimeFault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stderr bytes.Buffer
	files := engine.Files{In: regularFile(t, "in"), Out: regularFile(t, "out")}
	cmd := newRootCmd(files, &stderr)
	cmd.SetArgs([]string{"--log", filepath.Join(t.TempDir(), "missing", "log.json")})

	err := cmd.Execute()
	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.code)
	assert.Contains(t, stderr.String(), "open log file")
}

func TestRootCmdVersion(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newRootCmd(engine.Files{}, &stderr)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "copybench dev\n", stderr.String())
}

func TestRootCmdRejectsArgs(t *testing.T) {
	var stderr bytes.Buffer
	cmd := newRootCmd(engine.Files{}, &stderr)
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestApplyConfigDefaults(t *testing.T) {
	yes := true
	path := "/tmp/x.json"
	defaults := config.DefaultsConfig{Verify: &yes, Verbose: &yes, Log: &path}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var verify, verbose bool
	var logFile string
	flags.BoolVar(&verify, "verify", false, "")
	flags.BoolVar(&verbose, "verbose", false, "")
	flags.StringVar(&logFile, "log", "", "")
	require.NoError(t, flags.Parse([]string{"--verbose=false"}))

	applyConfigDefaults(flags, defaults, &verify, &verbose, &logFile)
	assert.True(t, verify)
	assert.False(t, verbose, "explicit flag wins over config")
	assert.Equal(t, path, logFile)
}

func TestSetupLoggingWritesJSONFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log.json")
	var stderr bytes.Buffer

	closeLog, err := setupLogging(&stderr, false, logPath)
	require.NoError(t, err)
	logEvent(event.Event{Type: event.SampleCompleted, Label: "sendfile", Method: "sendfile", Size: 1 << 20})
	closeLog()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"SampleCompleted"`)
	assert.Contains(t, string(data), `"size":"1.0 MiB"`)
	// Debug records stay out of the non-verbose stderr stream.
	assert.Empty(t, stderr.String())
}
