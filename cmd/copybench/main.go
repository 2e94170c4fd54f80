package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/copybench/internal/config"
	"github.com/bamsammich/copybench/internal/engine"
	"github.com/bamsammich/copybench/internal/event"
	"github.com/bamsammich/copybench/internal/platform"
	"github.com/bamsammich/copybench/internal/stats"
	"github.com/bamsammich/copybench/internal/ui"
)

var version = "dev"

var errNotRegular = errors.New("not a regular file")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(engine.Files{In: os.Stdin, Out: os.Stdout}, os.Stderr)
	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// newRootCmd builds the root command around the descriptor pair. stderr
// receives the report, usage and log output; the output file must stay
// untouched by anything but the strategies.
//
//nolint:revive // cognitive-complexity: root command wires config, logging and the runner
func newRootCmd(files engine.Files, stderr io.Writer) *cobra.Command {
	var (
		verify      bool
		verbose     bool
		showVersion bool
		logFile     string
	)

	rootCmd := &cobra.Command{
		Use:   "copybench [flags] <in >out",
		Short: "Compare kernel paths for copying one regular file to another",
		Long: `copybench copies stdin to stdout with every strategy in a fixed catalog
(read/write at several block sizes, mmap+write, pipe+splice, sendfile), each
plain and with fadvise, fallocate and ftruncate hints. Every entry runs three
times; the sorted wall times in milliseconds are printed to stderr.

Both stdin and stdout must be redirected from/to regular files.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(stderr, "copybench %s\n", version)
				return nil
			}

			cfg, cfgErr := config.Load()
			applyConfigDefaults(cmd.Flags(), cfg.Defaults, &verify, &verbose, &logFile)

			closeLog, err := setupLogging(stderr, verbose, logFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return &exitError{code: 1}
			}
			defer closeLog()
			if cfgErr != nil {
				slog.Warn("failed to load config", "path", config.Path(), "error", cfgErr)
			}

			if err := checkFiles(files); err != nil {
				if !errors.Is(err, errNotRegular) {
					slog.Error("cannot stat descriptors", "error", err)
					return &exitError{code: 1}
				}
				slog.Debug("startup check failed", "error", err)
				fmt.Fprintf(stderr, "usage: %s <in >out\n", cmd.Root().Name())
				return &exitError{code: 2}
			}

			slog.Debug("starting benchmark",
				"entries", engine.DefaultCatalog().Len(),
				"samples", stats.SampleCount,
				"settle", engine.SettleInterval,
				"verify", verify,
			)

			runner := engine.NewRunner(engine.Config{
				Catalog:       engine.DefaultCatalog(),
				Report:        stderr,
				VerifyContent: verify,
				OnEvent:       logEvent,
			})
			if err := runner.Run(files); err != nil {
				slog.Error("benchmark failed", "error", err)
				return &exitError{code: 1}
			}
			return nil
		},
	}
	rootCmd.SetOut(stderr)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().
		BoolVar(&verify, "verify", false, "also compare BLAKE3 checksums of input and output after every run")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every reset, sample and verification")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	return rootCmd
}

// checkFiles requires both descriptors to be regular files.
func checkFiles(files engine.Files) error {
	for _, f := range []*os.File{files.In, files.Out} {
		ok, err := platform.IsRegularFile(f)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: %w", f.Name(), errNotRegular)
		}
	}
	return nil
}

// setupLogging installs the default slog logger: text to stderr, plus JSON
// to logFile when set. The returned func closes the log file.
func setupLogging(stderr io.Writer, verbose bool, logFile string) (func(), error) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	var logHandler slog.Handler = textHandler
	closeLog := func() {}
	if logFile != "" {
		lf, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closeLog = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))
	return closeLog, nil
}

// logEvent writes a runner event as a structured debug record.
func logEvent(ev event.Event) {
	attrs := []slog.Attr{
		slog.String("type", ev.Type.String()),
		slog.String("label", ev.Label),
		slog.String("method", ev.Method),
	}
	switch ev.Type {
	case event.SampleReset, event.VerifyOK, event.VerifyFailed:
		attrs = append(attrs, slog.Int("sample", ev.Sample))
	case event.SampleCompleted:
		rate := stats.Sample{Wall: ev.Elapsed, Bytes: ev.Size}.BytesPerSec()
		attrs = append(attrs,
			slog.Int("sample", ev.Sample),
			slog.String("size", humanize.IBytes(uint64(max(ev.Size, 0)))),
			slog.Duration("elapsed", ev.Elapsed),
			slog.Duration("cpu", ev.CPU),
			slog.String("rate", humanize.IBytes(uint64(rate))+"/s"),
		)
	}
	if ev.Error != nil {
		attrs = append(attrs, slog.String("error", ev.Error.Error()))
	}
	slog.LogAttrs(context.Background(), slog.LevelDebug, "copybench.event", attrs...)
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	flags *pflag.FlagSet,
	defaults config.DefaultsConfig,
	verify *bool,
	verbose *bool,
	logFile *string,
) {
	if !flags.Changed("verify") && defaults.Verify != nil {
		*verify = *defaults.Verify
	}
	if !flags.Changed("verbose") && defaults.Verbose != nil {
		*verbose = *defaults.Verbose
	}
	if !flags.Changed("log") && defaults.Log != nil {
		*logFile = *defaults.Log
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
