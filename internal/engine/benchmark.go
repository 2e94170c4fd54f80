package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bamsammich/copybench/internal/event"
	"github.com/bamsammich/copybench/internal/platform"
	"github.com/bamsammich/copybench/internal/stats"
)

// SettleInterval is the pause after each reset, letting writeback and the
// I/O scheduler quiesce before the next timed run.
const SettleInterval = 500 * time.Millisecond

var (
	// ErrSizeMismatch means a strategy finished without producing an output
	// as long as its input.
	ErrSizeMismatch = errors.New("output size differs from input size")

	// ErrContentMismatch means the output hash differs from the input hash.
	ErrContentMismatch = errors.New("output content differs from input content")
)

// Files is the input/output pair every strategy copies between. Both must
// be regular files; the runner rewinds and truncates them between runs.
type Files struct {
	In  *os.File
	Out *os.File
}

// Config describes a benchmark run.
type Config struct {
	Catalog       Catalog
	Report        io.Writer         // receives one line per entry
	VerifyContent bool              // also compare BLAKE3 hashes after each run
	OnEvent       func(event.Event) // optional, called synchronously
}

// Runner measures each catalog entry in order, one run at a time.
type Runner struct {
	cfg    Config
	settle time.Duration
	sleep  func(time.Duration)
	now    func() time.Time
}

// NewRunner returns a Runner for cfg.
func NewRunner(cfg Config) *Runner {
	if cfg.Report == nil {
		cfg.Report = io.Discard
	}
	return &Runner{
		cfg:    cfg,
		settle: SettleInterval,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Run benchmarks every entry and writes its report line. It stops at the
// first failure; a failed run means the numbers cannot be trusted.
func (r *Runner) Run(files Files) error {
	for _, entry := range r.cfg.Catalog.Entries() {
		result, err := r.RunEntry(files, entry)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Label, err)
		}
		if err := WriteResult(r.cfg.Report, result); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// RunEntry takes stats.SampleCount samples of entry and returns them sorted.
func (r *Runner) RunEntry(files Files, entry Entry) (Result, error) {
	method := entry.Strategy.Method().String()
	r.emit(event.Event{Type: event.EntryStarted, Label: entry.Label, Method: method})

	result := Result{Label: entry.Label}
	for i := range stats.SampleCount {
		if err := r.reset(files); err != nil {
			return result, err
		}
		r.emit(event.Event{Type: event.SampleReset, Label: entry.Label, Method: method, Sample: i})

		sample, err := r.measure(files, entry.Strategy)
		if err != nil {
			return result, err
		}
		result.Samples[i] = sample
		r.emit(event.Event{
			Type:    event.SampleCompleted,
			Label:   entry.Label,
			Method:  method,
			Sample:  i,
			Size:    sample.Bytes,
			Elapsed: sample.Wall,
			CPU:     sample.CPU.Total(),
		})

		if entry.Strategy.Method() == platform.Drain {
			continue
		}
		if err := r.verify(files); err != nil {
			r.emit(event.Event{
				Type: event.VerifyFailed, Label: entry.Label, Method: method, Sample: i, Error: err,
			})
			return result, err
		}
		r.emit(event.Event{Type: event.VerifyOK, Label: entry.Label, Method: method, Sample: i})
	}

	result.Samples.Sort()
	r.emit(event.Event{Type: event.EntryCompleted, Label: entry.Label, Method: method})
	return result, nil
}

// reset rewinds both files, empties the output and waits for the settle
// interval.
func (r *Runner) reset(files Files) error {
	if _, err := files.In.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind input: %w", err)
	}
	if _, err := files.Out.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind output: %w", err)
	}
	if err := files.Out.Truncate(0); err != nil {
		return fmt.Errorf("truncate output: %w", err)
	}
	r.sleep(r.settle)
	return nil
}

// measure runs s exactly once between resource-usage and clock snapshots.
func (r *Runner) measure(files Files, s platform.Strategy) (stats.Sample, error) {
	before, err := stats.ReadUsage()
	if err != nil {
		return stats.Sample{}, err
	}
	start := r.now()
	n, err := s.Transfer(files.In, files.Out)
	elapsed := r.now().Sub(start)
	if err != nil {
		return stats.Sample{}, fmt.Errorf("%s transfer: %w", s.Method(), err)
	}
	after, err := stats.ReadUsage()
	if err != nil {
		return stats.Sample{}, err
	}
	return stats.Sample{Wall: elapsed, CPU: after.Sub(before), Bytes: n}, nil
}

// verify checks the output length against the input, and the content too
// when VerifyContent is set.
func (r *Runner) verify(files Files) error {
	inSize, err := platform.FileSize(files.In)
	if err != nil {
		return err
	}
	outSize, err := platform.FileSize(files.Out)
	if err != nil {
		return err
	}
	if inSize != outSize {
		return fmt.Errorf("%w: input %d bytes, output %d bytes", ErrSizeMismatch, inSize, outSize)
	}
	if !r.cfg.VerifyContent {
		return nil
	}

	inHash, err := HashOpenFile(files.In)
	if err != nil {
		return err
	}
	outHash, err := HashOpenFile(files.Out)
	if err != nil {
		return err
	}
	if inHash != outHash {
		return fmt.Errorf("%w: input %s, output %s", ErrContentMismatch, inHash, outHash)
	}
	return nil
}

func (r *Runner) emit(ev event.Event) {
	if r.cfg.OnEvent == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = r.now()
	}
	r.cfg.OnEvent(ev)
}
