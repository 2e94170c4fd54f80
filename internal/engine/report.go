package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/bamsammich/copybench/internal/stats"
)

// LabelWidth is the fixed report column for entry labels. Longer labels
// are truncated.
const LabelWidth = 40

// Result is the aggregated outcome of one catalog entry.
type Result struct {
	Label   string
	Samples stats.SampleSet // sorted ascending by wall time
}

// FormatResult renders r as a single report line without a trailing newline:
// the label padded or cut to LabelWidth, then each sample as " %8dms".
func FormatResult(r Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*.*s", LabelWidth, LabelWidth, r.Label)
	for _, ms := range r.Samples.Millis() {
		fmt.Fprintf(&b, " %8dms", ms)
	}
	return b.String()
}

// WriteResult writes r's report line to w.
func WriteResult(w io.Writer, r Result) error {
	_, err := fmt.Fprintln(w, FormatResult(r))
	return err
}
