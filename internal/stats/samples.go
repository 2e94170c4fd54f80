package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// SampleCount is the number of timed runs taken per benchmark entry.
const SampleCount = 3

// Sample is one timed run of a strategy.
type Sample struct {
	Wall  time.Duration
	CPU   Usage // resource usage consumed during the run
	Bytes int64 // bytes the strategy reported writing
}

// Millis returns the wall time truncated to whole milliseconds, never negative.
func (s Sample) Millis() int64 {
	if s.Wall < 0 {
		return 0
	}
	return s.Wall.Milliseconds()
}

// BytesPerSec returns the write throughput of the run, or 0 when either the
// duration or the byte count is zero.
func (s Sample) BytesPerSec() float64 {
	if s.Wall <= 0 || s.Bytes <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Wall.Seconds()
}

// Usage is the CPU time charged to the process.
type Usage struct {
	User   time.Duration
	System time.Duration
}

// Sub returns the usage accrued between prev and u.
func (u Usage) Sub(prev Usage) Usage {
	return Usage{User: u.User - prev.User, System: u.System - prev.System}
}

// Total is user plus system time.
func (u Usage) Total() time.Duration { return u.User + u.System }

// SampleSet holds exactly SampleCount samples for one entry.
type SampleSet [SampleCount]Sample

// Sort orders the samples by wall time, fastest first.
func (s *SampleSet) Sort() {
	slices.SortStableFunc(s[:], byWall)
}

// Millis returns each sample's wall time in milliseconds, in set order.
func (s *SampleSet) Millis() [SampleCount]int64 {
	var ms [SampleCount]int64
	for i, sample := range s {
		ms[i] = sample.Millis()
	}
	return ms
}

// Sorted reports whether the set is in ascending wall-time order.
func (s *SampleSet) Sorted() bool {
	return slices.IsSortedFunc(s[:], byWall)
}

func (s *SampleSet) String() string {
	parts := make([]string, 0, SampleCount)
	for _, ms := range s.Millis() {
		parts = append(parts, fmt.Sprintf("%dms", ms))
	}
	return strings.Join(parts, " ")
}

func byWall(a, b Sample) int { return cmp.Compare(a.Wall, b.Wall) }
