package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	EntryStarted Type = iota + 1
	SampleReset
	SampleCompleted
	VerifyOK
	VerifyFailed
	EntryCompleted
)

var typeNames = [...]string{
	EntryStarted:    "EntryStarted",
	SampleReset:     "SampleReset",
	SampleCompleted: "SampleCompleted",
	VerifyOK:        "VerifyOK",
	VerifyFailed:    "VerifyFailed",
	EntryCompleted:  "EntryCompleted",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the benchmark runner.
type Event struct {
	Type      Type
	Timestamp time.Time
	Label     string        // catalog entry label
	Method    string        // base strategy method
	Sample    int           // 0-based sample index
	Size      int64         // bytes reported by the strategy
	Elapsed   time.Duration // wall time of the sample
	CPU       time.Duration // user+system time of the sample
	Error     error
}
