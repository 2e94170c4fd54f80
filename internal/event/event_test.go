package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "EntryStarted", typ: EntryStarted},
		{want: "SampleReset", typ: SampleReset},
		{want: "SampleCompleted", typ: SampleCompleted},
		{want: "VerifyOK", typ: VerifyOK},
		{want: "VerifyFailed", typ: VerifyFailed},
		{want: "EntryCompleted", typ: EntryCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
	assert.Equal(t, "Unknown", Type(-1).String())
}

func TestEventZeroValue(t *testing.T) {
	var e Event
	assert.Equal(t, Type(0), e.Type)
	assert.True(t, e.Timestamp.IsZero())
	assert.Empty(t, e.Label)
	assert.Zero(t, e.Sample)
	assert.Zero(t, e.Size)
	assert.Zero(t, e.Elapsed)
	require.NoError(t, e.Error)
}

func TestEventFields(t *testing.T) {
	now := time.Now()
	e := Event{
		Type:      SampleCompleted,
		Timestamp: now,
		Label:     "pipe+splice + advices",
		Method:    "splice",
		Sample:    2,
		Size:      1024,
		Elapsed:   3 * time.Millisecond,
	}
	assert.Equal(t, SampleCompleted, e.Type)
	assert.Equal(t, now, e.Timestamp)
	assert.Equal(t, "pipe+splice + advices", e.Label)
	assert.Equal(t, "splice", e.Method)
	assert.Equal(t, 2, e.Sample)
	assert.Equal(t, int64(1024), e.Size)
	assert.Equal(t, 3*time.Millisecond, e.Elapsed)
}
