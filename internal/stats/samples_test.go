package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSetSort(t *testing.T) {
	set := SampleSet{
		{Wall: 30 * time.Millisecond, Bytes: 3},
		{Wall: 10 * time.Millisecond, Bytes: 1},
		{Wall: 20 * time.Millisecond, Bytes: 2},
	}
	assert.False(t, set.Sorted())

	set.Sort()
	require.True(t, set.Sorted())
	assert.Equal(t, [SampleCount]int64{10, 20, 30}, set.Millis())
	// Samples move with their wall time.
	assert.Equal(t, int64(1), set[0].Bytes)
	assert.Equal(t, int64(3), set[2].Bytes)
}

func TestSampleSetAlwaysThreeNonNegative(t *testing.T) {
	var set SampleSet
	set.Sort()
	ms := set.Millis()
	require.Len(t, ms, 3)
	for _, v := range ms {
		assert.GreaterOrEqual(t, v, int64(0))
	}
}

func TestSampleMillisTruncates(t *testing.T) {
	assert.Equal(t, int64(1), Sample{Wall: 1999 * time.Microsecond}.Millis())
	assert.Equal(t, int64(0), Sample{Wall: 999 * time.Microsecond}.Millis())
	assert.Equal(t, int64(0), Sample{Wall: -time.Second}.Millis())
}

func TestSampleBytesPerSec(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   float64
	}{
		{"one MiB in half a second", Sample{Wall: 500 * time.Millisecond, Bytes: 1 << 20}, 2 << 20},
		{"zero duration", Sample{Bytes: 10}, 0},
		{"nothing written", Sample{Wall: time.Second}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.sample.BytesPerSec(), 0.01)
		})
	}
}

func TestSampleSetString(t *testing.T) {
	set := SampleSet{
		{Wall: 5 * time.Millisecond},
		{Wall: 7 * time.Millisecond},
		{Wall: 1200 * time.Millisecond},
	}
	assert.Equal(t, "5ms 7ms 1200ms", set.String())
}
