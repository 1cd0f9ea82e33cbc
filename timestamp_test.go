package tdms_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tdms-go/tdms"
)

func TestTimestampRoundTrip(t *testing.T) {
	tests := []time.Time{
		time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC), // the TDMS epoch itself
		time.Date(2000, 6, 1, 23, 59, 59, 500_000_000, time.UTC),
	}

	for _, want := range tests {
		ts := tdms.NewTimestampFromTime(want)
		got := ts.AsTime().UTC()
		assert.WithinDuration(t, want, got, time.Microsecond)
	}
}

func TestTimestampEpoch(t *testing.T) {
	epoch := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := tdms.Timestamp{Seconds: 0, Remainder: 0}
	assert.True(t, ts.AsTime().UTC().Equal(epoch))
}
