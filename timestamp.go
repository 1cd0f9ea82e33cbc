package tdms

import (
	"math/bits"
	"time"
)

// tdmsEpoch is 1904-01-01 00:00:00 UTC expressed as a Unix timestamp, the
// epoch TDMS timestamps are measured from.
const tdmsEpoch int64 = -2_082_844_800

// Timestamp is the 16-byte TDMS timestamp: a signed 64-bit count of whole
// seconds since the TDMS epoch (1904-01-01 UTC) plus an unsigned 64-bit
// fractional remainder in units of 2^-64 seconds. It round-trips the wire
// format exactly; converting to [time.Time] loses precision.
type Timestamp struct {
	Seconds   int64
	Remainder uint64
}

// AsTime converts the timestamp to a [time.Time], losing precision beyond
// nanoseconds (TDMS retains roughly 10^10 times more precision than
// time.Time in the fractional component).
func (t Timestamp) AsTime() time.Time {
	// ns = remainder * 1e9 / 2^64; dividing a 128-bit product by 2^64 is
	// just its high 64-bit word.
	ns, _ := bits.Mul64(t.Remainder, 1_000_000_000)
	return time.Unix(t.Seconds+tdmsEpoch, int64(ns))
}

// NewTimestampFromTime converts a [time.Time] to a TDMS [Timestamp].
func NewTimestampFromTime(t time.Time) Timestamp {
	seconds := t.Unix() - tdmsEpoch
	ns := uint64(t.Nanosecond())

	// remainder = ns * 2^64 / 1e9, computed as (ns << 64) / 1e9 via Div64
	// on the 128-bit product ns:0.
	hi, lo := ns, uint64(0)
	remainder, _ := bits.Div64(hi, lo, 1_000_000_000)

	return Timestamp{Seconds: seconds, Remainder: remainder}
}
