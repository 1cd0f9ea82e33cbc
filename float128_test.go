package tdms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdms-go/tdms"
)

// Float128 stores its 16 bytes little-endian; these fixtures are the
// IEEE 754 binary128 encoding of each value with byte order reversed.
func TestFloat128Zero(t *testing.T) {
	var f tdms.Float128
	assert.False(t, f.IsNaN())
	assert.Equal(t, 0.0, f.Float64())
}

func TestFloat128One(t *testing.T) {
	// Big-endian binary128 for 1.0: 3F FF 00...00 (sign=0, exp=0x3FFF, mantissa=0).
	f := tdms.Float128{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0x3F}
	assert.False(t, f.IsNaN())
	assert.InDelta(t, 1.0, f.Float64(), 1e-18)
}

func TestFloat128NaN(t *testing.T) {
	// Big-endian binary128 NaN: exponent all-ones, non-zero mantissa.
	f := tdms.Float128{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0x7F}
	assert.True(t, f.IsNaN())
	assert.True(t, f.Float64() != f.Float64()) // NaN != NaN
}

func TestFloat128BigFloatPrecision(t *testing.T) {
	f := tdms.Float128{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0x3F}
	bf := f.BigFloat()
	if bf == nil {
		t.Fatal("expected non-nil big.Float for 1.0")
	}
	got, _ := bf.Float64()
	assert.Equal(t, 1.0, got)
}
