package tdms

import (
	"math"
	"math/big"
	"slices"
)

// Float128 is an opaque 128-bit IEEE 754 quad-precision float, stored as
// its 16 raw bytes in little-endian order regardless of the segment's
// on-disk byte order. This library does not implement extended-float
// arithmetic; Float128 only round-trips the bytes and offers
// lossy/lossless conversion helpers.
type Float128 [16]byte

// decodeFloat128 reads 16 raw bytes in the given segment byte order and
// normalizes them to Float128's little-endian storage.
func decodeFloat128(raw []byte, order ByteOrder) Float128 {
	buf := make([]byte, 16)
	copy(buf, raw)
	if order == BigEndian {
		slices.Reverse(buf)
	}
	return Float128(buf)
}

// encode returns the 16 bytes of f in the given segment byte order.
func (f Float128) encode(order ByteOrder) []byte {
	buf := slices.Clone(f[:])
	if order == BigEndian {
		slices.Reverse(buf)
	}
	return buf
}

// Float64 converts the quad-precision value to a float64, losing
// precision. NaN values (per IsNaN) convert to math.NaN.
func (f Float128) Float64() float64 {
	bf := f.BigFloat()
	if bf == nil {
		return math.NaN()
	}
	v, _ := bf.Float64()
	return v
}

// IsNaN reports whether f represents a NaN value.
func (f Float128) IsNaN() bool {
	exponent := quadExponent(f)
	return exponent == 0x7FFF && !quadMantissaIsZero(f)
}

// BigFloat converts the quad-precision value to an arbitrary-precision
// big.Float without losing precision. Returns nil if f is NaN.
func (f Float128) BigFloat() *big.Float {
	data := slices.Clone(f[:])
	slices.Reverse(data) // parseQuad expects most-significant byte first

	sign := (data[0] >> 7) & 1
	exponent := uint16(data[0]&0x7F) << 8
	exponent |= uint16(data[1])

	mantissaBits := make([]byte, 14)
	copy(mantissaBits, data[2:16])

	result := new(big.Float).SetPrec(113)

	if exponent == 0x7FFF {
		if quadMantissaIsZero(f) {
			result.SetInf(sign == 1)
			return result
		}
		return nil // NaN
	}

	shiftAmount := new(big.Int).Lsh(big.NewInt(1), 112)

	if exponent == 0 {
		if quadMantissaIsZero(f) {
			result.SetInt64(0)
			return result
		}

		mantissaValue := mantissaToBigInt(mantissaBits)
		mantissaFloat := new(big.Float).SetInt(mantissaValue)
		mantissaFloat.Quo(mantissaFloat, new(big.Float).SetInt(shiftAmount))

		power := new(big.Float).SetMantExp(big.NewFloat(1), -16382)
		result.Mul(mantissaFloat, power)

		if sign == 1 {
			result.Neg(result)
		}
		return result
	}

	exponentValue := int(exponent) - 16383
	mantissaValue := mantissaToBigInt(mantissaBits)

	mantissaFloat := new(big.Float).SetInt(mantissaValue)
	mantissaFloat.Quo(mantissaFloat, new(big.Float).SetInt(shiftAmount))
	mantissaFloat.Add(mantissaFloat, big.NewFloat(1))

	power := new(big.Float).SetMantExp(big.NewFloat(1), exponentValue)
	result.Mul(mantissaFloat, power)

	if sign == 1 {
		result.Neg(result)
	}

	return result
}

func quadExponent(f Float128) uint16 {
	data := slices.Clone(f[:])
	slices.Reverse(data)
	exponent := uint16(data[0]&0x7F) << 8
	exponent |= uint16(data[1])
	return exponent
}

func quadMantissaIsZero(f Float128) bool {
	data := slices.Clone(f[:])
	slices.Reverse(data)
	for _, b := range data[2:16] {
		if b != 0 {
			return false
		}
	}
	return true
}

func mantissaToBigInt(mantissaBits []byte) *big.Int {
	result := new(big.Int)
	for _, b := range mantissaBits {
		result.Lsh(result, 8)
		result.Or(result, big.NewInt(int64(b)))
	}
	return result
}
