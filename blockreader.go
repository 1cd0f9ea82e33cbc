package tdms

import (
	"errors"
	"io"
)

// Sample is the set of host types a channel's raw values can be read
// into. Variable-length string raw data is deliberately excluded — reading
// a string channel's values returns ErrUnsupportedType instead.
type Sample interface {
	Number | bool | complex64 | complex128 | Timestamp | Float128
}

// sampleCompatible reports whether logical type dt may be read into host
// type T.
func sampleCompatible[T Sample](dt LogicalType) bool {
	var zero T
	switch any(zero).(type) {
	case int8:
		return dt == DataTypeI8
	case int16:
		return dt == DataTypeI16
	case int32:
		return dt == DataTypeI32
	case int64:
		return dt == DataTypeI64
	case uint8:
		return dt == DataTypeU8 || dt == DataTypeBoolean
	case uint16:
		return dt == DataTypeU16
	case uint32:
		return dt == DataTypeU32
	case uint64:
		return dt == DataTypeU64
	case float32:
		return dt == DataTypeSingleFloat || dt == DataTypeSingleFloatWithUnit
	case float64:
		return dt == DataTypeDoubleFloat || dt == DataTypeDoubleFloatWithUnit
	case bool:
		return dt == DataTypeBoolean
	case complex64:
		return dt == DataTypeComplexSingleFloat
	case complex128:
		return dt == DataTypeComplexDoubleFloat
	case Timestamp:
		return dt == DataTypeTimestamp
	case Float128:
		return dt == DataTypeExtendedFloat || dt == DataTypeExtendedFloatWithUnit
	default:
		return false
	}
}

// decodeSample reads one value of T from buf (exactly one value's raw
// bytes) in the given byte order. buf must already be validated against
// sampleCompatible.
func decodeSample[T Sample](buf []byte, order ByteOrder) T {
	var zero T
	switch any(zero).(type) {
	case bool:
		v := buf[0] != 0
		return any(v).(T)
	case complex64, complex128:
		return decodeComplexSample[T](buf, order)
	case Timestamp:
		ts := Timestamp{
			Remainder: order.Uint64(buf[0:8]),
			Seconds:   int64(order.Uint64(buf[8:16])),
		}
		return any(ts).(T)
	case Float128:
		f := decodeFloat128(buf, order)
		return any(f).(T)
	default:
		return decodeNumericSample[T](buf, order)
	}
}

func decodeNumericSample[T Sample](buf []byte, order ByteOrder) T {
	var out T
	switch p := any(&out).(type) {
	case *int8:
		*p = int8(buf[0])
	case *uint8:
		*p = buf[0]
	case *int16:
		*p = int16(order.Uint16(buf))
	case *uint16:
		*p = order.Uint16(buf)
	case *int32:
		*p = int32(order.Uint32(buf))
	case *uint32:
		*p = order.Uint32(buf)
	case *int64:
		*p = int64(order.Uint64(buf))
	case *uint64:
		*p = order.Uint64(buf)
	case *float32:
		*p = decodeNumeric[float32](buf, order)
	case *float64:
		*p = decodeNumeric[float64](buf, order)
	}
	return out
}

func decodeComplexSample[T Sample](buf []byte, order ByteOrder) T {
	var out T
	switch p := any(&out).(type) {
	case *complex64:
		re := decodeNumeric[float32](buf[0:4], order)
		im := decodeNumeric[float32](buf[4:8], order)
		*p = complex(re, im)
	case *complex128:
		re := decodeNumeric[float64](buf[0:8], order)
		im := decodeNumeric[float64](buf[8:16], order)
		*p = complex(re, im)
	}
	return out
}

func encodeSample[T Sample](buf []byte, order ByteOrder, v T) {
	switch p := any(v).(type) {
	case bool:
		b := byte(0)
		if p {
			b = 1
		}
		buf[0] = b
	case complex64:
		encodeNumeric(buf[0:4], order, real(p))
		encodeNumeric(buf[4:8], order, imag(p))
	case complex128:
		encodeNumeric(buf[0:8], order, real(p))
		encodeNumeric(buf[8:16], order, imag(p))
	case Timestamp:
		order.PutUint64(buf[0:8], p.Remainder)
		order.PutUint64(buf[8:16], uint64(p.Seconds))
	case Float128:
		copy(buf, p.encode(order))
	case int8:
		buf[0] = byte(p)
	case uint8:
		buf[0] = p
	case int16:
		order.PutUint16(buf, uint16(p))
	case uint16:
		order.PutUint16(buf, p)
	case int32:
		order.PutUint32(buf, uint32(p))
	case uint32:
		order.PutUint32(buf, p)
	case int64:
		order.PutUint64(buf, uint64(p))
	case uint64:
		order.PutUint64(buf, p)
	case float32:
		encodeNumeric(buf, order, p)
	case float64:
		encodeNumeric(buf, order, p)
	}
}

// readLocationRange reads up to len(out) values of T from loc into out,
// starting at value index `start` relative to loc.StartValue (not to the
// channel's full history). The count is clamped so the read never runs
// past loc's NumValues; start itself must be below loc.NumValues.
//
// Both block layouts are handled here:
//   - contiguous: each object's values for a chunk sit in one run, so a
//     read is a single seek + io.ReadFull per chunk crossed.
//   - interleaved: each object owns one slot per row, so each value needs
//     its own seek.
func readLocationRange[T Sample](r io.ReadSeeker, loc DataLocation, start uint64, out []T) (int, error) {
	if !sampleCompatible[T](loc.dataType) {
		return 0, ErrDataTypeMismatch
	}

	count := uint64(len(out))
	if start+count > loc.NumValues {
		count = loc.NumValues - start
	}

	buf := make([]byte, loc.valueSize)
	read := 0

	for read < int(count) {
		globalIdx := start + uint64(read)
		chunkIdx := globalIdx / loc.chunkValues
		withinChunk := globalIdx % loc.chunkValues

		chunkBase := loc.rawDataStart + int64(chunkIdx)*int64(loc.chunkByteSize)

		if loc.interleaved {
			pos := chunkBase + int64(loc.offset) + int64(withinChunk)*int64(loc.stride)
			if _, err := r.Seek(pos, io.SeekStart); err != nil {
				return read, errors.Join(ErrIOError, err)
			}
			if _, err := io.ReadFull(r, buf); err != nil {
				return read, errors.Join(ErrIOError, err)
			}
			out[read] = decodeSample[T](buf, loc.order)
			read++
			continue
		}

		// Contiguous: the remaining values in this chunk for this
		// object sit in one run; read as many as fit in out and in
		// this chunk in a single pass.
		remainingInChunk := loc.chunkValues - withinChunk
		runLen := remainingInChunk
		if uint64(int(count)-read) < runLen {
			runLen = uint64(int(count) - read)
		}

		pos := chunkBase + int64(loc.offset) + int64(withinChunk)*int64(loc.valueSize)
		if _, err := r.Seek(pos, io.SeekStart); err != nil {
			return read, errors.Join(ErrIOError, err)
		}

		runBuf := make([]byte, int(runLen)*loc.valueSize)
		if _, err := io.ReadFull(r, runBuf); err != nil {
			return read, errors.Join(ErrIOError, err)
		}
		for i := uint64(0); i < runLen; i++ {
			out[read] = decodeSample[T](runBuf[i*uint64(loc.valueSize):(i+1)*uint64(loc.valueSize)], loc.order)
			read++
		}
	}

	return read, nil
}
