package tdms

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ByteOrder is the endianness a segment's metadata and raw data are
// encoded in. Every segment re-evaluates this independently from its own
// ToC — nothing hoists a
// file-global byte order.
type ByteOrder = binary.ByteOrder

var (
	LittleEndian ByteOrder = binary.LittleEndian
	BigEndian    ByteOrder = binary.BigEndian
)

// Integer is the set of host integer types the codec can read and write.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of host floating-point types the codec can read and write.
type Float interface {
	~float32 | ~float64
}

// Number is any host type the generic numeric codec supports.
type Number interface {
	Integer | Float
}

// sizeOfNumber returns the on-disk byte size of T, matching the logical
// type's fixed size.
func sizeOfNumber[T Number]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	default:
		return 0
	}
}

// readNumeric reads one value of T from r in the given byte order. This is
// the generic heart of the typed codec: one function covers every
// fixed-width integer and float host type instead of a method per type.
func readNumeric[T Number](r io.Reader, order ByteOrder) (T, error) {
	var zero T
	n := sizeOfNumber[T]()
	if n == 0 {
		return zero, ErrUnknownDataType
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return zero, errors.Join(ErrReadFailed, err)
	}

	return decodeNumeric[T](buf, order), nil
}

// decodeNumeric interprets a byte slice of the correct length as T. The
// slice must be exactly sizeOfNumber[T]() bytes.
func decodeNumeric[T Number](buf []byte, order ByteOrder) T {
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
		*p = math.Float32frombits(order.Uint32(buf))
	case *float64:
		*p = math.Float64frombits(order.Uint64(buf))
	}
	return out
}

// writeNumeric writes one value of T to w in the given byte order.
func writeNumeric[T Number](w io.Writer, order ByteOrder, v T) error {
	n := sizeOfNumber[T]()
	if n == 0 {
		return ErrUnknownDataType
	}

	buf := make([]byte, n)
	encodeNumeric(buf, order, v)

	_, err := w.Write(buf)
	if err != nil {
		return errors.Join(ErrIOError, err)
	}
	return nil
}

func encodeNumeric[T Number](buf []byte, order ByteOrder, v T) {
	switch p := any(v).(type) {
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
		order.PutUint32(buf, math.Float32bits(p))
	case float64:
		order.PutUint64(buf, math.Float64bits(p))
	}
}

// readUint32 and readUint64 are the plain (non-generic) helpers used
// throughout the metadata codec.
func readUint32(r io.Reader, order ByteOrder) (uint32, error) {
	return readNumeric[uint32](r, order)
}

func readUint64(r io.Reader, order ByteOrder) (uint64, error) {
	return readNumeric[uint64](r, order)
}

func writeUint32(w io.Writer, order ByteOrder, v uint32) error {
	return writeNumeric(w, order, v)
}

func writeUint64(w io.Writer, order ByteOrder, v uint64) error {
	return writeNumeric(w, order, v)
}

// readString reads a length-prefixed UTF-8 string: a 4-byte length in the
// segment's byte order followed by that many raw bytes. A declared length
// that exceeds the bytes remaining in the stream fails cleanly with
// ErrStringAllocationFailed rather than panicking or over-allocating
//.
func readString(r io.Reader, order ByteOrder, remaining int64) (string, error) {
	length, err := readUint32(r, order)
	if err != nil {
		return "", err
	}

	if remaining >= 0 && int64(length) > remaining-4 {
		return "", ErrStringAllocationFailed
	}

	// Read through a limit instead of allocating the declared length up
	// front, so a bogus length on a short stream only costs the bytes
	// actually present.
	buf, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return "", errors.Join(ErrReadFailed, err)
	}
	if len(buf) < int(length) {
		return "", ErrStringAllocationFailed
	}

	return string(buf), nil
}

// writeString writes a string using the same length-prefixed framing
// readString expects.
func writeString(w io.Writer, order ByteOrder, s string) error {
	if err := writeUint32(w, order, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	if err != nil {
		return errors.Join(ErrIOError, err)
	}
	return nil
}

// stringByteSize returns the on-disk size of a length-prefixed string.
func stringByteSize(s string) int {
	return 4 + len(s)
}

func readBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, errors.Join(ErrReadFailed, err)
	}
	return buf[0] != 0, nil
}

func writeBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	if err != nil {
		return errors.Join(ErrIOError, err)
	}
	return nil
}

func readTimestamp(r io.Reader, order ByteOrder) (Timestamp, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Timestamp{}, errors.Join(ErrReadFailed, err)
	}
	return Timestamp{
		Remainder: order.Uint64(buf[:8]),
		Seconds:   int64(order.Uint64(buf[8:])),
	}, nil
}

func writeTimestamp(w io.Writer, order ByteOrder, t Timestamp) error {
	var buf [16]byte
	order.PutUint64(buf[:8], t.Remainder)
	order.PutUint64(buf[8:], uint64(t.Seconds))
	_, err := w.Write(buf[:])
	if err != nil {
		return errors.Join(ErrIOError, err)
	}
	return nil
}

func readFloat128(r io.Reader, order ByteOrder) (Float128, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Float128{}, errors.Join(ErrReadFailed, err)
	}
	return decodeFloat128(buf[:], order), nil
}

func writeFloat128(w io.Writer, order ByteOrder, f Float128) error {
	_, err := w.Write(f.encode(order))
	if err != nil {
		return errors.Join(ErrIOError, err)
	}
	return nil
}

func readComplex64(r io.Reader, order ByteOrder) (complex64, error) {
	re, err := readNumeric[float32](r, order)
	if err != nil {
		return 0, err
	}
	im, err := readNumeric[float32](r, order)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

func writeComplex64(w io.Writer, order ByteOrder, v complex64) error {
	if err := writeNumeric(w, order, real(v)); err != nil {
		return err
	}
	return writeNumeric(w, order, imag(v))
}

func readComplex128(r io.Reader, order ByteOrder) (complex128, error) {
	re, err := readNumeric[float64](r, order)
	if err != nil {
		return 0, err
	}
	im, err := readNumeric[float64](r, order)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

func writeComplex128(w io.Writer, order ByteOrder, v complex128) error {
	if err := writeNumeric(w, order, real(v)); err != nil {
		return err
	}
	return writeNumeric(w, order, imag(v))
}

// compatibleHostTypes lists, for documentation and diagnostics, which Go
// types a logical type may be read into. Raw-data reads are validated by
// sampleCompatible, which follows this table except for String, whose
// values are only readable as properties.
func compatibleHostTypes(dt LogicalType) []string {
	switch dt {
	case DataTypeI8:
		return []string{"int8"}
	case DataTypeI16:
		return []string{"int16"}
	case DataTypeI32:
		return []string{"int32"}
	case DataTypeI64:
		return []string{"int64"}
	case DataTypeU8:
		return []string{"uint8"}
	case DataTypeU16:
		return []string{"uint16"}
	case DataTypeU32:
		return []string{"uint32"}
	case DataTypeU64:
		return []string{"uint64"}
	case DataTypeSingleFloat, DataTypeSingleFloatWithUnit:
		return []string{"float32"}
	case DataTypeDoubleFloat, DataTypeDoubleFloatWithUnit:
		return []string{"float64"}
	case DataTypeBoolean:
		return []string{"bool", "uint8"}
	case DataTypeString:
		return []string{"string"}
	case DataTypeTimestamp:
		return []string{"tdms.Timestamp"}
	case DataTypeComplexSingleFloat:
		return []string{"complex64"}
	case DataTypeComplexDoubleFloat:
		return []string{"complex128"}
	case DataTypeExtendedFloat, DataTypeExtendedFloatWithUnit:
		return []string{"tdms.Float128"}
	default:
		return nil
	}
}
