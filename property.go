package tdms

import (
	"fmt"
	"time"
)

// Property is a named metadata value attached to a file, group, or channel
// object. Properties accumulate across segments: a later segment's
// property of the same name on the same object replaces the earlier one.
type Property struct {
	Name  string
	Value PropertyValue
}

// String implements [fmt.Stringer], returning the name and value.
func (p Property) String() string {
	return fmt.Sprintf("%s: %v", p.Name, p.Value.data)
}

// PropertyValue is a typed property payload. Use Type to inspect the
// logical type before calling the matching As* accessor; As* returns
// ErrIncorrectType if called for the wrong type.
type PropertyValue struct {
	typ  LogicalType
	data any
}

// Type reports the property's logical type.
func (v PropertyValue) Type() LogicalType { return v.typ }

// String renders the value for diagnostics, independent of its type.
func (v PropertyValue) String() string {
	return fmt.Sprintf("%v", v.data)
}

// AsInt8 returns the value as an int8.
// Returns ErrIncorrectType if the property is not of type DataTypeI8.
func (v PropertyValue) AsInt8() (int8, error) {
	if v.typ != DataTypeI8 {
		return 0, ErrIncorrectType
	}
	return v.data.(int8), nil
}

// AsInt16 returns the value as an int16.
// Returns ErrIncorrectType if the property is not of type DataTypeI16.
func (v PropertyValue) AsInt16() (int16, error) {
	if v.typ != DataTypeI16 {
		return 0, ErrIncorrectType
	}
	return v.data.(int16), nil
}

// AsInt32 returns the value as an int32.
// Returns ErrIncorrectType if the property is not of type DataTypeI32.
func (v PropertyValue) AsInt32() (int32, error) {
	if v.typ != DataTypeI32 {
		return 0, ErrIncorrectType
	}
	return v.data.(int32), nil
}

// AsInt64 returns the value as an int64.
// Returns ErrIncorrectType if the property is not of type DataTypeI64.
func (v PropertyValue) AsInt64() (int64, error) {
	if v.typ != DataTypeI64 {
		return 0, ErrIncorrectType
	}
	return v.data.(int64), nil
}

// AsUint8 returns the value as a uint8.
// Returns ErrIncorrectType if the property is not of type DataTypeU8.
func (v PropertyValue) AsUint8() (uint8, error) {
	if v.typ != DataTypeU8 {
		return 0, ErrIncorrectType
	}
	return v.data.(uint8), nil
}

// AsUint16 returns the value as a uint16.
// Returns ErrIncorrectType if the property is not of type DataTypeU16.
func (v PropertyValue) AsUint16() (uint16, error) {
	if v.typ != DataTypeU16 {
		return 0, ErrIncorrectType
	}
	return v.data.(uint16), nil
}

// AsUint32 returns the value as a uint32.
// Returns ErrIncorrectType if the property is not of type DataTypeU32.
func (v PropertyValue) AsUint32() (uint32, error) {
	if v.typ != DataTypeU32 {
		return 0, ErrIncorrectType
	}
	return v.data.(uint32), nil
}

// AsUint64 returns the value as a uint64.
// Returns ErrIncorrectType if the property is not of type DataTypeU64.
func (v PropertyValue) AsUint64() (uint64, error) {
	if v.typ != DataTypeU64 {
		return 0, ErrIncorrectType
	}
	return v.data.(uint64), nil
}

// AsFloat32 returns the value as a float32.
// Returns ErrIncorrectType if the property is not a single-precision float.
func (v PropertyValue) AsFloat32() (float32, error) {
	if v.typ != DataTypeSingleFloat && v.typ != DataTypeSingleFloatWithUnit {
		return 0, ErrIncorrectType
	}
	return v.data.(float32), nil
}

// AsFloat64 returns the value as a float64.
// Returns ErrIncorrectType if the property is not a double-precision float.
func (v PropertyValue) AsFloat64() (float64, error) {
	if v.typ != DataTypeDoubleFloat && v.typ != DataTypeDoubleFloatWithUnit {
		return 0, ErrIncorrectType
	}
	return v.data.(float64), nil
}

// AsFloat128 returns the value as a Float128.
// Returns ErrIncorrectType if the property is not an extended-precision float.
func (v PropertyValue) AsFloat128() (Float128, error) {
	if v.typ != DataTypeExtendedFloat && v.typ != DataTypeExtendedFloatWithUnit {
		return Float128{}, ErrIncorrectType
	}
	return v.data.(Float128), nil
}

// AsString returns the value as a string.
// Returns ErrIncorrectType if the property is not of type DataTypeString.
func (v PropertyValue) AsString() (string, error) {
	if v.typ != DataTypeString {
		return "", ErrIncorrectType
	}
	return v.data.(string), nil
}

// AsBool returns the value as a bool.
// Returns ErrIncorrectType if the property is not of type DataTypeBoolean.
func (v PropertyValue) AsBool() (bool, error) {
	if v.typ != DataTypeBoolean {
		return false, ErrIncorrectType
	}
	return v.data.(bool), nil
}

// AsTimestamp returns the value as a Timestamp.
// Returns ErrIncorrectType if the property is not of type DataTypeTimestamp.
func (v PropertyValue) AsTimestamp() (Timestamp, error) {
	if v.typ != DataTypeTimestamp {
		return Timestamp{}, ErrIncorrectType
	}
	return v.data.(Timestamp), nil
}

// AsTime returns the value as a [time.Time], converting from the TDMS
// Timestamp format. Returns ErrIncorrectType if the property is not of
// type DataTypeTimestamp.
func (v PropertyValue) AsTime() (time.Time, error) {
	t, err := v.AsTimestamp()
	if err != nil {
		return time.Time{}, err
	}
	return t.AsTime(), nil
}

// AsComplex64 returns the value as a complex64.
// Returns ErrIncorrectType if the property is not of type DataTypeComplexSingleFloat.
func (v PropertyValue) AsComplex64() (complex64, error) {
	if v.typ != DataTypeComplexSingleFloat {
		return 0, ErrIncorrectType
	}
	return v.data.(complex64), nil
}

// AsComplex128 returns the value as a complex128.
// Returns ErrIncorrectType if the property is not of type DataTypeComplexDoubleFloat.
func (v PropertyValue) AsComplex128() (complex128, error) {
	if v.typ != DataTypeComplexDoubleFloat {
		return 0, ErrIncorrectType
	}
	return v.data.(complex128), nil
}

// PropertyScalar is the set of host types that can back a PropertyValue
// constructed with NewProperty.
type PropertyScalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string | ~bool |
		Timestamp | Float128 | complex64 | complex128
}

// NewProperty constructs a Property from a host value, inferring the
// logical type from T.
func NewProperty[T PropertyScalar](name string, value T) Property {
	return Property{Name: name, Value: PropertyValue{typ: naturalLogicalType(value), data: value}}
}

func naturalLogicalType[T PropertyScalar](value T) LogicalType {
	switch any(value).(type) {
	case int8:
		return DataTypeI8
	case int16:
		return DataTypeI16
	case int32:
		return DataTypeI32
	case int64:
		return DataTypeI64
	case uint8:
		return DataTypeU8
	case uint16:
		return DataTypeU16
	case uint32:
		return DataTypeU32
	case uint64:
		return DataTypeU64
	case float32:
		return DataTypeSingleFloat
	case float64:
		return DataTypeDoubleFloat
	case string:
		return DataTypeString
	case bool:
		return DataTypeBoolean
	case Timestamp:
		return DataTypeTimestamp
	case Float128:
		return DataTypeExtendedFloat
	case complex64:
		return DataTypeComplexSingleFloat
	case complex128:
		return DataTypeComplexDoubleFloat
	default:
		return DataTypeVoid
	}
}
