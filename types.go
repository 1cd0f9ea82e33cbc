package tdms

import "fmt"

// LogicalType is the on-disk type tag used for raw-data channels and
// property values.
type LogicalType uint32

const (
	DataTypeVoid                  LogicalType = 0x00
	DataTypeI8                    LogicalType = 0x01
	DataTypeI16                   LogicalType = 0x02
	DataTypeI32                   LogicalType = 0x03
	DataTypeI64                   LogicalType = 0x04
	DataTypeU8                    LogicalType = 0x05
	DataTypeU16                   LogicalType = 0x06
	DataTypeU32                   LogicalType = 0x07
	DataTypeU64                   LogicalType = 0x08
	DataTypeSingleFloat           LogicalType = 0x09
	DataTypeDoubleFloat           LogicalType = 0x0A
	DataTypeExtendedFloat         LogicalType = 0x0B
	DataTypeSingleFloatWithUnit   LogicalType = 0x19
	DataTypeDoubleFloatWithUnit   LogicalType = 0x1A
	DataTypeExtendedFloatWithUnit LogicalType = 0x1B
	DataTypeString                LogicalType = 0x20
	DataTypeBoolean               LogicalType = 0x21
	DataTypeTimestamp             LogicalType = 0x44
	DataTypeFixedPoint            LogicalType = 0x4F
	DataTypeComplexSingleFloat    LogicalType = 0x08000C
	DataTypeComplexDoubleFloat    LogicalType = 0x10000D
	DataTypeDAQmxRawData          LogicalType = 0xFFFFFFFF
)

// Size returns the fixed on-disk byte size of the type, or 0 for
// variable-length types (String) and DAQmx raw data, whose size is
// declared per-object instead.
func (dt LogicalType) Size() int {
	switch dt {
	case DataTypeVoid, DataTypeString, DataTypeDAQmxRawData:
		return 0
	case DataTypeI8, DataTypeU8, DataTypeBoolean:
		return 1
	case DataTypeI16, DataTypeU16:
		return 2
	case DataTypeI32, DataTypeU32, DataTypeSingleFloat, DataTypeSingleFloatWithUnit:
		return 4
	case DataTypeI64, DataTypeU64, DataTypeDoubleFloat, DataTypeDoubleFloatWithUnit, DataTypeComplexSingleFloat:
		return 8
	case DataTypeExtendedFloat, DataTypeExtendedFloatWithUnit, DataTypeTimestamp, DataTypeComplexDoubleFloat:
		return 16
	default:
		return 0
	}
}

// IsVariableSize reports whether values of this type carry their own
// length prefix (currently only String).
func (dt LogicalType) IsVariableSize() bool {
	return dt == DataTypeString
}

// Name returns a human-readable name for the type, used in error messages.
func (dt LogicalType) Name() string {
	switch dt {
	case DataTypeVoid:
		return "Void"
	case DataTypeI8:
		return "I8"
	case DataTypeI16:
		return "I16"
	case DataTypeI32:
		return "I32"
	case DataTypeI64:
		return "I64"
	case DataTypeU8:
		return "U8"
	case DataTypeU16:
		return "U16"
	case DataTypeU32:
		return "U32"
	case DataTypeU64:
		return "U64"
	case DataTypeSingleFloat, DataTypeSingleFloatWithUnit:
		return "SingleFloat"
	case DataTypeDoubleFloat, DataTypeDoubleFloatWithUnit:
		return "DoubleFloat"
	case DataTypeExtendedFloat, DataTypeExtendedFloatWithUnit:
		return "ExtendedFloat"
	case DataTypeString:
		return "String"
	case DataTypeBoolean:
		return "Boolean"
	case DataTypeTimestamp:
		return "Timestamp"
	case DataTypeFixedPoint:
		return "FixedPoint"
	case DataTypeComplexSingleFloat:
		return "ComplexSingleFloat"
	case DataTypeComplexDoubleFloat:
		return "ComplexDoubleFloat"
	case DataTypeDAQmxRawData:
		return "DAQmxRawData"
	default:
		return fmt.Sprintf("Unknown(0x%X)", uint32(dt))
	}
}

// NaturalHostType names the Go type that best represents this logical
// type, for documentation/diagnostics only.
func (dt LogicalType) NaturalHostType() string {
	switch dt {
	case DataTypeI8:
		return "int8"
	case DataTypeI16:
		return "int16"
	case DataTypeI32:
		return "int32"
	case DataTypeI64:
		return "int64"
	case DataTypeU8:
		return "uint8"
	case DataTypeU16:
		return "uint16"
	case DataTypeU32:
		return "uint32"
	case DataTypeU64:
		return "uint64"
	case DataTypeSingleFloat, DataTypeSingleFloatWithUnit:
		return "float32"
	case DataTypeDoubleFloat, DataTypeDoubleFloatWithUnit:
		return "float64"
	case DataTypeExtendedFloat, DataTypeExtendedFloatWithUnit:
		return "tdms.Float128"
	case DataTypeString:
		return "string"
	case DataTypeBoolean:
		return "bool"
	case DataTypeTimestamp:
		return "tdms.Timestamp"
	case DataTypeComplexSingleFloat:
		return "complex64"
	case DataTypeComplexDoubleFloat:
		return "complex128"
	default:
		return "unsupported"
	}
}
