package tdms

import (
	"fmt"
	"io"
)

// Raw-data-index discriminator values. The
// 4-byte value preceding an object's raw data description in a segment's
// metadata block tells the reader which of four shapes follows.
//
// daqmxRawIndexRangeStart/End bound the discriminator values DAQmx raw
// data indices use instead of an explicit-index byte length: any value
// in this inclusive range marks a DAQmx index, not a specific pair of
// sentinel constants.
const (
	rawIndexNone            = 0xFFFFFFFF
	rawIndexMatchesPrevious = 0x00000000

	daqmxRawIndexRangeStart = 0x69120000
	daqmxRawIndexRangeEnd   = 0x6913FFFF
)

// rawIndexKind classifies how an object's raw-data index was encoded in a
// segment, independent of the raw numeric discriminator value.
type rawIndexKind int

const (
	rawIndexKindNone rawIndexKind = iota
	rawIndexKindMatchPrevious
	rawIndexKindDAQmx
	rawIndexKindExplicit
)

// rawDataIndex describes one object's raw-data shape within a single
// segment: its logical type, the number of values, and (for variable-size
// types) the total byte size of the values.
type rawDataIndex struct {
	kind      rawIndexKind
	dataType  LogicalType
	dimension uint32 // always 1 for TDMS; preserved for on-disk fidelity
	numValues uint64
	byteSize  uint64 // total bytes for variable-length types (String)
}

// objectRecord is one object's metadata entry within a segment: its path,
// raw-data index (if any), and the properties written in this segment.
type objectRecord struct {
	path       string
	index      rawDataIndex
	properties []Property
}

// readSegmentMetadata reads the metadata block immediately following a
// segment's lead-in: a 4-byte object count followed by that many object
// records. order must be the byte order resolved from the segment's own
// ToC, since endianness is chosen independently per segment.
func readSegmentMetadata(r io.Reader, order ByteOrder) ([]objectRecord, error) {
	count, err := readUint32(r, order)
	if err != nil {
		return nil, err
	}

	records := make([]objectRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := readObjectRecord(r, order)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func readObjectRecord(r io.Reader, order ByteOrder) (objectRecord, error) {
	path, err := readString(r, order, -1)
	if err != nil {
		return objectRecord{}, err
	}

	rawIndexLen, err := readUint32(r, order)
	if err != nil {
		return objectRecord{}, err
	}

	var index rawDataIndex
	switch {
	case rawIndexLen == rawIndexNone:
		index = rawDataIndex{kind: rawIndexKindNone}
	case rawIndexLen == rawIndexMatchesPrevious:
		index = rawDataIndex{kind: rawIndexKindMatchPrevious}
	case rawIndexLen >= daqmxRawIndexRangeStart && rawIndexLen <= daqmxRawIndexRangeEnd:
		// A DAQmx raw-data index replaces the explicit-index byte length
		// with a discriminator in this range, followed by a scaler array
		// this library doesn't decode. There's no safe way to skip past
		// it without knowing its shape, so parsing stops here instead of
		// guessing and desyncing the cursor for the objects that follow.
		return objectRecord{}, fmt.Errorf("%w: DAQmx raw data index", ErrUnsupportedType)
	default:
		idx, err := readExplicitRawIndex(r, order)
		if err != nil {
			return objectRecord{}, err
		}
		index = idx
	}

	props, err := readProperties(r, order)
	if err != nil {
		return objectRecord{}, err
	}

	return objectRecord{path: path, index: index, properties: props}, nil
}

// readExplicitRawIndex reads the common shape: data type, dimension (must
// be 1), and number of values, followed by a total byte size for
// variable-length types.
func readExplicitRawIndex(r io.Reader, order ByteOrder) (rawDataIndex, error) {
	typeCode, err := readUint32(r, order)
	if err != nil {
		return rawDataIndex{}, err
	}
	dataType := LogicalType(typeCode)

	dimension, err := readUint32(r, order)
	if err != nil {
		return rawDataIndex{}, err
	}

	numValues, err := readUint64(r, order)
	if err != nil {
		return rawDataIndex{}, err
	}

	idx := rawDataIndex{
		kind:      rawIndexKindExplicit,
		dataType:  dataType,
		dimension: dimension,
		numValues: numValues,
	}

	if dataType.IsVariableSize() {
		byteSize, err := readUint64(r, order)
		if err != nil {
			return rawDataIndex{}, err
		}
		idx.byteSize = byteSize
	}

	return idx, nil
}

// readProperties reads a 4-byte property count followed by that many
// name/type/value triples.
func readProperties(r io.Reader, order ByteOrder) ([]Property, error) {
	count, err := readUint32(r, order)
	if err != nil {
		return nil, err
	}

	props := make([]Property, 0, count)
	for i := uint32(0); i < count; i++ {
		prop, err := readProperty(r, order)
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}

	return props, nil
}

func readProperty(r io.Reader, order ByteOrder) (Property, error) {
	name, err := readString(r, order, -1)
	if err != nil {
		return Property{}, err
	}

	typeCode, err := readUint32(r, order)
	if err != nil {
		return Property{}, err
	}
	dataType := LogicalType(typeCode)

	value, err := readPropertyValue(r, order, dataType)
	if err != nil {
		return Property{}, err
	}

	return Property{Name: name, Value: value}, nil
}

// readPropertyValue decodes a single scalar property value of the given
// logical type. Properties never carry String's length-aware
// truncation guard since they're always small, bounded metadata fields.
func readPropertyValue(r io.Reader, order ByteOrder, dataType LogicalType) (PropertyValue, error) {
	switch dataType {
	case DataTypeI8:
		v, err := readNumeric[int8](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeI16:
		v, err := readNumeric[int16](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeI32:
		v, err := readNumeric[int32](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeI64:
		v, err := readNumeric[int64](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeU8:
		v, err := readNumeric[uint8](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeU16:
		v, err := readNumeric[uint16](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeU32:
		v, err := readNumeric[uint32](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeU64:
		v, err := readNumeric[uint64](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeSingleFloat, DataTypeSingleFloatWithUnit:
		v, err := readNumeric[float32](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeDoubleFloat, DataTypeDoubleFloatWithUnit:
		v, err := readNumeric[float64](r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeExtendedFloat, DataTypeExtendedFloatWithUnit:
		v, err := readFloat128(r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeString:
		v, err := readString(r, order, -1)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeBoolean:
		v, err := readBool(r)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeTimestamp:
		v, err := readTimestamp(r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeComplexSingleFloat:
		v, err := readComplex64(r, order)
		return PropertyValue{typ: dataType, data: v}, err
	case DataTypeComplexDoubleFloat:
		v, err := readComplex128(r, order)
		return PropertyValue{typ: dataType, data: v}, err
	default:
		return PropertyValue{}, ErrUnknownPropertyType
	}
}

// writeSegmentMetadata serializes a metadata block in the shape
// readSegmentMetadata expects.
func writeSegmentMetadata(w io.Writer, order ByteOrder, records []objectRecord) error {
	if err := writeUint32(w, order, uint32(len(records))); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writeObjectRecord(w, order, rec); err != nil {
			return err
		}
	}
	return nil
}

func writeObjectRecord(w io.Writer, order ByteOrder, rec objectRecord) error {
	if err := writeString(w, order, rec.path); err != nil {
		return err
	}

	switch rec.index.kind {
	case rawIndexKindNone:
		if err := writeUint32(w, order, rawIndexNone); err != nil {
			return err
		}
	case rawIndexKindMatchPrevious:
		if err := writeUint32(w, order, rawIndexMatchesPrevious); err != nil {
			return err
		}
	case rawIndexKindExplicit:
		if err := writeExplicitRawIndex(w, order, rec.index); err != nil {
			return err
		}
	default:
		return ErrUnsupportedType
	}

	return writeProperties(w, order, rec.properties)
}

func writeExplicitRawIndex(w io.Writer, order ByteOrder, idx rawDataIndex) error {
	length := uint32(4 + 4 + 8) // type + dimension + numValues
	if idx.dataType.IsVariableSize() {
		length += 8
	}
	if err := writeUint32(w, order, length); err != nil {
		return err
	}
	if err := writeUint32(w, order, uint32(idx.dataType)); err != nil {
		return err
	}
	if err := writeUint32(w, order, idx.dimension); err != nil {
		return err
	}
	if err := writeUint64(w, order, idx.numValues); err != nil {
		return err
	}
	if idx.dataType.IsVariableSize() {
		if err := writeUint64(w, order, idx.byteSize); err != nil {
			return err
		}
	}
	return nil
}

func writeProperties(w io.Writer, order ByteOrder, props []Property) error {
	if err := writeUint32(w, order, uint32(len(props))); err != nil {
		return err
	}
	for _, p := range props {
		if err := writeProperty(w, order, p); err != nil {
			return err
		}
	}
	return nil
}

func writeProperty(w io.Writer, order ByteOrder, p Property) error {
	if err := writeString(w, order, p.Name); err != nil {
		return err
	}
	if err := writeUint32(w, order, uint32(p.Value.typ)); err != nil {
		return err
	}
	return writePropertyValue(w, order, p.Value)
}

func writePropertyValue(w io.Writer, order ByteOrder, v PropertyValue) error {
	switch d := v.data.(type) {
	case int8:
		return writeNumeric(w, order, d)
	case int16:
		return writeNumeric(w, order, d)
	case int32:
		return writeNumeric(w, order, d)
	case int64:
		return writeNumeric(w, order, d)
	case uint8:
		return writeNumeric(w, order, d)
	case uint16:
		return writeNumeric(w, order, d)
	case uint32:
		return writeNumeric(w, order, d)
	case uint64:
		return writeNumeric(w, order, d)
	case float32:
		return writeNumeric(w, order, d)
	case float64:
		return writeNumeric(w, order, d)
	case Float128:
		return writeFloat128(w, order, d)
	case string:
		return writeString(w, order, d)
	case bool:
		return writeBool(w, d)
	case Timestamp:
		return writeTimestamp(w, order, d)
	case complex64:
		return writeComplex64(w, order, d)
	case complex128:
		return writeComplex128(w, order, d)
	default:
		return ErrUnknownPropertyType
	}
}

// recordByteSize computes the on-disk size of an object record, used by
// the writer to pre-compute segment offsets before a single sequential
// write pass.
func recordByteSize(rec objectRecord) int {
	size := stringByteSize(rec.path) + 4 // path + raw-index discriminator

	switch rec.index.kind {
	case rawIndexKindExplicit:
		size += 4 + 4 + 8 // type + dimension + numValues
		if rec.index.dataType.IsVariableSize() {
			size += 8
		}
	}

	size += 4 // property count
	for _, p := range rec.properties {
		size += stringByteSize(p.Name) + 4 + propertyValueByteSize(p.Value)
	}

	return size
}

func propertyValueByteSize(v PropertyValue) int {
	switch d := v.data.(type) {
	case string:
		return stringByteSize(d)
	default:
		return v.typ.Size()
	}
}
