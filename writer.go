package tdms

import (
	"fmt"
	"io"
)

// Layout controls how a written segment's raw data interleaves multiple
// channels' values.
type Layout int

const (
	// LayoutContiguous stores each channel's values as one unbroken run.
	LayoutContiguous Layout = iota
	// LayoutInterleaved stores one value from each channel per row.
	LayoutInterleaved
)

// ChannelData is one channel's values and properties to write as part of
// a segment. Values must be a slice of a [Sample] type (e.g. []float64);
// passing any other type returns ErrUnsupportedType from WriteChannels.
type ChannelData struct {
	Path       string
	Values     any
	Properties []Property
}

// Writer appends segments to a File opened for writing. A Writer holds no
// state of its own beyond the File it wraps; obtaining multiple Writers
// for the same File is safe since every operation serializes on the
// File's mutex.
type Writer struct {
	f *File
}

// Writer returns a handle for appending new segments to f.
func (f *File) Writer() (*Writer, error) {
	return &Writer{f: f}, nil
}

// WriteChannels appends one segment containing a raw data block for each
// entry in data, laid out per layout, plus a metadata block declaring
// each channel's shape. A channel whose path, data type, dimension and
// value count exactly match its previous write is recorded as
// MatchPrevious instead of a full index; the segment only sets the
// new-object-list ToC bit when data's paths, in order, differ from the
// currently active channel list.
func (w *Writer) WriteChannels(bigEndian bool, layout Layout, data []ChannelData) (Segment, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()

	if len(data) == 0 {
		return Segment{}, ErrNoChannels
	}

	order := ByteOrder(LittleEndian)
	if bigEndian {
		order = BigEndian
	}

	encs := make([]packedChannel, len(data))
	for i, cd := range data {
		dt, valueSize, n, buf, err := encodeChannelValues(cd.Values, order)
		if err != nil {
			return Segment{}, fmt.Errorf("failed to encode channel %s: %w", cd.Path, err)
		}
		encs[i] = packedChannel{path: cd.Path, dataType: dt, numValues: n, valueSize: valueSize, bytes: buf}
	}

	if layout == LayoutInterleaved {
		n := encs[0].numValues
		for _, e := range encs {
			if e.numValues != n {
				return Segment{}, ErrBadDataBlockLength
			}
		}
	}

	rawData := packRawData(encs, layout)

	paths := make([]string, len(data))
	formats := make([]rawDataIndex, len(data))
	for i, cd := range data {
		e := encs[i]
		paths[i] = cd.Path
		formats[i] = rawDataIndex{
			kind:      rawIndexKindExplicit,
			dataType:  e.dataType,
			dimension: 1,
			numValues: uint64(e.numValues),
		}
	}
	sameActiveList, matchesPrevious := w.f.idx.planWrite(paths, formats)

	records := make([]objectRecord, len(data))
	for i, cd := range data {
		idx := formats[i]
		if matchesPrevious[i] {
			idx = rawDataIndex{kind: rawIndexKindMatchPrevious}
		}
		records[i] = objectRecord{
			path:       cd.Path,
			index:      idx,
			properties: cd.Properties,
		}
	}

	return w.appendSegment(records, rawData, bigEndian, layout == LayoutInterleaved, !sameActiveList)
}

// WriteProperties appends a metadata-only segment (no raw data) updating
// objectPath's properties.
func (w *Writer) WriteProperties(objectPath string, props []Property) (Segment, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()

	records := []objectRecord{{
		path:       objectPath,
		index:      rawDataIndex{kind: rawIndexKindNone},
		properties: props,
	}}

	// A properties-only record carries rawIndexKindNone, which never
	// touches the active list, so there's nothing to reset here.
	return w.appendSegment(records, nil, false, false, false)
}

func (w *Writer) appendSegment(records []objectRecord, rawData []byte, bigEndian, interleaved, newObjectList bool) (Segment, error) {
	end, err := w.f.rw.Seek(0, io.SeekEnd)
	if err != nil {
		return Segment{}, fmt.Errorf("failed to seek to end of file: %w", err)
	}

	seg, err := writeSegment(w.f.rw, end, records, rawData, bigEndian, interleaved, newObjectList)
	if err != nil {
		return Segment{}, fmt.Errorf("failed to write segment: %w", err)
	}
	seg.Index = len(w.f.idx.segments)

	if err := w.f.idx.addSegment(seg); err != nil {
		return Segment{}, fmt.Errorf("failed to index written segment: %w", err)
	}

	return seg, nil
}

// Sync flushes buffered writes to the underlying stream. If the stream
// also implements a Sync method (as *os.File does), both the flush and
// the fsync errors are combined.
func (w *Writer) Sync() error {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()

	return w.f.rw.Sync()
}

// encodeChannelValues type-switches on a ChannelData.Values field, packing
// its elements into raw bytes in the given byte order and reporting the
// inferred logical type.
func encodeChannelValues(values any, order ByteOrder) (LogicalType, int, int, []byte, error) {
	switch v := values.(type) {
	case []int8:
		return packSlice(v, DataTypeI8, order)
	case []int16:
		return packSlice(v, DataTypeI16, order)
	case []int32:
		return packSlice(v, DataTypeI32, order)
	case []int64:
		return packSlice(v, DataTypeI64, order)
	case []uint8:
		return packSlice(v, DataTypeU8, order)
	case []uint16:
		return packSlice(v, DataTypeU16, order)
	case []uint32:
		return packSlice(v, DataTypeU32, order)
	case []uint64:
		return packSlice(v, DataTypeU64, order)
	case []float32:
		return packSlice(v, DataTypeSingleFloat, order)
	case []float64:
		return packSlice(v, DataTypeDoubleFloat, order)
	case []bool:
		return packSlice(v, DataTypeBoolean, order)
	case []Timestamp:
		return packSlice(v, DataTypeTimestamp, order)
	case []Float128:
		return packSlice(v, DataTypeExtendedFloat, order)
	case []complex64:
		return packSlice(v, DataTypeComplexSingleFloat, order)
	case []complex128:
		return packSlice(v, DataTypeComplexDoubleFloat, order)
	default:
		return 0, 0, 0, nil, ErrUnsupportedType
	}
}

func packSlice[T Sample](values []T, dt LogicalType, order ByteOrder) (LogicalType, int, int, []byte, error) {
	valueSize := dt.Size()
	buf := make([]byte, len(values)*valueSize)
	for i, v := range values {
		encodeSample(buf[i*valueSize:(i+1)*valueSize], order, v)
	}
	return dt, valueSize, len(values), buf, nil
}

type packedChannel = struct {
	path      string
	dataType  LogicalType
	numValues int
	valueSize int
	bytes     []byte
}

// packRawData assembles the full raw data block for a segment from its
// per-channel encoded byte runs, according to layout.
func packRawData(encs []packedChannel, layout Layout) []byte {
	if layout == LayoutContiguous {
		var out []byte
		for _, e := range encs {
			out = append(out, e.bytes...)
		}
		return out
	}

	// Interleaved: every channel has the same numValues (validated by
	// the caller); emit row by row.
	rowSize := 0
	for _, e := range encs {
		rowSize += e.valueSize
	}
	numValues := encs[0].numValues

	out := make([]byte, numValues*rowSize)
	offset := 0
	for _, e := range encs {
		for row := 0; row < numValues; row++ {
			copy(out[row*rowSize+offset:row*rowSize+offset+e.valueSize], e.bytes[row*e.valueSize:(row+1)*e.valueSize])
		}
		offset += e.valueSize
	}
	return out
}
