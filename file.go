package tdms

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// File is an open TDMS file: an index scanned across every segment, plus
// the underlying stream raw data is read from. Use [Open] to read an
// existing file by path, [Create] to start a new one, or [New] to wrap an
// already-open [io.ReadWriteSeeker].
//
// A *File is safe for concurrent use: reads and writer operations share
// one internal mutex, since both ultimately seek and read/write the same
// underlying stream.
type File struct {
	rw     *bufferedStream
	closer io.Closer // non-nil when the File opened its own *os.File

	idx *index
	log *zap.SugaredLogger

	mu sync.Mutex
}

// Option configures a File opened with [Open], [Create], or [New].
type Option func(*options)

type options struct {
	logger *zap.SugaredLogger
}

func defaultOptions() *options {
	return &options{logger: zap.NewNop().Sugar()}
}

// WithLogger attaches a structured logger used for diagnostic messages
// emitted while scanning or writing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) { o.logger = log }
}

// Open opens an existing TDMS file for reading, scanning it from start to
// end to build the channel and property index. The caller must call
// [File.Close] when done.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	file, err := New(f, info.Size(), opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	file.closer = f

	return file, nil
}

// Create creates a new, empty TDMS file ready for writing via [File.Writer].
func Create(path string, opts ...Option) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	file, err := New(f, 0, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	file.closer = f

	return file, nil
}

// New wraps an already-open stream as a File. size must be the stream's
// current length in bytes; a size of 0 is treated as an empty file ready
// for writing, skipping the scan entirely.
func New(rw io.ReadWriteSeeker, size int64, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	file := &File{
		rw:  newBufferedStream(rw),
		idx: newIndex(),
		log: o.logger,
	}

	if size == 0 {
		return file, nil
	}

	if err := file.scan(size); err != nil {
		return nil, err
	}

	return file, nil
}

// scan walks every segment from the start of the stream to size, folding
// each into the index.
func (f *File) scan(size int64) error {
	if _, err := f.rw.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to beginning of file: %w", err)
	}

	offset := int64(0)
	for offset < size {
		seg, err := readSegment(f.rw, offset, len(f.idx.segments))
		if err != nil {
			if errors.Is(err, ErrEndOfFile) {
				break
			}
			return fmt.Errorf("failed to read segment %d: %w", len(f.idx.segments), err)
		}

		if err := f.idx.addSegment(seg); err != nil {
			return fmt.Errorf("failed to index segment %d: %w", seg.Index, err)
		}

		if seg.leadIn.nextSegmentOffset == segmentIncomplete {
			// An incomplete segment is always the last one in the file.
			break
		}

		next := seg.segmentEnd()
		if next <= offset {
			return ErrInvalidFileFormat
		}
		offset = next

		if offset < size {
			if _, err := f.rw.Seek(offset, io.SeekStart); err != nil {
				return fmt.Errorf("failed to seek to segment %d: %w", len(f.idx.segments), err)
			}
		}
	}

	f.log.Debugw("scanned tdms file", "segments", len(f.idx.segments), "objects", len(f.idx.objects))

	return nil
}

// ListGroups returns every group path seen in the file, sorted.
func (f *File) ListGroups() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.idx.groups))
	copy(out, f.idx.groups)
	return out
}

// ListChannelsInGroup returns the channel paths belonging to groupPath, in
// first-seen order.
func (f *File) ListChannelsInGroup(groupPath string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	channels := f.idx.channels[groupPath]
	out := make([]string, len(channels))
	copy(out, channels)
	return out
}

// ReadProperty looks up a single named property on objectPath.
func (f *File) ReadProperty(objectPath, name string) (PropertyValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.idx.objects[objectPath]
	if !ok {
		return PropertyValue{}, ErrMissingObject
	}
	for _, p := range obj.properties {
		if p.Name == name {
			return p.Value, nil
		}
	}
	return PropertyValue{}, ErrMissingObject
}

// ReadAllProperties returns every property currently set on objectPath.
func (f *File) ReadAllProperties(objectPath string) ([]Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.idx.objects[objectPath]
	if !ok {
		return nil, ErrMissingObject
	}
	return obj.Properties(), nil
}

// ChannelLength returns the total number of raw values accumulated for
// channelPath across every segment.
func (f *File) ChannelLength(channelPath string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.idx.objects[channelPath]
	if !ok {
		return 0, ErrMissingObject
	}
	return obj.TotalValues, nil
}

// ReadChannel reads up to len(out) values from the start of channelPath's
// raw data, returning the number of values actually read.
func ReadChannel[T Sample](f *File, channelPath string, out []T) (int, error) {
	return ReadChannelFrom[T](f, channelPath, 0, out)
}

// ReadChannelFrom reads up to len(out) values from channelPath starting at
// global value index start. Returns ErrDataTypeMismatch if T isn't
// compatible with the channel's logical type, and ErrUnsupportedType for
// channels whose raw data this library deliberately does not expose
// (DAQmx-scaled or string channels).
func ReadChannelFrom[T Sample](f *File, channelPath string, start uint64, out []T) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.idx.objects[channelPath]
	if !ok {
		return 0, ErrInvalidChannelPath
	}
	if obj.DataType == DataTypeDAQmxRawData || obj.DataType == DataTypeString {
		return 0, ErrUnsupportedType
	}
	if start >= obj.TotalValues || len(out) == 0 {
		return 0, nil
	}

	total := 0
	remaining := out

	for _, loc := range obj.locations {
		locEnd := loc.StartValue + loc.NumValues
		if start >= locEnd {
			continue
		}
		if start+uint64(len(remaining)) <= loc.StartValue {
			break
		}

		localStart := uint64(0)
		if start > loc.StartValue {
			localStart = start - loc.StartValue
		}

		n, err := readLocationRange(f.rw, loc, localStart, remaining)
		if err != nil {
			return total, fmt.Errorf("failed to read channel %s: %w", channelPath, err)
		}
		total += n
		remaining = remaining[n:]
		start += uint64(n)

		if len(remaining) == 0 {
			break
		}
	}

	return total, nil
}

// ReadRequest names one channel to read into a caller-provided
// destination as part of a single multi-channel pass.
type ReadRequest struct {
	Path        string
	Start       uint64
	Destination Destination
}

// Destination is a typed sink for a single channel's values, implemented
// by the generic wrapper returned from [Into]. It exists so
// [File.ReadChannels] can drive heterogeneous destination types (a
// []float64 next to a []int32) without reflection.
type Destination interface {
	put(v any) bool // returns false once the destination is full
}

type sliceDestination[T Sample] struct {
	buf []T
	n   int
}

func (d *sliceDestination[T]) put(v any) bool {
	if d.n >= len(d.buf) {
		return false
	}
	d.buf[d.n] = v.(T)
	d.n++
	return true
}

// Into wraps a slice as a [Destination] for use with [File.ReadChannels].
func Into[T Sample](buf []T) Destination {
	return &sliceDestination[T]{buf: buf}
}

// ReadChannels reads multiple channels in a single pass.
func (f *File) ReadChannels(reqs []ReadRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(reqs) == 0 {
		return ErrNoChannels
	}

	for _, req := range reqs {
		obj, ok := f.idx.objects[req.Path]
		if !ok {
			return ErrInvalidChannelPath
		}
		if obj.DataType == DataTypeDAQmxRawData || obj.DataType == DataTypeString {
			return ErrUnsupportedType
		}

		start := req.Start
		for _, loc := range obj.locations {
			if start >= loc.StartValue+loc.NumValues {
				continue
			}
			localStart := uint64(0)
			if start > loc.StartValue {
				localStart = start - loc.StartValue
			}

			if err := readLocationIntoDestination(f.rw, loc, localStart, req.Destination); err != nil {
				return fmt.Errorf("failed to read channel %s: %w", req.Path, err)
			}
		}
	}

	return nil
}

// readLocationIntoDestination drains values from loc into dst until dst
// reports full or the location is exhausted, dispatching on loc's logical
// type to pick the right generic instantiation.
func readLocationIntoDestination(r io.ReadSeeker, loc DataLocation, start uint64, dst Destination) error {
	switch loc.dataType {
	case DataTypeI8:
		return drainInto[int8](r, loc, start, dst)
	case DataTypeI16:
		return drainInto[int16](r, loc, start, dst)
	case DataTypeI32:
		return drainInto[int32](r, loc, start, dst)
	case DataTypeI64:
		return drainInto[int64](r, loc, start, dst)
	case DataTypeU8:
		return drainInto[uint8](r, loc, start, dst)
	case DataTypeU16:
		return drainInto[uint16](r, loc, start, dst)
	case DataTypeU32:
		return drainInto[uint32](r, loc, start, dst)
	case DataTypeU64:
		return drainInto[uint64](r, loc, start, dst)
	case DataTypeSingleFloat, DataTypeSingleFloatWithUnit:
		return drainInto[float32](r, loc, start, dst)
	case DataTypeDoubleFloat, DataTypeDoubleFloatWithUnit:
		return drainInto[float64](r, loc, start, dst)
	case DataTypeBoolean:
		return drainInto[bool](r, loc, start, dst)
	case DataTypeTimestamp:
		return drainInto[Timestamp](r, loc, start, dst)
	case DataTypeExtendedFloat, DataTypeExtendedFloatWithUnit:
		return drainInto[Float128](r, loc, start, dst)
	case DataTypeComplexSingleFloat:
		return drainInto[complex64](r, loc, start, dst)
	case DataTypeComplexDoubleFloat:
		return drainInto[complex128](r, loc, start, dst)
	default:
		return ErrUnsupportedType
	}
}

func drainInto[T Sample](r io.ReadSeeker, loc DataLocation, start uint64, dst Destination) error {
	chunk := make([]T, 4096)
	for {
		n, err := readLocationRange(r, loc, start, chunk)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		for i := 0; i < n; i++ {
			if !dst.put(chunk[i]) {
				return nil
			}
		}
		start += uint64(n)
		if n < len(chunk) {
			return nil
		}
	}
}

// Close flushes any buffered writes and releases the underlying stream, if
// the File opened it itself via [Open] or [Create]. It is a no-op for a
// File built with [New] beyond the flush.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs error
	if err := f.rw.bw.Flush(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("failed to flush file: %w", err))
	}
	if f.closer == nil {
		return errs
	}
	if err := f.closer.Close(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("failed to close file: %w", err))
	}
	return errs
}
