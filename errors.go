package tdms

import "errors"

// Format/parse errors.
var (
	// ErrUnsupportedVersion indicates the segment lead-in declares a version
	// this library does not support.
	ErrUnsupportedVersion = errors.New("tdms: unsupported version")

	// ErrReadFailed wraps a failure to read bytes from the underlying stream.
	ErrReadFailed = errors.New("tdms: failed to read data")

	// ErrHeaderPatternNotMatched indicates a segment's lead-in did not begin
	// with the expected magic bytes.
	ErrHeaderPatternNotMatched = errors.New("tdms: header pattern not matched")

	// ErrInvalidFileFormat indicates the file structure is malformed or
	// doesn't conform to the segment/metadata grammar.
	ErrInvalidFileFormat = errors.New("tdms: invalid file format")

	// ErrInvalidPath indicates an object path is not properly formatted.
	ErrInvalidPath = errors.New("tdms: invalid object path")

	// ErrInvalidChannelPath indicates a path does not resolve to a channel.
	ErrInvalidChannelPath = errors.New("tdms: invalid channel path")

	// ErrUnknownDataType indicates a logical type code was not recognized.
	ErrUnknownDataType = errors.New("tdms: unknown data type")

	// ErrUnknownPropertyType indicates a property's type code was not recognized.
	ErrUnknownPropertyType = errors.New("tdms: unknown property type")

	// ErrUnsupportedType indicates a recognized but unsupported type was
	// encountered, e.g. DAQmx raw data, fixed-point, or a raw-data string
	// channel.
	ErrUnsupportedType = errors.New("tdms: unsupported data type")

	// ErrIncorrectType indicates a property accessor was called for a type
	// different from the property's actual type.
	ErrIncorrectType = errors.New("tdms: incorrect data type")

	// ErrStringAllocationFailed indicates a declared string length exceeded
	// the bytes remaining in the stream.
	ErrStringAllocationFailed = errors.New("tdms: string allocation failed")

	// ErrVecAllocationFailed indicates a declared element count was too large
	// to allocate a destination buffer for.
	ErrVecAllocationFailed = errors.New("tdms: vector allocation failed")
)

// Structural errors.
var (
	// ErrMissingObject indicates a referenced object path is not in the index.
	ErrMissingObject = errors.New("tdms: missing object")

	// ErrDataBlockNotFound indicates a data location referenced a data block
	// index that doesn't exist.
	ErrDataBlockNotFound = errors.New("tdms: data block not found")

	// ErrBadDataBlockLength indicates a data block's length is not a multiple
	// of its per-chunk size, or the equal-samples-per-chunk assumption was
	// violated.
	ErrBadDataBlockLength = errors.New("tdms: bad data block length")

	// ErrNoPreviousType indicates MatchPrevious was used for an object with
	// no prior raw data format.
	ErrNoPreviousType = errors.New("tdms: no previous raw data type")

	// ErrSegmentAddressOverflow indicates next_segment_offset would overflow
	// an absolute stream position.
	ErrSegmentAddressOverflow = errors.New("tdms: segment address overflow")

	// ErrSegmentTocDataBlockWithoutDataChannels indicates a segment set the
	// has-raw-data ToC bit with no active channels.
	ErrSegmentTocDataBlockWithoutDataChannels = errors.New("tdms: segment has raw data but no active channels")

	// ErrChunkSizeOverflow indicates chunk-count computation overflowed.
	ErrChunkSizeOverflow = errors.New("tdms: chunk size overflow")

	// ErrNoChannels indicates an operation required at least one channel but
	// received none.
	ErrNoChannels = errors.New("tdms: no channels")
)

// Runtime errors.
var (
	// ErrDataTypeMismatch indicates a requested host type is not compatible
	// with an object's logical data type.
	ErrDataTypeMismatch = errors.New("tdms: data type mismatch")

	// ErrEndOfFile is a normal, non-fatal end of a segment scan. It is never
	// returned mid-segment.
	ErrEndOfFile = errors.New("tdms: end of file")

	// ErrIOError wraps an underlying stream I/O failure outside of a specific
	// read operation (seek, stat, flush).
	ErrIOError = errors.New("tdms: io error")

	// ErrStringFormatError indicates a string field was not valid UTF-8.
	ErrStringFormatError = errors.New("tdms: invalid string encoding")
)
